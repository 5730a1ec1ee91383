package instrument

import "strings"

// VerbAny registers an endpoint for every HTTP method.
const VerbAny = "ANY"

const (
	ActionRequestMapping = "REQUEST_MAPPING"
	ActionUnknown        = "UNKNOWN_ACTION"
)

// ActionFor maps the verb an endpoint is registered with to its audit action.
func ActionFor(verb string) string {
	switch v := strings.ToUpper(verb); v {
	case "GET", "POST", "DELETE", "PATCH":
		return v
	case VerbAny:
		return ActionRequestMapping
	default:
		return ActionUnknown
	}
}
