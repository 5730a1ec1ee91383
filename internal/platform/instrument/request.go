package instrument

import (
	"context"
	"strings"
)

// RequestInfo describes the web request a call is executing under.
type RequestInfo struct {
	ID      string
	Verb    string
	Path    string
	Query   string
	Headers map[string]string
}

type requestKey struct{}

// WithRequest returns a copy of ctx carrying r.
func WithRequest(ctx context.Context, r RequestInfo) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// RequestFrom returns the request ctx executes under, if any.
func RequestFrom(ctx context.Context) (RequestInfo, bool) {
	r, ok := ctx.Value(requestKey{}).(RequestInfo)
	return r, ok
}

// Line renders the request as "HTTP <verb> <path>[?<query>]".
func (r RequestInfo) Line() string {
	var b strings.Builder
	b.WriteString("HTTP ")
	b.WriteString(r.Verb)
	b.WriteByte(' ')
	b.WriteString(r.Path)
	if r.Query != "" {
		b.WriteByte('?')
		b.WriteString(r.Query)
	}
	return b.String()
}
