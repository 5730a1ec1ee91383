package instrument

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// Mask replaces every value that looks like a credential.
const Mask = "*****"

const maxDepth = 6

var (
	sensitiveName   = regexp.MustCompile(`(?i)pass(word)?|secret|token|credential`)
	sensitiveHeader = regexp.MustCompile(`(?i)^(authorization|proxy-authorization|cookie|set-cookie)$|token|secret|api-key`)
)

// FormatArgs renders call arguments for logging with credentials masked.
func FormatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = FormatArg(a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatArg renders v for logging. A string containing "password" is
// replaced by Mask, as is any struct field or map entry whose name matches a
// credential-like pattern.
func FormatArg(v any) string {
	if s, ok := v.(string); ok {
		return maskString(s)
	}
	var b strings.Builder
	format(&b, reflect.ValueOf(v), 0)
	return b.String()
}

// MaskHeaders flattens h into a loggable map with credential headers masked.
func MaskHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if sensitiveHeader.MatchString(k) {
			out[k] = Mask
			continue
		}
		out[k] = maskString(strings.Join(vs, ","))
	}
	return out
}

// MaskQuery masks the values of credential-like parameters in a raw query
// string. Parameter order and the encoding of other values are kept.
func MaskQuery(raw string) string {
	if raw == "" {
		return ""
	}
	pairs := strings.Split(raw, "&")
	for i, pair := range pairs {
		k, v, hasValue := strings.Cut(pair, "=")
		if !hasValue {
			continue
		}
		key, err := url.QueryUnescape(k)
		if err != nil {
			key = k
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			val = v
		}
		if sensitiveName.MatchString(key) || maskString(val) == Mask {
			pairs[i] = k + "=" + Mask
		}
	}
	return strings.Join(pairs, "&")
}

func maskString(s string) string {
	if strings.Contains(strings.ToLower(s), "password") {
		return Mask
	}
	return s
}

func format(b *strings.Builder, v reflect.Value, depth int) {
	if !v.IsValid() {
		b.WriteString("<nil>")
		return
	}
	if depth > maxDepth {
		b.WriteString("...")
		return
	}

	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case error:
			if v.Kind() != reflect.Pointer || !v.IsNil() {
				b.WriteString(maskString(x.Error()))
				return
			}
		case fmt.Stringer:
			if v.Kind() != reflect.Pointer || !v.IsNil() {
				b.WriteString(maskString(x.String()))
				return
			}
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			b.WriteString("<nil>")
			return
		}
		format(b, v.Elem(), depth+1)
	case reflect.String:
		b.WriteString(maskString(v.String()))
	case reflect.Struct:
		t := v.Type()
		b.WriteString(t.Name())
		b.WriteByte('{')
		first := true
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(f.Name)
			b.WriteString(": ")
			if sensitiveName.MatchString(f.Name) {
				b.WriteString(Mask)
				continue
			}
			format(b, v.Field(i), depth+1)
		}
		b.WriteByte('}')
	case reflect.Map:
		if v.IsNil() {
			b.WriteString("map[]")
			return
		}
		keys := v.MapKeys()
		entries := make([]string, 0, len(keys))
		for _, k := range keys {
			name := fmt.Sprint(k.Interface())
			var e strings.Builder
			e.WriteString(name)
			e.WriteByte(':')
			if sensitiveName.MatchString(name) {
				e.WriteString(Mask)
			} else {
				format(&e, v.MapIndex(k), depth+1)
			}
			entries = append(entries, e.String())
		}
		sort.Strings(entries)
		b.WriteString("map[" + strings.Join(entries, " ") + "]")
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			format(b, v.Index(i), depth+1)
		}
		b.WriteByte(']')
	default:
		if v.CanInterface() {
			fmt.Fprint(b, v.Interface())
		} else {
			b.WriteString("?")
		}
	}
}
