package apiclient

import (
	"net/http"
	"net/url"
	"strings"
)

// Param is one query string pair. Query parameters keep slice order on the wire.
type Param struct {
	Key   string
	Value string
}

// Request describes one backend call.
type Request struct {
	// Name labels the call in metrics and spans; defaults to Path.
	Name string

	// Method defaults to GET.
	Method string

	// Path is either relative to the client's base URL or an absolute URL.
	Path string

	Query []Param

	// JSONBody, when non-nil, is marshalled with encoding/json as the body.
	JSONBody any

	// Headers are applied over the default Content-Type: application/json.
	Headers map[string]string
}

// Q is shorthand for building a query parameter.
func Q(key, value string) Param { return Param{Key: key, Value: value} }

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}

func (r Request) name() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Path
}

// target returns the path with the query appended in order.
func (r Request) target() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	var b strings.Builder
	b.WriteString(r.Path)
	if strings.Contains(r.Path, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	for i, p := range r.Query {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(formEscape(p.Value))
	}
	return b.String()
}

var formReplacer = strings.NewReplacer("%2A", "*", "~", "%7E")

// formEscape is application/x-www-form-urlencoded as browsers serialize it:
// '*' stays literal and '~' is percent-encoded, unlike url.QueryEscape.
func formEscape(s string) string {
	return formReplacer.Replace(url.QueryEscape(s))
}

// resolve prefixes relative targets with baseURL. Absolute URLs and an empty
// base URL leave the target untouched.
func resolve(baseURL, target string) string {
	if baseURL == "" || isAbsolute(target) {
		return target
	}
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return base + target
}

func isAbsolute(target string) bool {
	u, err := url.Parse(target)
	return err == nil && u.Scheme != "" && u.Host != ""
}
