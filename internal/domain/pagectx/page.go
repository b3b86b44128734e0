// Package pagectx carries per-page request state through the route loaders:
// the visitor's cookie and request id going to the backend, and the
// set-cookie values coming back that must reach the visitor.
package pagectx

import (
	"net/http"
	"sync"
)

// Page is created once per incoming page request. It is safe for concurrent
// use by the loaders of one page.
type Page struct {
	cookie    string
	requestID string

	mu       sync.Mutex
	relayed  []string
	released bool
}

// New builds a Page for an incoming request.
func New(cookie, requestID string) *Page {
	return &Page{cookie: cookie, requestID: requestID}
}

// FromRequest builds a Page from the incoming request's Cookie header.
func FromRequest(r *http.Request, requestID string) *Page {
	return New(r.Header.Get("Cookie"), requestID)
}

// Cookie is the visitor's Cookie header, forwarded verbatim to the backend.
func (p *Page) Cookie() string { return p.cookie }

// RequestID identifies the page request in logs and backend calls.
func (p *Page) RequestID() string { return p.requestID }

// ForwardHeaders returns the headers every backend call carries.
func (p *Page) ForwardHeaders() map[string]string {
	h := make(map[string]string, 2)
	if p.cookie != "" {
		h["Cookie"] = p.cookie
	}
	if p.requestID != "" {
		h["X-Request-ID"] = p.requestID
	}
	return h
}

// RelayCookie queues every Set-Cookie value of a backend response.
// It returns the number of values queued.
func (p *Page) RelayCookie(h http.Header) int {
	values := h.Values("Set-Cookie")
	if len(values) == 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.relayed = append(p.relayed, values...)
	return len(values)
}

// Relayed returns a copy of the queued Set-Cookie values.
func (p *Page) Relayed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.relayed...)
}

// Apply adds the queued values as Set-Cookie headers on the outgoing
// response. It must run before the status line is written; later calls are
// no-ops so a value is never emitted twice.
func (p *Page) Apply(h http.Header) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return 0
	}
	p.released = true
	for _, v := range p.relayed {
		h.Add("Set-Cookie", v)
	}
	return len(p.relayed)
}
