// Package fetchtest serves page fetches from in-process handlers so tests can
// exercise scheme fallback and cross-host redirects without touching the network.
package fetchtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Transport routes requests to handlers keyed by "scheme://host". Requests for
// unknown origins fail the way an unresolvable host would.
type Transport struct {
	mu     sync.Mutex
	routes map[string]http.Handler
	calls  []string
}

// NewTransport creates a Transport with the given routes
func NewTransport(routes map[string]http.Handler) *Transport {
	if routes == nil {
		routes = make(map[string]http.Handler)
	}

	return &Transport{routes: routes}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	origin := req.URL.Scheme + "://" + req.URL.Host

	t.mu.Lock()
	t.calls = append(t.calls, req.URL.String())
	h, ok := t.routes[origin]
	t.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("dial tcp: lookup %s: no such host", req.URL.Hostname())
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	resp := rec.Result()
	resp.Request = req

	return resp, nil
}

// Calls returns every URL requested so far, in order
func (t *Transport) Calls() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.calls...)
}

// Client returns an *http.Client using the transport
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// HTML returns a handler that serves body as text/html with status 200
func HTML(body string) http.Handler {
	return Status(http.StatusOK, body)
}

// Status returns a handler that serves body with the given status code
func Status(code int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	})
}

// Redirect returns a handler that redirects every request to target
func Redirect(target string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusFound)
	})
}
