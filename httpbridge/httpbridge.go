// Package httpbridge adapts the engine package's transport-independent
// Request/Response to net/http, the way cmd/mservice's http_handler.go
// bridges a machine crew to an http.Handler in the repo this one is
// adapted from.
//
// Two deliberate choices here resolve ambiguities the engine's source
// leaves open (see SPEC_FULL.md §9):
//
//   - Header lookups are case-insensitive. This package reads and
//     writes headers exclusively through net/http.Header's own
//     accessors, which canonicalize via
//     net/textproto.CanonicalMIMEHeaderKey, rather than reproducing
//     the source's mix of a capitalized "Location" constant and a
//     lowercased "accept" header read.
//   - A candidate header value is checked with
//     golang.org/x/net/http/httpguts.ValidHeaderFieldValue before
//     being written to the wire; a provider or callback that produces
//     an invalid value (e.g. an embedded newline) has that header
//     dropped rather than corrupting the response.
package httpbridge

import (
	"io/ioutil"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/clothesline-http/clothesline/engine"
	"github.com/clothesline-http/clothesline/registry"
)

// Adapter serves resources registered in a Registry over net/http.
type Adapter struct {
	Registry *registry.Registry
}

// New returns an Adapter for reg.
func New(reg *registry.Registry) *Adapter {
	return &Adapter{Registry: reg}
}

// ServeHTTP implements http.Handler. It finds the Entry whose Path
// template matches the request, builds an engine.Request from it,
// Handles it, and writes the resulting engine.Response back to w. A
// request matching no registered resource gets a plain 404, without
// ever entering the decision graph — there is no resource to ask.
func (a *Adapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entry, params, ok := a.match(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "error reading request body", http.StatusInternalServerError)
		return
	}

	req := &engine.Request{
		Method: strings.ToUpper(r.Method),
		Header: r.Header,
		Params: params,
		Body:   body,
	}

	resp, err := entry.Handler.Handle(req)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp *engine.Response) {
	header := w.Header()
	for name, values := range resp.Header {
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				continue
			}
			header.Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode())
	if resp.Body.Kind == engine.BodyValue {
		w.Write(resp.Body.Bytes)
	}
}

// match finds the registered Entry whose Path template matches path,
// and the params that template extraction produced.
func (a *Adapter) match(path string) (*registry.Entry, map[string]string, bool) {
	for _, entry := range a.Registry.Copy() {
		if params, ok := matchTemplate(entry.Path, path); ok {
			return entry, params, true
		}
	}
	return nil, nil, false
}

// matchTemplate matches a path template such as "/facts/{node}"
// against a concrete request path, returning the named segments it
// captured. A template segment wrapped in {braces} matches exactly
// one path segment and binds its value; every other segment must
// match literally.
func matchTemplate(template, path string) (map[string]string, bool) {
	tParts := splitPath(template)
	pParts := splitPath(path)
	if len(tParts) != len(pParts) {
		return nil, false
	}
	params := make(map[string]string)
	for i, t := range tParts {
		if strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}") {
			params[t[1:len(t)-1]] = pParts[i]
			continue
		}
		if t != pParts[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
