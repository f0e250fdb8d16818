package engine

import "net/http"

// Request is the abstract, transport-independent view of an inbound
// request a Walk is driven from. The httpbridge package builds one of
// these from a *http.Request; nothing in this package imports net/http
// for any reason beyond representing headers, which is already the
// idiomatic case-insensitive map for the job.
type Request struct {
	// Method is the request's HTTP method, upper-cased.
	Method string

	// Header holds the request's headers. Lookups should go through
	// http.Header's own case-insensitive accessors (Get, Values)
	// rather than indexing the map directly.
	Header http.Header

	// Params carries values extracted from the request path or query
	// string by whatever is routing to this resource (e.g. {"node":
	// "room-1"} for a path template like /facts/{node}).
	Params map[string]string

	// Body is the raw request body, already read into memory by the
	// transport adapter.
	Body []byte
}

// Param returns the named path/query parameter, or "" if absent.
func (r *Request) Param(name string) string {
	if r == nil || r.Params == nil {
		return ""
	}
	return r.Params[name]
}
