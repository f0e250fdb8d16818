package engine

import "net/http"

// bodyKind distinguishes the three shapes a Response body can take
// once a Walk finishes.
type bodyKind uint8

const (
	// BodyEmpty means the response carries no body at all.
	BodyEmpty bodyKind = iota
	// BodyValue means the response body is already the final bytes.
	BodyValue
	// BodyProvider means the body still needs to be produced by
	// calling the Provider chosen during content negotiation.
	BodyProvider
)

// Provider renders a response body once content negotiation has
// picked it. It receives the same Request, Heap and in-progress
// Response every other callback sees, and returns the Response with
// its Body replaced by the rendered bytes (BodyValue), or an error if
// rendering failed.
type Provider func(req *Request, heap Heap, resp *Response) (*Response, error)

// Body is the response body under construction or already rendered.
type Body struct {
	Kind     bodyKind
	Bytes    []byte
	Provider Provider
}

// Response is the HTTP response under construction by a Walk. A
// Handler starts every Walk with a fresh, empty Response and lets
// Transitions and callbacks build it up field by field as the Walk
// proceeds; nothing is written to a wire until the Walk reaches a
// terminal State.
type Response struct {
	Header http.Header
	Body   Body

	// statusCode holds a 400 placeholder from newResponse until the
	// Walk that produced this Response reaches a terminal State and
	// sets the real status. It is unexported
	// because a callback has no business setting it directly — the
	// status is a consequence of the Walk, not an input to it.
	statusCode int
}

func newResponse() *Response {
	return &Response{Header: make(http.Header), statusCode: 400}
}

// clone makes a deep-enough copy of r for handing to a callback: the
// header map is copied so a callback mutating its snapshot can't
// reach back into the Walk's own Response.
func (r *Response) clone() *Response {
	if r == nil {
		return newResponse()
	}
	h := make(http.Header, len(r.Header))
	for k, vs := range r.Header {
		cp := make([]string, len(vs))
		copy(cp, vs)
		h[k] = cp
	}
	return &Response{Header: h, Body: r.Body, statusCode: r.statusCode}
}
