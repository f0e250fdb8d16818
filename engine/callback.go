package engine

import "sort"

// The four callback names a resource author can supply. These are the
// only keys BuildHandler accepts in a CallbackMap; anything else is an
// UnknownCallback.
const (
	AllowedMethods       = "allowed-methods"
	ResourceExists       = "resource-exists?"
	MalformedRequest     = "malformed-request?"
	ContentTypesProvided = "content-types-provided"
)

var knownCallbacks = map[string]bool{
	AllowedMethods:       true,
	ResourceExists:       true,
	MalformedRequest:     true,
	ContentTypesProvided: true,
}

// Callback is the shape every resource-supplied predicate or provider
// takes. heap and resp are snapshots: heap is a copy of the Heap in effect when
// the callback was invoked, and resp is the Response built so far.
// Neither is safe to mutate in place; a callback that wants to change
// either returns a replacement on CallbackResult.
type Callback func(req *Request, heap Heap, resp *Response) (CallbackResult, error)

// CallbackResult is everything a Callback can hand back to the Walk
// that invoked it. Because this is a typed struct rather than a freely
// shaped map, a native Go callback cannot return a key outside
// {Result, Heap, Response} even by accident — the dynamic form of that
// same constraint (used when a callback is assembled from a script or
// a config file rather than written in Go) is enforced at the
// boundary that builds the Callback, not here; see the script package.
type CallbackResult struct {
	// Result is the callback's answer: a bool for a predicate, a
	// MethodSet for allowed-methods, a ProviderMap for
	// content-types-provided.
	Result interface{}

	// Heap, if non-nil, replaces the Heap in effect for the rest of
	// the Walk.
	Heap Heap

	// Response, if non-nil, replaces the Response under construction
	// for the rest of the Walk.
	Response *Response
}

// MethodSet is the Result shape for an allowed-methods callback.
type MethodSet map[string]bool

// NewMethodSet builds a MethodSet from a list of HTTP methods.
func NewMethodSet(methods ...string) MethodSet {
	s := make(MethodSet, len(methods))
	for _, m := range methods {
		s[m] = true
	}
	return s
}

// sorted returns the set's members in a stable order, used only for
// building a Allow header value.
func (s MethodSet) sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// ProviderMap is the Result shape for a content-types-provided
// callback: a mapping from an offered media type (e.g. "text/html")
// to the Provider that renders a body of that type.
type ProviderMap map[string]Provider

// CallbackMap is the set of callbacks a resource author supplies to
// BuildHandler. Any key is rejected unless it is one of the four
// constants above; any key the map omits is filled in from
// DefaultCallbacks.
type CallbackMap map[string]Callback

// DefaultCallbacks returns the CallbackMap a resource gets when it
// supplies none, or omits a given callback: only GET and HEAD allowed,
// every resource present, no request ever malformed, no representation
// offered. This is also the baseline BuildHandler merges a caller's
// map onto, so a caller who supplies only resource-exists? still gets
// sane answers for the other three.
func DefaultCallbacks() CallbackMap {
	return CallbackMap{
		AllowedMethods: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			return CallbackResult{Result: NewMethodSet("GET", "HEAD")}, nil
		},
		ResourceExists: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			return CallbackResult{Result: true}, nil
		},
		MalformedRequest: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			return CallbackResult{Result: false}, nil
		},
		ContentTypesProvided: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			return CallbackResult{Result: ProviderMap{}}, nil
		},
	}
}

// validateCallbacks rejects any key outside the four recognized
// callback names.
func validateCallbacks(cm CallbackMap) error {
	for name := range cm {
		if !knownCallbacks[name] {
			return &UnknownCallback{Name: name}
		}
	}
	return nil
}

// mergeCallbacks overlays cm onto DefaultCallbacks, producing a total
// map with all four names present.
func mergeCallbacks(cm CallbackMap) CallbackMap {
	merged := DefaultCallbacks()
	for name, cb := range cm {
		merged[name] = cb
	}
	return merged
}

// invoke calls the named callback from heap's CallbackMap, applying
// the CallbackResult's Heap/Response replacements to the values
// returned, so the caller threads exactly what the Walk should use
// next.
func invoke(name string, req *Request, heap Heap, resp *Response) (interface{}, Heap, *Response, error) {
	cb, have := heap.callbackMap()[name]
	if !have {
		return nil, heap, resp, &UnknownCallback{Name: name}
	}
	result, err := cb(req, heap.clone(), resp.clone())
	if err != nil {
		return nil, heap, resp, err
	}
	newHeap := heap
	if result.Heap != nil {
		newHeap = result.Heap
	}
	newResp := resp
	if result.Response != nil {
		newResp = result.Response
	}
	return result.Result, newHeap, newResp, nil
}
