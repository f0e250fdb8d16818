package engine

import "strings"

// TransitionFunc computes the boolean outcome of one non-terminal
// State for the in-flight Walk, and the Heap/Response that should
// carry forward afterward (ordinarily heap and resp unchanged, unless
// the transition called into a callback that replaced one or both, or
// the transition itself decorated the Response, as b10 and c4 do).
type TransitionFunc func(req *Request, heap Heap, resp *Response) (outcome bool, newHeap Heap, newResp *Response, err error)

// knownMethods is the set b12 (known method?) checks against. It is
// deliberately broader than any single resource's allowed-methods
// callback: b12 asks whether the method is a method HTTP defines at
// all, b10 asks whether this resource permits it.
var knownMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true,
	"DELETE": true, "TRACE": true, "CONNECT": true, "OPTIONS": true,
}

func stub(outcome bool) TransitionFunc {
	return func(_ *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
		return outcome, heap, resp, nil
	}
}

func methodIs(method string) TransitionFunc {
	return func(req *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
		return req.Method == method, heap, resp, nil
	}
}

func callbackPredicate(name string) TransitionFunc {
	return func(req *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
		result, newHeap, newResp, err := invoke(name, req, heap, resp)
		if err != nil {
			return false, heap, resp, err
		}
		ok, _ := result.(bool)
		return ok, newHeap, newResp, nil
	}
}

// transitionTable supplies the TransitionFunc for every non-terminal
// State in graphTable. graph.go's init verifies the two tables agree
// on their key set.
var transitionTable = map[State]TransitionFunc{
	NonTerminal("b13"): stub(true), // service available? — no health check wired; always up.
	NonTerminal("b12"): func(req *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
		return knownMethods[req.Method], heap, resp, nil
	},
	NonTerminal("b11"): stub(false), // uri too long? — no length policy in scope.
	NonTerminal("b10"): transitionB10,
	NonTerminal("b9"):  callbackPredicate(MalformedRequest),
	NonTerminal("b8"):  stub(true), // authorized? — no auth scheme in scope.
	NonTerminal("b7"):  stub(false),
	NonTerminal("b6"):  stub(false), // unsupported content-* header? — not checked.
	NonTerminal("b5"):  stub(false), // unknown content type? — not checked.
	NonTerminal("b4"):  stub(false), // entity too large? — no size limit in scope.
	NonTerminal("b3"):  stub(false), // OPTIONS short-circuit not offered.
	NonTerminal("c3"): func(req *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
		return req.Header.Get("Accept") != "", heap, resp, nil
	},
	NonTerminal("c4"):  transitionC4,
	NonTerminal("d4"):  stub(false), // Accept-Language negotiation not offered.
	NonTerminal("e5"):  stub(false), // Accept-Charset negotiation not offered.
	NonTerminal("f6"):  stub(false), // Accept-Encoding negotiation not offered.
	NonTerminal("g7"):  callbackPredicate(ResourceExists),
	NonTerminal("g8"):  stub(false), // If-Match precondition not evaluated.
	NonTerminal("h7"): func(req *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
		return req.Header.Get("If-Match") == "*", heap, resp, nil
	},
	NonTerminal("h10"): stub(false), // If-Unmodified-Since precondition not evaluated.
	NonTerminal("i7"):  methodIs("PUT"),
	NonTerminal("i12"): stub(false), // If-None-Match precondition not evaluated.
	NonTerminal("k5"):  stub(false), // moved-permanently bookkeeping not offered.
	NonTerminal("k7"):  stub(false), // previously-existed bookkeeping not offered.
	NonTerminal("l5"):  stub(false), // moved-temporarily bookkeeping not offered.
	NonTerminal("l7"):  methodIs("POST"),
	NonTerminal("l13"): stub(false), // If-Modified-Since precondition not evaluated.
	NonTerminal("m5"):  methodIs("POST"),
	NonTerminal("m7"):  stub(true), // POST to a missing resource always allowed to create.
	NonTerminal("m16"): methodIs("DELETE"),
	NonTerminal("m20"): stub(true), // DELETE always enacted synchronously.
	NonTerminal("n5"):  stub(true), // POST to a missing resource always allowed to create.
	NonTerminal("n11"): stub(false), // no redirect-after-write policy in scope.
	NonTerminal("n16"): methodIs("POST"),
	NonTerminal("o14"): stub(false), // write conflict detection not offered.
	NonTerminal("o16"): methodIs("PUT"),
	NonTerminal("o18"): stub(false), // multiple-representations negotiation not offered.
	NonTerminal("o20"): func(_ *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
		return resp.Body.Kind != BodyEmpty, heap, resp, nil
	},
	NonTerminal("p3"): stub(false), // write conflict detection not offered.
	NonTerminal("p11"): func(_ *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
		return resp.Header.Get("Location") != "", heap, resp, nil
	},
}

func transitionB10(req *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
	result, newHeap, newResp, err := invoke(AllowedMethods, req, heap, resp)
	if err != nil {
		return false, heap, resp, err
	}
	set, _ := result.(MethodSet)
	if set[req.Method] {
		return true, newHeap, newResp, nil
	}
	decorated := newResp.clone()
	decorated.Header.Set("Allow", strings.Join(set.sorted(), ", "))
	return false, newHeap, decorated, nil
}

func transitionC4(req *Request, heap Heap, resp *Response) (bool, Heap, *Response, error) {
	result, newHeap, newResp, err := invoke(ContentTypesProvided, req, heap, resp)
	if err != nil {
		return false, heap, resp, err
	}
	providers, _ := result.(ProviderMap)
	accept := req.Header.Get("Accept")
	for offer, provider := range providers {
		if Acceptable(offer, accept) {
			decorated := newResp.clone()
			decorated.Header.Set("Content-Type", offer)
			decorated.Body = Body{Kind: BodyProvider, Provider: provider}
			return true, newHeap, decorated, nil
		}
	}
	return false, newHeap, newResp, nil
}
