package engine

import (
	"github.com/clothesline-http/clothesline/util"
)

// Handler drives every request it receives through the decision graph
// using a single, validated CallbackMap. Build one with BuildHandler;
// the zero Handler is not useful.
type Handler struct {
	callbacks CallbackMap
}

// BuildHandler validates cbs against the recognized callback names,
// merges it over DefaultCallbacks, and returns a Handler ready to
// drive requests. The error returned is always an *UnknownCallback;
// everything else about a CallbackMap is enforced by Go's type system.
func BuildHandler(cbs CallbackMap) (*Handler, error) {
	if err := validateCallbacks(cbs); err != nil {
		return nil, err
	}
	return &Handler{callbacks: mergeCallbacks(cbs)}, nil
}

// Handle walks the decision graph for req and returns the Response it
// arrives at. The only errors Handle returns are programmer errors —
// a callback misbehaving or raising its own error — never an
// HTTP-level outcome, which is always communicated through the
// returned Response's status.
func (h *Handler) Handle(req *Request) (*Response, error) {
	heap := newHeap(h.callbacks)
	resp := newResponse()

	state := Start
	for !state.IsTerminal() {
		fn, have := transitionTable[state]
		if !have {
			util.Logf("clothesline: state %s has no transition, defaulting to 500", state)
			return finish(req, heap, resp, Terminal(500))
		}
		outcome, newHeap, newResp, err := fn(req, heap, resp)
		if err != nil {
			return nil, err
		}
		heap, resp = newHeap, newResp
		util.Logf("clothesline: %s -> %v", state, outcome)
		state = next(state, outcome)
	}
	return finish(req, heap, resp, state)
}

// finish applies the terminal State's status and, if the Walk chose a
// Provider during negotiation, renders the body by calling it.
func finish(req *Request, heap Heap, resp *Response, state State) (*Response, error) {
	resp.statusCode = state.Status()
	if resp.Body.Kind != BodyProvider {
		return resp, nil
	}
	rendered, err := resp.Body.Provider(req, heap, resp)
	if err != nil {
		return nil, err
	}
	rendered.statusCode = resp.statusCode
	return rendered, nil
}

// StatusCode returns the HTTP status a finished Response should be
// sent with.
func (r *Response) StatusCode() int {
	return r.statusCode
}
