package engine

import (
	"net/http"
	"testing"
)

func req(method string, header http.Header) *Request {
	if header == nil {
		header = make(http.Header)
	}
	return &Request{Method: method, Header: header}
}

func mustHandler(t *testing.T, cbs CallbackMap) *Handler {
	t.Helper()
	h, err := BuildHandler(cbs)
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	return h
}

func TestDefaultGETReaches200(t *testing.T) {
	h := mustHandler(t, nil)
	resp, err := h.Handle(req("GET", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode() != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode())
	}
	if resp.Body.Kind != BodyEmpty {
		t.Fatalf("body kind = %v, want empty", resp.Body.Kind)
	}
}

func TestUnknownMethodReaches501(t *testing.T) {
	h := mustHandler(t, nil)
	resp, err := h.Handle(req("FROB", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode() != 501 {
		t.Fatalf("status = %d, want 501", resp.StatusCode())
	}
}

func TestDisallowedMethodReaches405(t *testing.T) {
	cbs := CallbackMap{
		AllowedMethods: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			return CallbackResult{Result: NewMethodSet("GET")}, nil
		},
	}
	h := mustHandler(t, cbs)
	resp, err := h.Handle(req("POST", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode() != 405 {
		t.Fatalf("status = %d, want 405", resp.StatusCode())
	}
	if resp.Header.Get("Allow") != "GET" {
		t.Fatalf("Allow header = %q, want %q", resp.Header.Get("Allow"), "GET")
	}
}

func TestMalformedRequestReaches400WithBody(t *testing.T) {
	cbs := CallbackMap{
		MalformedRequest: func(_ *Request, heap Heap, _ *Response) (CallbackResult, error) {
			r := newResponse()
			r.Body = Body{Kind: BodyValue, Bytes: []byte(`{"error":"missing node"}`)}
			return CallbackResult{Result: true, Response: r}, nil
		},
	}
	h := mustHandler(t, cbs)
	resp, err := h.Handle(req("GET", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode() != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode())
	}
	if string(resp.Body.Bytes) != `{"error":"missing node"}` {
		t.Fatalf("body = %q", resp.Body.Bytes)
	}
}

func TestResourceNotFoundReaches404WithBody(t *testing.T) {
	cbs := CallbackMap{
		ResourceExists: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			r := newResponse()
			r.Body = Body{Kind: BodyValue, Bytes: []byte(`{"error":"no such node"}`)}
			return CallbackResult{Result: false, Response: r}, nil
		},
	}
	h := mustHandler(t, cbs)
	resp, err := h.Handle(req("GET", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode() != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode())
	}
	if string(resp.Body.Bytes) != `{"error":"no such node"}` {
		t.Fatalf("body = %q", resp.Body.Bytes)
	}
}

func TestNegotiationSuccessSetsContentType(t *testing.T) {
	cbs := CallbackMap{
		ContentTypesProvided: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			return CallbackResult{Result: ProviderMap{
				"application/json": func(_ *Request, _ Heap, resp *Response) (*Response, error) {
					resp.Body = Body{Kind: BodyValue, Bytes: []byte(`{}`)}
					return resp, nil
				},
			}}, nil
		},
	}
	h := mustHandler(t, cbs)
	header := make(http.Header)
	header.Set("Accept", "application/json")
	resp, err := h.Handle(req("GET", header))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode() != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode())
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if string(resp.Body.Bytes) != "{}" {
		t.Fatalf("body = %q", resp.Body.Bytes)
	}
}

func TestNegotiationFailureReaches406(t *testing.T) {
	cbs := CallbackMap{
		ContentTypesProvided: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			return CallbackResult{Result: ProviderMap{
				"application/json": func(_ *Request, _ Heap, resp *Response) (*Response, error) {
					return resp, nil
				},
			}}, nil
		},
	}
	h := mustHandler(t, cbs)
	header := make(http.Header)
	header.Set("Accept", "text/html")
	resp, err := h.Handle(req("GET", header))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode() != 406 {
		t.Fatalf("status = %d, want 406", resp.StatusCode())
	}
}

func TestUnknownCallbackRejectedAtConstruction(t *testing.T) {
	_, err := BuildHandler(CallbackMap{"not-a-real-callback": nil})
	if err == nil {
		t.Fatal("expected an error")
	}
	uc, ok := err.(*UnknownCallback)
	if !ok {
		t.Fatalf("error = %T, want *UnknownCallback", err)
	}
	if uc.Name != "not-a-real-callback" {
		t.Fatalf("Name = %q", uc.Name)
	}
}

func TestDefaultsAreIdempotentAcrossHandlers(t *testing.T) {
	h1 := mustHandler(t, nil)
	h2 := mustHandler(t, nil)
	r1, err := h1.Handle(req("GET", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	r2, err := h2.Handle(req("GET", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if r1.StatusCode() != r2.StatusCode() {
		t.Fatalf("two default handlers disagreed: %d vs %d", r1.StatusCode(), r2.StatusCode())
	}
}

// TestCallbackMapIsolation checks that supplying one callback does not
// perturb the defaults used for the other three.
func TestCallbackMapIsolation(t *testing.T) {
	cbs := CallbackMap{
		ResourceExists: func(_ *Request, _ Heap, _ *Response) (CallbackResult, error) {
			return CallbackResult{Result: true}, nil
		},
	}
	h := mustHandler(t, cbs)
	resp, err := h.Handle(req("DELETE", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	// default allowed-methods is {GET, HEAD}; DELETE should still be
	// rejected with 405 even though resource-exists? was overridden.
	if resp.StatusCode() != 405 {
		t.Fatalf("status = %d, want 405", resp.StatusCode())
	}
}
