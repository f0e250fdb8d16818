package httpbridge

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clothesline-http/clothesline/engine"
	"github.com/clothesline-http/clothesline/registry"
)

func TestServeHTTPRoutesByTemplate(t *testing.T) {
	reg := registry.New()
	h, err := engine.BuildHandler(engine.CallbackMap{
		engine.ResourceExists: func(req *engine.Request, _ engine.Heap, _ *engine.Response) (engine.CallbackResult, error) {
			return engine.CallbackResult{Result: req.Param("node") == "room-1"}, nil
		},
	})
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	reg.Register("facts", &registry.Entry{
		Path:    "/facts/{node}",
		Handler: registry.NewUpdatableHandler(h),
	})

	a := New(reg)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/facts/room-1", nil)
	a.ServeHTTP(w, r)
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/facts/room-9", nil)
	a.ServeHTTP(w, r)
	if w.Code != 404 {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/unmounted", nil)
	a.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unmounted path", w.Code)
	}
}

func TestHeaderLookupIsCaseInsensitive(t *testing.T) {
	reg := registry.New()
	h, err := engine.BuildHandler(engine.CallbackMap{
		engine.ContentTypesProvided: func(_ *engine.Request, _ engine.Heap, _ *engine.Response) (engine.CallbackResult, error) {
			return engine.CallbackResult{Result: engine.ProviderMap{
				"application/json": func(_ *engine.Request, _ engine.Heap, resp *engine.Response) (*engine.Response, error) {
					resp.Body = engine.Body{Kind: engine.BodyValue, Bytes: []byte("{}")}
					return resp, nil
				},
			}}, nil
		},
	})
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	reg.Register("r", &registry.Entry{Path: "/r", Handler: registry.NewUpdatableHandler(h)})
	a := New(reg)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/r", nil)
	r.Header.Set("accept", "application/json")
	a.ServeHTTP(w, r)
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("Content-Type = %q", got)
	}
}
