package config

import (
	"net/http"
	"testing"

	"github.com/clothesline-http/clothesline/engine"
	"github.com/clothesline-http/clothesline/script"
)

const testDoc = `
resources:
  - name: facts
    path: /facts/{node}
    callbacks:
      resource-exists?:
        code: |
          return {result: _.params.node === "room-1"};
`

func TestParseAndBuild(t *testing.T) {
	doc, err := ParseDocument([]byte(testDoc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Resources) != 1 {
		t.Fatalf("len(Resources) = %d, want 1", len(doc.Resources))
	}
	r := doc.Resources[0]
	if r.Path != "/facts/{node}" {
		t.Fatalf("Path = %q", r.Path)
	}

	h, err := r.BuildHandler(&script.Interpreter{})
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	resp, err := h.Handle(&engine.Request{
		Method: "GET",
		Header: make(http.Header),
		Params: map[string]string{"node": "room-2"},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode() != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode())
	}
}

func TestUnknownCallbackNameRejected(t *testing.T) {
	doc, err := ParseDocument([]byte(`
resources:
  - name: bad
    path: /bad
    callbacks:
      not-a-callback:
        code: "return {result: true};"
`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	_, err = doc.Resources[0].BuildHandler(&script.Interpreter{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*engine.UnknownCallback); !ok {
		t.Fatalf("error = %T, want *engine.UnknownCallback", err)
	}
}
