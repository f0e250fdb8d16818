// Package script lets a resource's callbacks be written as small
// ECMAScript snippets instead of Go functions, using Goja
// (github.com/dop251/goja), a pure-Go ECMAScript 5.1+ implementation.
// This is useful for config.LoadDocument, where a resource is
// described entirely in a YAML file and has no Go code of its own.
//
// A script is wrapped in a self-invoking function, the same way the
// interpreter this package is adapted from wraps action code, and is
// expected to end with a return statement producing the object a
// Go engine.Callback would otherwise return: {result: ..., heap:
// ..., response: ...}. Unlike a native engine.Callback, a script's
// return value is a bare JS object, so Compile validates its keys at
// the JS/Go boundary — the one place in this engine where the
// {result, heap, response} contract is checked at runtime rather than
// by the Go type system.
package script

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"

	"github.com/dop251/goja"

	"github.com/clothesline-http/clothesline/engine"
)

// alphabet is used by gensym.
var alphabet = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// gensym makes a random string, for scripts that need to mint an
// identifier (e.g. an ETag or a correlation id) without a crypto
// dependency of their own.
func gensym() string {
	bs := make([]byte, 16)
	for i := range bs {
		bs[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(bs)
}

// Interpreter compiles and runs callback scripts. The zero Interpreter
// is ready to use.
type Interpreter struct {
	// Testing is not consulted by Compile or by the callbacks it
	// returns; setting it exposes no additional runtime functions.
	Testing bool
}

func wrapSource(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

// Compile parses src once and returns an engine.Callback that runs it
// against each request. Compiling once and reusing the *goja.Program
// across calls avoids re-parsing the script on every request; each
// call still gets its own *goja.Runtime, since a Runtime is not safe
// for concurrent use and a Walk may run concurrently with others.
func (in *Interpreter) Compile(src string) (engine.Callback, error) {
	program, err := goja.Compile("", wrapSource(src), true)
	if err != nil {
		return nil, &engine.ScriptCompileError{Err: err}
	}
	return in.callback(program), nil
}

func (in *Interpreter) callback(program *goja.Program) engine.Callback {
	return func(req *engine.Request, heap engine.Heap, resp *engine.Response) (engine.CallbackResult, error) {
		vm := goja.New()
		vm.Set("_", map[string]interface{}{
			"method": req.Method,
			"header": headerToMap(req.Header),
			"params": copyStringMap(req.Params),
			"body":   string(req.Body),
			"heap":   map[string]interface{}(heap),
		})
		vm.Set("esc", func(s string) string { return url.QueryEscape(s) })
		vm.Set("gensym", gensym)

		v, err := vm.RunProgram(program)
		if err != nil {
			return engine.CallbackResult{}, err
		}

		raw, ok := v.Export().(map[string]interface{})
		if !ok {
			return engine.CallbackResult{}, fmt.Errorf("script: expected an object, got %T", v.Export())
		}
		return toCallbackResult(raw)
	}
}

// toCallbackResult converts the raw object a script returned into an
// engine.CallbackResult, rejecting any key outside {result, heap,
// response} the way engine.CallbackMap's native Go form already
// guarantees at compile time.
func toCallbackResult(raw map[string]interface{}) (engine.CallbackResult, error) {
	var out engine.CallbackResult
	for k, v := range raw {
		switch k {
		case "result":
			out.Result = v
		case "heap":
			m, ok := v.(map[string]interface{})
			if !ok {
				return engine.CallbackResult{}, fmt.Errorf("script: heap must be an object, got %T", v)
			}
			out.Heap = engine.Heap(m)
		case "response":
			r, err := toResponse(v)
			if err != nil {
				return engine.CallbackResult{}, err
			}
			out.Response = r
		default:
			return engine.CallbackResult{}, &engine.InvalidResultKey{Key: k}
		}
	}
	return out, nil
}

func toResponse(v interface{}) (*engine.Response, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("script: response must be an object, got %T", v)
	}
	resp := &engine.Response{Header: make(http.Header)}
	if h, ok := m["header"].(map[string]interface{}); ok {
		for k, v := range h {
			if s, ok := v.(string); ok {
				resp.Header.Set(k, s)
			}
		}
	}
	if b, ok := m["body"].(string); ok {
		resp.Body = engine.Body{Kind: engine.BodyValue, Bytes: []byte(b)}
	}
	return resp, nil
}

func headerToMap(h http.Header) map[string]interface{} {
	out := make(map[string]interface{}, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}

func copyStringMap(m map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
