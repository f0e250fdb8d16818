package engine

// These errors are programmer errors, not HTTP-level outcomes. An
// HTTP-level outcome is communicated purely via a terminal State
// (i.e. a status code); these types are raised when a resource author
// has misused the callback contract.

// UnknownCallback occurs when a CallbackMap supplied to BuildHandler
// has a key that isn't one of the recognized callback names.
type UnknownCallback struct {
	Name string
}

func (e *UnknownCallback) Error() string {
	return `unknown callback "` + e.Name + `"`
}

// InvalidResultKey occurs when the object a scripted callback returns
// carries a key outside {result, heap, response} (see the script
// package; a native CallbackResult cannot carry such a key).
type InvalidResultKey struct {
	Callback string
	Key      string
}

func (e *InvalidResultKey) Error() string {
	return `callback "` + e.Callback + `" returned an invalid key "` + e.Key + `"`
}

// ScriptCompileError wraps a compile-time failure from a scripted
// callback (see the script package). It is surfaced at the point a
// CallbackMap built from scripts is assembled, not at request time.
type ScriptCompileError struct {
	Err error
}

func (e *ScriptCompileError) Error() string {
	return "script compile error: " + e.Err.Error()
}

func (e *ScriptCompileError) Unwrap() error {
	return e.Err
}

// UnknownState describes a successor State that is neither a
// registered non-terminal State nor a terminal status code.
//
// Such a successor is a bug in the Graph definition itself, not a
// client problem. Nothing in this package returns UnknownState: the
// graph's totality is checked once, at package init, and a broken
// graph panics (with a plain string) before any request can reach it.
type UnknownState struct {
	State State
}

func (e *UnknownState) Error() string {
	return `state "` + e.State.String() + `" has no transition and is not a terminal status`
}
