// Package engine provides the core gear for driving an HTTP request
// through a declarative decision graph to arrive at a status code and
// a content-negotiated body.
//
// The graph is closely modeled on the Webmachine/Clothesline decision
// diagram. A Graph is a static mapping from a non-terminal State to
// the two States reachable from it, keyed by the boolean outcome of
// that State's Transition. A State is either non-terminal (it has a
// Transition and an entry in the Graph) or terminal (its identity is
// an HTTP status code, and reaching it ends the Walk).
//
// Instead of writing an imperative http.Handler, a resource author
// supplies a CallbackMap: a small set of named predicates and
// providers (allowed-methods, resource-exists?, malformed-request?,
// content-types-provided). BuildHandler validates that map and
// returns a Handler that Walks the Graph for every request, calling
// into user callbacks at the points the graph dictates and a built-in
// Transition everywhere else.
//
// A Walk threads two pieces of mutable, per-request state through
// every Transition and callback: a Heap (an opaque scratch map) and a
// Response (the response under construction). Callbacks receive
// snapshots of both and may return replacements, which the dispatcher
// applies atomically before the next step runs.
package engine
