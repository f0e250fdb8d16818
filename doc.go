// Package clothesline is a placeholder for the module root; the
// actual code lives in its subpackages.
//
// engine implements the decision graph and drives requests through
// it. script and config let a resource's callbacks be written as
// ECMAScript and assembled from YAML instead of Go. registry collects
// built resources, and httpbridge exposes them over net/http. See
// cmd/clothesline-demo for a runnable example.
package clothesline
