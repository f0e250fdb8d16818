// Package config loads declarative resource descriptions from YAML,
// the way cmd/mservice in the repo this engine is adapted from loads
// machine specs: a small, mostly-text format that a non-Go author can
// write, parsed with gopkg.in/yaml.v2 and turned into the same
// engine.CallbackMap a Go author would build by hand.
//
// A resource file names its path and its callbacks by script, so a
// whole resource — including its predicates — can live in one YAML
// document with no accompanying Go code:
//
//	resources:
//	  - name: facts
//	    path: /facts/{node}
//	    callbacks:
//	      resource-exists?:
//	        code: |
//	          return {result: _.params.node === "room-1"};
//
// Any callback name config doesn't recognize is rejected the same way
// engine.BuildHandler rejects one, before the resource is ever built.
package config

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"

	"github.com/clothesline-http/clothesline/engine"
	"github.com/clothesline-http/clothesline/script"
)

// ScriptSource is one named callback's source: a single ECMAScript
// snippet compiled by the script package.
type ScriptSource struct {
	Code string `yaml:"code"`
}

// Resource is one resource's YAML description: where it's mounted,
// and the scripted callbacks that implement it. Callbacks is keyed by
// the same four names engine.CallbackMap recognizes.
type Resource struct {
	Name      string                  `yaml:"name"`
	Path      string                  `yaml:"path"`
	Callbacks map[string]ScriptSource `yaml:"callbacks"`
}

// Document is the top-level shape of a resource config file: a list
// of resources, so one file can describe a whole service.
type Document struct {
	Resources []Resource `yaml:"resources"`
}

// ParseDocument unmarshals a YAML document into a Document. It does
// not compile any scripts or build any handlers; call BuildCallbacks
// for that.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads and parses a resource config file from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// BuildCallbacks compiles every script attached to r and returns the
// engine.CallbackMap BuildHandler expects. Compilation happens once,
// here, rather than per-request.
func (r *Resource) BuildCallbacks(in *script.Interpreter) (engine.CallbackMap, error) {
	cm := make(engine.CallbackMap, len(r.Callbacks))
	for name, src := range r.Callbacks {
		cb, err := in.Compile(src.Code)
		if err != nil {
			return nil, fmt.Errorf("config: resource %q callback %q: %w", r.Name, name, err)
		}
		cm[name] = cb
	}
	return cm, nil
}

// BuildHandler compiles r's scripts and builds an engine.Handler from
// them in one step.
func (r *Resource) BuildHandler(in *script.Interpreter) (*engine.Handler, error) {
	cm, err := r.BuildCallbacks(in)
	if err != nil {
		return nil, err
	}
	return engine.BuildHandler(cm)
}
