// Command clothesline-demo serves resources described by a YAML
// config file over HTTP. It wires config, registry, httpbridge, and
// script together the way cmd/mservice wires a crew of machines to an
// HTTP control plane in the repo this command is adapted from — minus
// that command's TCP, websocket, and REPL data planes, which have no
// equivalent in an HTTP decision engine.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/clothesline-http/clothesline/config"
	"github.com/clothesline-http/clothesline/httpbridge"
	"github.com/clothesline-http/clothesline/registry"
	"github.com/clothesline-http/clothesline/script"
	"github.com/clothesline-http/clothesline/util"
)

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.LUTC)
}

func main() {
	var (
		addr       = flag.String("h", ":8080", "HTTP service address")
		configFile = flag.String("c", "", "resource config file (YAML)")
		verbose    = flag.Bool("v", false, "log every decision-graph transition")
	)
	flag.Parse()

	util.Logging = *verbose

	if *configFile == "" {
		log.Fatal("clothesline-demo: -c <config file> is required")
	}

	doc, err := config.LoadDocument(*configFile)
	if err != nil {
		log.Fatalf("clothesline-demo: %v", err)
	}

	reg := registry.New()
	in := &script.Interpreter{}
	for _, r := range doc.Resources {
		h, err := r.BuildHandler(in)
		if err != nil {
			log.Fatalf("clothesline-demo: resource %q: %v", r.Name, err)
		}
		reg.Register(r.Name, &registry.Entry{
			Path:    r.Path,
			Handler: registry.NewUpdatableHandler(h),
			Source:  &registry.Source{Name: r.Name, Path: *configFile},
		})
		log.Printf("clothesline-demo: mounted %q at %s", r.Name, r.Path)
	}

	log.Printf("clothesline-demo: listening on %s", *addr)
	if err := http.ListenAndServe(*addr, httpbridge.New(reg)); err != nil {
		log.Fatalf("clothesline-demo: %v", err)
	}
}
