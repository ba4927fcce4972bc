package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/schemakit/pkg/config"
	"github.com/dmitrymomot/schemakit/pkg/httpserver"
	"github.com/dmitrymomot/schemakit/pkg/httpvalidate"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/requestid"
	"github.com/dmitrymomot/schemakit/pkg/schemafile"
)

func runServe(ctx context.Context, a *app, args []string) int {
	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg, config.WithPrefix(envPrefix)); err != nil {
		return a.fail(err)
	}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	dir := fs.String("dir", a.cfg.SchemaDir, "directory of schema documents")
	fs.StringVar(&srvCfg.Addr, "addr", srvCfg.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	reg := schemafile.NewRegistry(schemafile.WithLogger(a.log))
	b, err := connectBackends(ctx, a, reg)
	if err != nil {
		return a.fail(err)
	}
	defer b.Close()

	docs, err := schemafile.LoadDir(ctx, *dir, reg)
	if err != nil {
		return a.fail(err)
	}
	a.log.Info("schemas loaded", logger.Component("serve"), "dir", *dir, "count", len(docs))

	if err := httpserver.New(srvCfg, a.log).Run(ctx, newRouter(a, docs, b.probes)); err != nil {
		return a.fail(err)
	}
	return exitOK
}

// newRouter mounts one validation endpoint per document:
//
//	POST /validate/{name}  sanitize and validate the JSON body
//	GET  /schemas          list document names
//	GET  /healthz          liveness
//	GET  /readyz           readiness of the connected stores
func newRouter(a *app, docs map[string]*schemafile.Document, probes map[string]httpserver.Probe) http.Handler {
	handlers := make(map[string]http.Handler, len(docs))
	names := make([]string, 0, len(docs))
	for name, doc := range docs {
		handlers[name] = httpvalidate.Handler(doc.Pipeline(),
			httpvalidate.WithSchemaName(name),
			httpvalidate.WithLogger(a.log),
			httpvalidate.WithBodyLimit(a.cfg.BodyLimit),
		)
		names = append(names, name)
	}
	sort.Strings(names)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/healthz", httpserver.HealthHandler(a.log, nil))
	r.Get("/readyz", httpserver.HealthHandler(a.log, probes))
	r.Get("/schemas", func(w http.ResponseWriter, _ *http.Request) {
		_ = httpvalidate.WriteJSON(w, http.StatusOK, httpvalidate.Response{Data: names})
	})
	r.Post("/validate/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		h, ok := handlers[name]
		if !ok {
			_ = httpvalidate.WriteError(w, http.StatusNotFound, httpvalidate.CodeNotFound, fmt.Sprintf("Unknown schema %q", name))
			return
		}
		h.ServeHTTP(w, r)
	})

	return r
}
