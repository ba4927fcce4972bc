// Package httpserver runs the HTTP listener of the serve command with
// graceful shutdown and exposes JSON health probes.
//
//	srv := httpserver.New(cfg, log)
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthHandler(log, nil))
//	r.Get("/readyz", httpserver.HealthHandler(log, map[string]httpserver.Probe{"redis": redis.Healthcheck(client)}))
//	if err := srv.Run(ctx, r); err != nil {
//	    return err
//	}
package httpserver
