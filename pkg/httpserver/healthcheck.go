package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/schemakit/pkg/logger"
)

// Probe reports the health of one dependency.
type Probe func(context.Context) error

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler answers liveness and readiness probes. With no probes it
// always reports "alive". Otherwise every probe runs with the request
// context and any failure turns the answer into 503 "not_ready".
func HealthHandler(log *slog.Logger, probes map[string]Probe) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	names := make([]string, 0, len(probes))
	for name := range probes {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		report := healthReport{Status: "alive"}
		code := http.StatusOK
		if len(names) > 0 {
			report.Status = "ready"
			report.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := probes[name](r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness probe failed", slog.String("probe", name), logger.Error(err))
				report.Checks[name] = "failing"
				report.Status = "not_ready"
				code = http.StatusServiceUnavailable
				continue
			}
			report.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(report)
	}
}
