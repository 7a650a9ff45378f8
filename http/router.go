package http

import (
	"log/slog"
	"net/http"
)

type RouterDeps struct {
	Clients        *ClientHandler
	Health         *HealthHandler
	Metrics        *Metrics
	RateLimiter    *RateLimiter
	Log            *slog.Logger
	AllowedOrigins []string
}

// NewRouter mounts the API. Client routes are rate limited; probes and
// metrics are not.
func NewRouter(d RouterDeps) http.Handler {
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(d.RateLimiter, d.Log, h)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /clients", limited(d.Clients.ListClients))
	mux.Handle("POST /clients", limited(d.Clients.CreateClient))
	mux.Handle("GET /clients/{id}", limited(d.Clients.GetClient))
	mux.Handle("DELETE /clients/{id}", limited(d.Clients.DeleteClient))
	mux.Handle("GET /clients/{id}/score", limited(d.Clients.Score))
	mux.Handle("GET /clients/{id}/score/breakdown", limited(d.Clients.ScoreBreakdown))
	mux.Handle("GET /clients-to-do-follow-up", limited(d.Clients.ClientsToFollowUp))

	mux.HandleFunc("GET /healthz", d.Health.Liveness)
	mux.HandleFunc("GET /readyz", d.Health.Readiness)
	mux.Handle("GET /metrics", d.Metrics.Handler())

	var handler http.Handler = mux
	handler = d.Metrics.Middleware(handler)
	handler = CORSMiddleware(d.AllowedOrigins)(handler)
	handler = LoggingMiddleware(d.Log)(handler)
	return handler
}
