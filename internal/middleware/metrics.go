package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestObserver records finished requests. *metrics.Metrics satisfies it.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// unmatchedRoute labels requests no route pattern matched.
const unmatchedRoute = "unmatched"

// NewMetricsHandler returns a middleware that reports every request to obs,
// labelled by chi route pattern (e.g. "/livematches/{matchId}") rather than
// raw path.
func NewMetricsHandler(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// The pattern is only complete once routing has finished.
			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			obs.ObserveRequest(route, r.Method, status, time.Since(start))
		})
	}
}
