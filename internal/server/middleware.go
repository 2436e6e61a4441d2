package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/creativeforge/pkg/observability"
)

// cors allows the browser editor to call the API from another origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// unmatchedRoute is reported for requests that match no route.
const unmatchedRoute = "unmatched"

// observe reports every request to the HTTP hooks and the debug log. Both
// hooks receive the chi route pattern, resolved before the request is
// served, so path parameters and unknown paths do not explode cardinality.
func (s *Server) observe(mux *chi.Mux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.HTTP()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			route := routePattern(mux, r)

			hooks.OnRequest(r.Context(), r.Method, route)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, route, status, duration)
			s.logger.Debug("request",
				"method", r.Method,
				"route", route,
				"status", status,
				"duration", duration,
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

// routePattern returns the pattern mux would route r to, or unmatchedRoute.
func routePattern(mux *chi.Mux, r *http.Request) string {
	rctx := chi.NewRouteContext()
	if !mux.Match(rctx, r.Method, r.URL.Path) {
		return unmatchedRoute
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return unmatchedRoute
}
