// Package api wires the status surface's HTTP routes onto pkg/router,
// grounded on the teacher's internal/api/router.go route table (specific
// wildcard routes registered before the generic catch-all).
package api

import (
	"net/http"
	"strings"

	"go-corrgen/internal/api/handler"
	"go-corrgen/pkg/router"
)

// RegisterRoutes mounts the run-management endpoints onto r.
func RegisterRoutes(r *router.Router, s *handler.Server) {
	r.POST("/api/v1/runs", s.StartRun)
	r.GET("/api/v1/runs/history", s.RunHistory)
	r.POST("/api/v1/runs/*/cancel", func(w http.ResponseWriter, req *http.Request) {
		s.CancelRun(w, req, runIDFromPath(req.URL.Path, "/api/v1/runs/", "/cancel"))
	})
	r.GET("/api/v1/runs/*", func(w http.ResponseWriter, req *http.Request) {
		s.RunStatus(w, req, runIDFromPath(req.URL.Path, "/api/v1/runs/", ""))
	})
}

// runIDFromPath extracts the run ID segment between prefix and suffix in a
// wildcard-routed path.
func runIDFromPath(path, prefix, suffix string) string {
	id := strings.TrimPrefix(path, prefix)
	id = strings.TrimSuffix(id, suffix)
	return strings.Trim(id, "/")
}
