// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"io/fs"
	"net/http"
	"time"
)

// dashboardHandler handles dashboard requests.
type dashboardHandler struct{}

// newDashboardHandler creates a new dashboard handler.
func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests.
// Returns an HTML page with JavaScript that scrapes /healthz and renders
// pipeline metrics.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// http.ServeFileFS requires Go 1.22; serve the embedded file the same way
	// with the Go 1.21 API.
	data, err := fs.ReadFile(dashboardFS, "dashboard.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	modtime := time.Time{}
	if info, statErr := fs.Stat(dashboardFS, "dashboard.html"); statErr == nil {
		modtime = info.ModTime()
	}
	http.ServeContent(w, r, "dashboard.html", modtime, bytes.NewReader(data))
}
