package server

import (
	"net/http"

	"github.com/shuzaifak/Property-Sync-Owner/dashboard"
)

// DashboardPageData contains data for rendering the dashboard
type DashboardPageData struct {
	UserName string
	Stats    dashboard.Stats
}

// DashboardHandler renders the owner dashboard (GET /)
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFromContext(r.Context())
		stats := dashboard.Load(r.Context(), s.apiFor(store))
		if r.Context().Err() != nil {
			return
		}

		data := DashboardPageData{
			UserName: store.Identity().Name,
			Stats:    stats,
		}
		s.renderPage(w, r, http.StatusOK, "dashboard", "Dashboard", "dashboard.html", data)
	}
}
