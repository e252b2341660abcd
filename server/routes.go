package server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.PageMiddleware(RouteLogin)...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.PageMiddleware(RouteLogin)...))
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.PageMiddleware(RouteRegister)...))
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.PageMiddleware(RouteRegister)...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.BrowserSessionMiddleware)...))

	// DASHBOARD
	s.RegisterRouteHandler("GET "+RouteDashboard+"{$}", ChainMiddleware(s.DashboardHandler(), s.PageMiddleware(RouteDashboard)...))

	// PROPERTIES
	s.RegisterRouteHandler("GET "+RouteProperties, ChainMiddleware(s.PropertiesPageHandler(), s.PageMiddleware(RouteProperties)...))
	s.RegisterRouteHandler("POST "+RoutePropertyDelete, ChainMiddleware(s.RequestDeleteHandler(), s.PageMiddleware(RouteProperties)...))
	s.RegisterRouteHandler("POST "+RoutePropertyDeleteConfirm, ChainMiddleware(s.ConfirmDeleteHandler(), s.PageMiddleware(RouteProperties)...))
	s.RegisterRouteHandler("POST "+RoutePropertyDeleteCancel, ChainMiddleware(s.CancelDeleteHandler(), s.PageMiddleware(RouteProperties)...))

	// PROPERTY FORM
	s.RegisterRouteHandler("GET "+RouteAddProperty, ChainMiddleware(s.PropertyFormPageHandler(), s.PageMiddleware(RouteAddProperty)...))
	s.RegisterRouteHandler("POST "+RouteAddProperty, ChainMiddleware(s.PropertyFormSubmitHandler(), s.PageMiddleware(RouteAddProperty)...))
	s.RegisterRouteHandler("POST "+RouteAddPropertyImageRemove, ChainMiddleware(s.RemoveImageHandler(), s.PageMiddleware(RouteAddProperty)...))
	s.RegisterRouteHandler("GET "+RouteDraftImage, ChainMiddleware(s.DraftImageHandler(), s.PageMiddleware(RouteAddProperty)...))

	// PROFILE
	s.RegisterRouteHandler("GET "+RouteProfile, ChainMiddleware(s.ProfilePageHandler(), s.PageMiddleware(RouteProfile)...))
	s.RegisterRouteHandler("POST "+RouteProfileAvatar, ChainMiddleware(s.AvatarUploadHandler(), s.PageMiddleware(RouteProfile)...))

	// OPERATIONAL
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))

	// Anything else is sent home or to login by the guard
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare(s.BrowserSessionMiddleware, s.GuardMiddleware(""))...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

// NotFoundHandler only runs if the guard lets an unknown path through, which
// it never does
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
