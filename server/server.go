package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/shuzaifak/Property-Sync-Owner/internal/config"
	"github.com/shuzaifak/Property-Sync-Owner/properties"
	"github.com/shuzaifak/Property-Sync-Owner/server/workflows"
	"github.com/shuzaifak/Property-Sync-Owner/sessions"
	"github.com/shuzaifak/Property-Sync-Owner/users"
)

// API is the backend surface the pages call
type API interface {
	users.API
	properties.API
}

// APIProvider binds the backend to one browser's credential
type APIProvider func(ts oauth2.TokenSource) API

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	sessions  sessions.Repo
	api       APIProvider
	workflows *workflows.Store
	templates map[string]*template.Template
}

func New(config config.Config, sessionRepo sessions.Repo, api APIProvider, flows *workflows.Store) (*Server, error) {
	if sessionRepo == nil {
		return nil, fmt.Errorf("[Server New] session repo is required")
	}
	if api == nil {
		return nil, fmt.Errorf("[Server New] backend api is required")
	}
	if flows == nil {
		flows = workflows.New(config.GetDraftTTL())
	}

	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		sessions:  sessionRepo,
		api:       api,
		workflows: flows,
	}

	templates, err := s.parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}
	s.templates = templates

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// apiFor returns the backend client carrying the browser's token
func (s *Server) apiFor(store *sessions.Store) API {
	return s.api(store)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", colourMethod(method), path, Red+error+ResetColor)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
