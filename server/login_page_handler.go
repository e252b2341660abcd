package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/metrics"
	"github.com/shuzaifak/Property-Sync-Owner/users"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Error string
	Email string // Preserve email on error
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			Error: r.URL.Query().Get("error"),
			Email: r.URL.Query().Get("email"),
		}
		s.renderPage(w, r, http.StatusOK, "login", "Owner Login", "login.html", data)
	}
}

// LoginSubmissionHandler processes the login form (POST /login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		in := users.LoginInput{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}
		if err := in.Validate(); err != nil {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			s.renderLoginError(w, r, users.Message(err), in.Email)
			return
		}

		store := sessionFromContext(r.Context())
		res, err := s.apiFor(store).Login(r.Context(), in)
		if r.Context().Err() != nil {
			return
		}
		if err != nil {
			log.Err(err).Str("email", in.Email).Msg("Login failed")
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			s.renderLoginError(w, r, apperrors.MessageOr(err, users.MsgLoginFailed), in.Email)
			return
		}
		if !res.User.IsOwner() {
			metrics.LoginsTotal.WithLabelValues("not_owner").Inc()
			s.renderLoginError(w, r, users.MsgNotOwner, in.Email)
			return
		}

		store.Login(r.Context(), res.User, res.Token)
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		redirectSuccess(w, r, RouteDashboard)
	}
}

// LogoutHandler clears the session and any open workflows (POST /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFromContext(r.Context())
		store.Logout(r.Context())
		s.workflows.Forget(store.BrowserID())
		redirectSuccess(w, r, RouteLogin)
	}
}

// renderLoginError re-renders the login page with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	data := LoginPageData{Error: errorMsg, Email: email}
	s.renderPage(w, r, http.StatusUnprocessableEntity, "login", "Owner Login", "login.html", data)
}
