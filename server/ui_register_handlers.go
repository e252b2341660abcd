package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/users"
)

// RegisterPageData contains data for rendering the registration page
type RegisterPageData struct {
	Error   string
	Success string
	Name    string
	Email   string
}

// RegisterPageHandler displays the registration page (GET /register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, http.StatusOK, "register", "Owner Registration", "register.html", RegisterPageData{})
	}
}

// RegisterSubmissionHandler creates an owner account (POST /register)
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		in := users.RegisterInput{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
		data := RegisterPageData{Name: in.Name, Email: in.Email}

		if err := in.Validate(); err != nil {
			data.Error = users.Message(err)
			s.renderPage(w, r, http.StatusUnprocessableEntity, "register", "Owner Registration", "register.html", data)
			return
		}

		store := sessionFromContext(r.Context())
		created, err := s.apiFor(store).Register(r.Context(), in.Normalise())
		if r.Context().Err() != nil {
			return
		}
		if err != nil {
			log.Err(err).Str("email", in.Email).Msg("Registration failed")
			data.Error = apperrors.MessageOr(err, users.MsgRegisterFailed)
			s.renderPage(w, r, http.StatusUnprocessableEntity, "register", "Owner Registration", "register.html", data)
			return
		}

		data = RegisterPageData{
			Success: fmt.Sprintf("Registration successful for %s. Redirecting to login...", created.Name),
		}
		s.renderPage(w, r, http.StatusOK, "register", "Owner Registration", "register.html", data)
	}
}
