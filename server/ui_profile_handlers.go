package server

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
)

const (
	msgChooseAvatar   = "Please choose an image to upload"
	msgAvatarFailed   = "Failed to upload avatar"
	msgAvatarUploaded = "Profile picture updated"
)

// ProfilePageData contains data for rendering the profile page
type ProfilePageData struct {
	Name      string
	Email     string
	Role      string
	AvatarURL string
	Error     string
	Success   string
}

// ProfilePageHandler shows the signed-in owner (GET /profile)
func (s *Server) ProfilePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderProfile(w, r, http.StatusOK, "", "")
	}
}

// AvatarUploadHandler replaces the avatar and refreshes the session identity
// (POST /profile/avatar)
func (s *Server) AvatarUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, files.MaxFileSize+1<<20)
		if err := r.ParseMultipartForm(files.MaxFileSize); err != nil {
			s.renderProfile(w, r, http.StatusBadRequest, msgChooseAvatar, "")
			return
		}
		_, header, err := r.FormFile("avatar")
		if err != nil {
			if !errors.Is(err, http.ErrMissingFile) {
				log.Err(err).Msg("Failed to read avatar upload")
			}
			s.renderProfile(w, r, http.StatusUnprocessableEntity, msgChooseAvatar, "")
			return
		}
		avatar, err := files.FromHeader(header)
		if err != nil {
			log.Err(err).Msg("Failed to read avatar upload")
			s.renderProfile(w, r, http.StatusRequestEntityTooLarge, err.Error(), "")
			return
		}

		store := sessionFromContext(r.Context())
		updated, err := s.apiFor(store).UploadAvatar(r.Context(), avatar)
		if r.Context().Err() != nil {
			return
		}
		if err != nil {
			log.Err(err).Msg("Upload failed")
			s.renderProfile(w, r, http.StatusBadGateway, apperrors.MessageOr(err, msgAvatarFailed), "")
			return
		}

		// Partial user payloads must not sign the owner out
		current := store.Identity()
		if updated.Role == "" {
			updated.Role = current.Role
		}
		if updated.ID == "" {
			updated.ID = current.ID
		}
		store.UpdateIdentity(r.Context(), updated)
		s.renderProfile(w, r, http.StatusOK, "", msgAvatarUploaded)
	}
}

func (s *Server) renderProfile(w http.ResponseWriter, r *http.Request, status int, errorMsg, success string) {
	user := sessionFromContext(r.Context()).Identity()
	data := ProfilePageData{
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		AvatarURL: user.AvatarURL(),
		Error:     errorMsg,
		Success:   success,
	}
	s.renderPage(w, r, status, "profile", "Profile", "profile.html", data)
}
