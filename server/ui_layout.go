package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

type layoutData struct {
	AppName    string
	PageTitle  string
	ActivePage string
	UserName   string
	AvatarURL  string
	SignedIn   bool
	Content    template.HTML
}

// renderPage renders contentTemplate with data inside the shared layout
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, activePage, pageTitle, contentTemplate string, data any) {
	var content bytes.Buffer
	if err := s.templates[contentTemplate].Execute(&content, data); err != nil {
		log.Err(err).Str("template", contentTemplate).Msg("Failed to render content")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	layout := layoutData{
		AppName:    s.config.GetAppName(),
		PageTitle:  pageTitle,
		ActivePage: activePage,
		Content:    template.HTML(content.String()),
	}
	if store := sessionFromContext(r.Context()); store != nil && store.IsAuthenticated() {
		user := store.Identity()
		layout.SignedIn = true
		layout.UserName = user.Name
		layout.AvatarURL = user.AvatarURL()
	}

	var page bytes.Buffer
	if err := s.templates["layout.html"].Execute(&page, layout); err != nil {
		log.Err(err).Msg("Failed to render layout")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = page.WriteTo(w)
}

