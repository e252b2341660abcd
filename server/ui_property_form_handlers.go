package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
	"github.com/shuzaifak/Property-Sync-Owner/metrics"
	"github.com/shuzaifak/Property-Sync-Owner/properties"
)

const (
	msgDraftExpired = "Your form expired, please start again"

	// maxFormMemory bounds a property form post: four images plus fields
	maxFormMemory = properties.MaxImages*files.MaxFileSize + 1<<20
)

// PropertyFormPageData contains data for rendering the add/edit form
type PropertyFormPageData struct {
	Draft     properties.View
	MaxImages int
	Editing   bool
}

// PropertyFormPageHandler starts a draft, hydrated when ?id= is given (GET /add-property)
func (s *Server) PropertyFormPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFromContext(r.Context())
		draft := properties.NewDraft()

		if id := r.URL.Query().Get("id"); id != "" {
			// a failed load is shown on the form, which then refuses to submit
			_ = draft.Hydrate(r.Context(), s.apiFor(store), id)
			if r.Context().Err() != nil {
				return
			}
		}

		s.workflows.PutDraft(store.BrowserID(), draft)
		s.renderPropertyForm(w, r, http.StatusOK, draft, r.URL.Query().Get("error"))
	}
}

// PropertyFormSubmitHandler saves the typed fields, attaches any chosen
// images and, for action=submit, sends the draft (POST /add-property)
func (s *Server) PropertyFormSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := s.draftFromForm(w, r)
		if !ok {
			return
		}

		chosen, err := files.FromForm(r.MultipartForm, "images")
		if err != nil {
			log.Err(err).Msg("Failed to read uploaded images")
			s.renderPropertyForm(w, r, http.StatusRequestEntityTooLarge, draft, err.Error())
			return
		}
		if len(chosen) > 0 {
			draft.AttachImages(chosen)
		}

		if r.FormValue("action") != "submit" {
			s.renderPropertyForm(w, r, http.StatusOK, draft, "")
			return
		}

		store := sessionFromContext(r.Context())
		view := draft.View()
		err = draft.Submit(r.Context(), s.apiFor(store))
		if r.Context().Err() != nil {
			return
		}
		switch {
		case err == nil:
			metrics.DraftSubmissionsTotal.WithLabelValues(string(view.Mode), "success").Inc()
			s.workflows.DeleteDraft(store.BrowserID(), draft.ID())
			redirectSuccess(w, r, RouteProperties)
		case apperrors.Is(err, apperrors.ErrValidation):
			metrics.DraftSubmissionsTotal.WithLabelValues(string(view.Mode), "invalid").Inc()
			s.renderPropertyForm(w, r, http.StatusUnprocessableEntity, draft, "")
		default:
			metrics.DraftSubmissionsTotal.WithLabelValues(string(view.Mode), "failed").Inc()
			s.renderPropertyForm(w, r, http.StatusBadGateway, draft, "")
		}
	}
}

// RemoveImageHandler drops an existing or new image from the draft
func (s *Server) RemoveImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := s.draftFromForm(w, r)
		if !ok {
			return
		}
		index, err := strconv.Atoi(r.FormValue("index"))
		if err != nil {
			http.Error(w, "Invalid image index", http.StatusBadRequest)
			return
		}
		draft.RemoveImage(properties.ImageKind(r.FormValue("kind")), index)
		s.renderPropertyForm(w, r, http.StatusOK, draft, "")
	}
}

// DraftImageHandler serves a not yet uploaded image back for preview
func (s *Server) DraftImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFromContext(r.Context())
		draft, err := s.workflows.Draft(store.BrowserID(), r.PathValue("draft"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		index, err := strconv.Atoi(r.PathValue("index"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		f, ok := draft.NewImageFile(index)
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeBytes(w, f.Name, f.ContentType, f.Data)
	}
}

// draftFromForm parses the form, finds the draft it belongs to and applies
// the typed fields. It writes the response itself when it returns false.
func (s *Server) draftFromForm(w http.ResponseWriter, r *http.Request) (*properties.Draft, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormMemory+1<<20)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return nil, false
	}

	store := sessionFromContext(r.Context())
	draft, err := s.workflows.Draft(store.BrowserID(), r.FormValue("draft"))
	if err != nil {
		target := RouteAddProperty
		if id := r.FormValue("property_id"); id != "" {
			target += "?" + url.Values{"id": {id}}.Encode()
		}
		redirectWithError(w, r, target, msgDraftExpired)
		return nil, false
	}

	draft.SetFields(properties.Fields{
		Title:       r.FormValue("title"),
		Address:     r.FormValue("address"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
	})
	return draft, true
}

func (s *Server) renderPropertyForm(w http.ResponseWriter, r *http.Request, status int, draft *properties.Draft, notice string) {
	view := draft.View()
	if view.PageError == "" {
		view.PageError = notice
	}
	data := PropertyFormPageData{
		Draft:     view,
		MaxImages: properties.MaxImages,
		Editing:   view.Mode == properties.ModeEdit,
	}
	title := "List New Property"
	if data.Editing {
		title = "Edit Property"
	}
	s.renderPage(w, r, status, "add-property", title, "property_form.html", data)
}

// draftImageURL is the preview location of a pending upload
func draftImageURL(draftID string, index int) string {
	return fmt.Sprintf("%s/drafts/%s/images/%d", RouteAddProperty, url.PathEscape(draftID), index)
}
