package server

import (
	"net/http"

	"github.com/shuzaifak/Property-Sync-Owner/metrics"
	"github.com/shuzaifak/Property-Sync-Owner/properties"
)

// PropertiesPageData contains data for rendering the property list
type PropertiesPageData struct {
	State       properties.ListState
	Records     []properties.Record
	Pending     *properties.Record
	LoadError   string
	DeleteError string
}

// PropertiesPageHandler fetches and lists the owner's properties (GET /properties)
func (s *Server) PropertiesPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFromContext(r.Context())
		list := s.workflows.List(store.BrowserID())
		// load errors are rendered from the list state
		_ = list.Load(r.Context(), s.apiFor(store))
		if r.Context().Err() != nil {
			return
		}
		s.renderProperties(w, r, http.StatusOK, list)
	}
}

// RequestDeleteHandler opens the delete confirmation (POST /properties/{id}/delete)
func (s *Server) RequestDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFromContext(r.Context())
		list := s.workflows.List(store.BrowserID())
		if !list.RequestDelete(r.PathValue("id")) {
			redirectSuccess(w, r, RouteProperties)
			return
		}
		s.renderProperties(w, r, http.StatusOK, list)
	}
}

// CancelDeleteHandler closes the confirmation without deleting
func (s *Server) CancelDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFromContext(r.Context())
		list := s.workflows.List(store.BrowserID())
		list.CancelDelete()
		s.renderProperties(w, r, http.StatusOK, list)
	}
}

// ConfirmDeleteHandler deletes the pending property and re-renders the cached
// list without refetching
func (s *Server) ConfirmDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFromContext(r.Context())
		list := s.workflows.List(store.BrowserID())
		if _, ok := list.Pending(); !ok {
			redirectSuccess(w, r, RouteProperties)
			return
		}

		err := list.ConfirmDelete(r.Context(), s.apiFor(store))
		if r.Context().Err() != nil {
			return
		}
		status := http.StatusOK
		if err != nil {
			metrics.PropertiesDeletedTotal.WithLabelValues("failed").Inc()
			status = http.StatusBadGateway
		} else {
			metrics.PropertiesDeletedTotal.WithLabelValues("success").Inc()
		}
		s.renderProperties(w, r, status, list)
	}
}

func (s *Server) renderProperties(w http.ResponseWriter, r *http.Request, status int, list *properties.List) {
	data := PropertiesPageData{
		State:       list.State(),
		Records:     list.Records(),
		LoadError:   list.LoadError(),
		DeleteError: list.DeleteError(),
	}
	if pending, ok := list.Pending(); ok {
		data.Pending = &pending
	}
	s.renderPage(w, r, status, "properties", "My Properties", "properties.html", data)
}
