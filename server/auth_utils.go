package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/shuzaifak/Property-Sync-Owner/sessions"
)

const (
	// browserCookieName identifies the browser whose session and drafts are held server side
	browserCookieName = "ps_browser"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the browser's *sessions.Store
	ContextKeySession ContextKey = "session"
)

// BrowserSessionMiddleware resolves the browser cookie, issuing one on first
// visit, and loads the browser's session from durable storage
func (s *Server) BrowserSessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browserID := ""
		if cookie, err := r.Cookie(browserCookieName); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				browserID = id.String()
			}
		}
		if browserID == "" {
			browserID = uuid.NewString()
			s.SetBrowserCookie(w, browserID, r, int(s.config.GetSessionCookieMaxAge().Seconds()))
		}

		store := sessions.NewStore(s.sessions, browserID)
		store.Load(r.Context())

		ctx := context.WithValue(r.Context(), ContextKeySession, store)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) SetBrowserCookie(w http.ResponseWriter, browserID string, r *http.Request, maxAge int) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     browserCookieName,
		Value:    browserID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func sessionFromContext(ctx context.Context) *sessions.Store {
	store, _ := ctx.Value(ContextKeySession).(*sessions.Store)
	return store
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	u, err := url.Parse(path)
	if err != nil {
		redirectSuccess(w, r, path)
		return
	}
	q := u.Query()
	q.Set("error", errorMsg)
	u.RawQuery = q.Encode()
	redirectSuccess(w, r, u.String())
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
