// Package guard decides which pages a browser may render based on its session.
package guard

import "strings"

// Access is the requirement a page places on the session
type Access int

const (
	Public Access = iota
	AuthRequired
)

const (
	PathLogin       = "/login"
	PathRegister    = "/register"
	PathDashboard   = "/"
	PathProperties  = "/properties"
	PathAddProperty = "/add-property"
	PathProfile     = "/profile"
)

// Routes is the table of declared pages
var Routes = map[string]Access{
	PathLogin:       Public,
	PathRegister:    Public,
	PathDashboard:   AuthRequired,
	PathProperties:  AuthRequired,
	PathAddProperty: AuthRequired,
	PathProfile:     AuthRequired,
}

// Decision is the outcome for one navigation
type Decision struct {
	Render     bool
	RedirectTo string
}

// Decide maps a path and the authentication flag to render or redirect
func Decide(path string, authenticated bool) Decision {
	access, ok := Routes[normalise(path)]
	switch {
	case !ok && authenticated:
		return Decision{RedirectTo: PathDashboard}
	case !ok:
		return Decision{RedirectTo: PathLogin}
	case access == AuthRequired && !authenticated:
		return Decision{RedirectTo: PathLogin}
	default:
		return Decision{Render: true}
	}
}

// PageFor returns the declared page an action path belongs to, so that
// /properties/{id}/delete shares the requirement of /properties
func PageFor(path string) (string, bool) {
	path = normalise(path)
	if _, ok := Routes[path]; ok {
		return path, true
	}
	best := ""
	for page := range Routes {
		if page == PathDashboard {
			continue
		}
		if strings.HasPrefix(path, page+"/") && len(page) > len(best) {
			best = page
		}
	}
	return best, best != ""
}

func normalise(path string) string {
	if path == "" {
		return PathDashboard
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return PathDashboard
		}
	}
	return path
}
