package server

import "github.com/shuzaifak/Property-Sync-Owner/guard"

// Route path constants
const (
	// Pages, as declared in the route guard
	RouteLogin       = guard.PathLogin
	RouteRegister    = guard.PathRegister
	RouteDashboard   = guard.PathDashboard
	RouteProperties  = guard.PathProperties
	RouteAddProperty = guard.PathAddProperty
	RouteProfile     = guard.PathProfile

	// Session actions
	RouteLogout = "/logout"

	// Property list actions
	RoutePropertyDelete        = "/properties/{id}/delete"
	RoutePropertyDeleteConfirm = "/properties/delete/confirm"
	RoutePropertyDeleteCancel  = "/properties/delete/cancel"

	// Property form actions
	RouteAddPropertyImageRemove = "/add-property/images/remove"
	RouteDraftImage             = "/add-property/drafts/{draft}/images/{index}"

	// Profile actions
	RouteProfileAvatar = "/profile/avatar"

	// Operational
	RouteMetrics = "/metrics"
	RouteHealth  = "/healthz"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
