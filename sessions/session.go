package sessions

import (
	"github.com/shuzaifak/Property-Sync-Owner/users"
)

// Durable keys, both written on login and both erased on logout
const (
	KeyToken     = "token"
	KeyOwnerUser = "ownerUser"
)

// Session is the authenticated identity and credential held for one browser.
// The zero value is the logged-out session.
type Session struct {
	Identity *users.User
	Token    string
}

// IsAuthenticated is true iff an identity is present and it is an owner
func (s Session) IsAuthenticated() bool {
	return s.Identity != nil && s.Identity.Role == users.RoleOwner
}

// Empty reports whether nothing is held
func (s Session) Empty() bool {
	return s.Identity == nil && s.Token == ""
}
