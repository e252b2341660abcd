package users

// RoleType is the role the backend assigns to an account
type RoleType string

const (
	// RoleOwner is the only role allowed to use the owner panel
	RoleOwner  RoleType = "owner"
	RoleTenant RoleType = "tenant"
	RoleAdmin  RoleType = "admin"
)

// User is the identity returned by the backend and cached in the session.
type User struct {
	ID     string   `json:"_id,omitempty"`    // Backend identifier
	Name   string   `json:"name,omitempty"`   // Display name
	Email  string   `json:"email,omitempty"`  // Login email
	Role   RoleType `json:"role,omitempty"`   // Account role, see RoleOwner
	Avatar string   `json:"avatar,omitempty"` // Avatar URL, optional
}

// IsOwner reports whether the user may use the owner panel
func (u *User) IsOwner() bool {
	return u != nil && u.Role == RoleOwner
}

// AvatarURL returns the avatar or a placeholder when none was uploaded
func (u *User) AvatarURL() string {
	if u == nil || u.Avatar == "" {
		return "https://via.placeholder.com/150"
	}
	return u.Avatar
}
