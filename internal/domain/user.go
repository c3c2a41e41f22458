package domain

// Role enumerates account roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleSuperAdmin Role = "super_admin"
)

// DefaultRole is used when the upstream sends an unrecognized role.
const DefaultRole = RoleUser

// KnownRole reports whether r is one of the closed role set.
func KnownRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator, RoleSuperAdmin:
		return true
	}
	return false
}

// User is the canonical account record, shared by the customer profile and
// the admin list views. Contact fields default to empty strings, never
// absent; IsActive defaults true.
type User struct {
	ID                     string `json:"id"`
	Email                  string `json:"email"`
	FirstName              string `json:"firstName"`
	LastName               string `json:"lastName"`
	Name                   string `json:"name"`
	Phone                  string `json:"phone"`
	Role                   Role   `json:"role"`
	IsVerified             bool   `json:"isVerified"`
	IsActive               bool   `json:"isActive"`
	SubscribedToNewsletter bool   `json:"subscribedToNewsletter"`
	CreatedAt              string `json:"createdAt,omitempty"`
}
