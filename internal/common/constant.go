package common

// Roles recognised by the access checks.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultCookieName is the session cookie name used when none is configured.
const DefaultCookieName = "token"

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}
