// Package permissions holds the role and ownership predicates used by the
// middleware and services. Predicates take a nil user for anonymous requests.
package permissions

import "ratehub/internal/api/models"

// IsAdmin reports whether the user may perform admin-only operations.
// Superusers count as admins.
func IsAdmin(user *models.User) bool {
	return user != nil && user.IsAdmin()
}

// IsModerator reports whether the user has the moderator role.
func IsModerator(user *models.User) bool {
	return user != nil && user.IsModerator()
}

// CanModify reports whether the user may update or delete a resource owned
// by authorID. The author, a moderator, or an admin qualifies.
func CanModify(user *models.User, authorID string) bool {
	if user == nil {
		return false
	}
	return user.ID == authorID || user.IsAdmin() || user.IsModerator()
}
