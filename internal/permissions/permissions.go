// Package permissions holds the static role/permission table. Every
// protected operation consults it synchronously; it has no state and
// no I/O.
package permissions

type Role string

const (
	RoleUser       Role = "USER"
	RoleLibrarian  Role = "LIBRARIAN"
	RoleModerator  Role = "MODERATOR"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

type Permission string

const (
	BooksCreate Permission = "books:create"
	BooksRead   Permission = "books:read"
	BooksUpdate Permission = "books:update"
	BooksDelete Permission = "books:delete"

	UsersRead       Permission = "users:read"
	UsersUpdate     Permission = "users:update"
	UsersDelete     Permission = "users:delete"
	UsersChangeRole Permission = "users:change_role"

	GroupsModerate Permission = "groups:moderate"
	GroupsDelete   Permission = "groups:delete"

	AnalyticsView  Permission = "analytics:view"
	SettingsManage Permission = "settings:manage"
)

// rolePermissions is the whole authorization model. No hierarchy:
// SUPER_ADMIN enumerates the union of all permissions explicitly
// rather than inheriting.
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleUser: permSet(),

	RoleLibrarian: permSet(
		BooksCreate,
		BooksRead,
		BooksUpdate,
		BooksDelete,
		AnalyticsView,
	),

	RoleModerator: permSet(
		GroupsModerate,
		GroupsDelete,
		UsersRead,
		AnalyticsView,
	),

	RoleSuperAdmin: permSet(
		BooksCreate,
		BooksRead,
		BooksUpdate,
		BooksDelete,
		UsersRead,
		UsersUpdate,
		UsersDelete,
		UsersChangeRole,
		GroupsModerate,
		GroupsDelete,
		AnalyticsView,
		SettingsManage,
	),
}

// All lists every defined permission.
func All() []Permission {
	return []Permission{
		BooksCreate, BooksRead, BooksUpdate, BooksDelete,
		UsersRead, UsersUpdate, UsersDelete, UsersChangeRole,
		GroupsModerate, GroupsDelete,
		AnalyticsView, SettingsManage,
	}
}

// HasPermission reports whether role owns the permission. Unknown
// roles and permissions evaluate to false, never panic.
func HasPermission(role Role, p Permission) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[p]
	return ok
}

// HasAny reports whether role owns at least one of the permissions.
func HasAny(role Role, perms ...Permission) bool {
	for _, p := range perms {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// HasAll reports whether role owns every one of the permissions.
func HasAll(role Role, perms ...Permission) bool {
	for _, p := range perms {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// IsAdmin reports whether the role carries any elevated capability.
func IsAdmin(role Role) bool {
	_, known := rolePermissions[role]
	return known && role != RoleUser
}

func IsSuperAdmin(role Role) bool {
	return role == RoleSuperAdmin
}

// Valid reports whether the role exists in the table.
func Valid(role Role) bool {
	_, ok := rolePermissions[role]
	return ok
}

// DisplayName returns the Uzbek UI label for a role.
func DisplayName(role Role) string {
	switch role {
	case RoleUser:
		return "Foydalanuvchi"
	case RoleLibrarian:
		return "Kutubxonachi"
	case RoleModerator:
		return "Moderator"
	case RoleSuperAdmin:
		return "Super Admin"
	default:
		return string(role)
	}
}

func permSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}
