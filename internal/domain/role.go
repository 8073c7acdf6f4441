package domain

// RoleName enumerates the roles assignable to users.
type RoleName string

const (
	RoleAdmin     RoleName = "admin"
	RoleLibrarian RoleName = "librarian"
	RoleMember    RoleName = "member"
)

// Permission identifies an action a role may perform.
type Permission string

const (
	PermissionManageUsers   Permission = "manage_users"
	PermissionManageBooks   Permission = "manage_books"
	PermissionManageRecords Permission = "manage_records"
	PermissionBorrowBooks   Permission = "borrow_books"
)

// Role groups permissions under a named role.
type Role struct {
	Metadata
	Name        RoleName     `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// IsPrivileged reports whether the role name grants administrative access.
func IsPrivileged(name string) bool {
	return RoleName(name) == RoleAdmin
}
