package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/library-service/internal/domain"
)

// Collection table names.
const (
	UsersTable      = "users"
	RolesTable      = "roles"
	BooksTable      = "books"
	CategoriesTable = "categories"
	RecordsTable    = "records"
)

// NewUserRepository binds the users collection.
func NewUserRepository(pool *pgxpool.Pool) Store[domain.User] {
	return NewCollection[domain.User](pool, UsersTable, "User")
}

// NewRoleRepository binds the roles collection.
func NewRoleRepository(pool *pgxpool.Pool) Store[domain.Role] {
	return NewCollection[domain.Role](pool, RolesTable, "Role")
}

// NewBookRepository binds the books collection.
func NewBookRepository(pool *pgxpool.Pool) Store[domain.Book] {
	return NewCollection[domain.Book](pool, BooksTable, "Book")
}

// NewCategoryRepository binds the categories collection.
func NewCategoryRepository(pool *pgxpool.Pool) Store[domain.Category] {
	return NewCollection[domain.Category](pool, CategoriesTable, "Category")
}

// NewRecordRepository binds the records collection.
func NewRecordRepository(pool *pgxpool.Pool) Store[domain.Record] {
	return NewCollection[domain.Record](pool, RecordsTable, "Record")
}
