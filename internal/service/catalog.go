package service

import (
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/repository"
)

// The catalogue entities need no behavior beyond the generic CRUD service;
// these constructors only fix the entity type.

func NewBookService(repo repository.Store[domain.Book]) *Resource[domain.Book] {
	return NewResource(repo)
}

func NewCategoryService(repo repository.Store[domain.Category]) *Resource[domain.Category] {
	return NewResource(repo)
}

func NewRoleService(repo repository.Store[domain.Role]) *Resource[domain.Role] {
	return NewResource(repo)
}

func NewRecordService(repo repository.Store[domain.Record]) *Resource[domain.Record] {
	return NewResource(repo)
}
