package service

import (
	"strings"

	"github.com/recipebox-dev/recipebox/internal/domain"
	"github.com/recipebox-dev/recipebox/internal/errors"
)

// to mock service in tests
type AttributeService interface {
	List(user domain.User) ([]domain.Attribute, error)
	Create(user domain.User, name string) (domain.Attribute, error)
}

// Attribute serves one owned attribute kind (tags or ingredients).
// Both kinds are append/list-only and always scoped to the requester.
type Attribute struct {
	storage AttributeStorage
	kind    domain.AttributeKind
}

type AttributeStorage interface {
	Attributes(kind domain.AttributeKind, owner domain.UserId) ([]domain.Attribute, error)
	CreateAttribute(kind domain.AttributeKind, attr domain.Attribute) (domain.AttributeId, error)
}

func NewAttribute(storage AttributeStorage, kind domain.AttributeKind) *Attribute {
	return &Attribute{storage: storage, kind: kind}
}

// List returns the requester's attributes, name-descending.
func (s *Attribute) List(user domain.User) ([]domain.Attribute, error) {
	return s.storage.Attributes(s.kind, user.Id)
}

// Create persists a new attribute owned by the requester. The owner is
// never taken from input.
func (s *Attribute) Create(user domain.User, name string) (domain.Attribute, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Attribute{}, errors.Validation("Name must not be empty")
	}

	attr := domain.Attribute{Name: name, Owner: user.Id}
	id, err := s.storage.CreateAttribute(s.kind, attr)
	if err != nil {
		return domain.Attribute{}, err
	}
	attr.Id = id
	return attr, nil
}
