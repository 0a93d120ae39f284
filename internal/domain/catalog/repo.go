package catalog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	Update(ctx context.Context, s *Service) error
	// List returns services ordered by name. When activeOnly is set,
	// deactivated entries are omitted.
	List(ctx context.Context, activeOnly bool) ([]*Service, error)
}
