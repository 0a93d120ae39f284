package anamnesis

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, f *Form) error
	GetByID(ctx context.Context, id uuid.UUID) (*Form, error)
	GetByClient(ctx context.Context, clientID uuid.UUID) (*Form, error)
	Update(ctx context.Context, f *Form) error
	Delete(ctx context.Context, id uuid.UUID) error
}
