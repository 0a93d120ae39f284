package personnel

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*Person, error)
	GetByEmail(ctx context.Context, email string) (*Person, error)
	Update(ctx context.Context, p *Person) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Person, int, error)

	GetPermissions(ctx context.Context, personnelID uuid.UUID) ([]string, error)
	ReplacePermissions(ctx context.Context, personnelID uuid.UUID, keys []string) error
}
