package notice

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Notice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notice, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPersonnel(ctx context.Context, personnelID uuid.UUID, unreadOnly bool, limit, offset int) ([]*Notice, int, error)
}
