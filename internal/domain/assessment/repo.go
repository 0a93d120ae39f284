package assessment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateAssignment(ctx context.Context, a *Assignment) error
	GetAssignment(ctx context.Context, id uuid.UUID) (*Assignment, error)
	UpdateAssignment(ctx context.Context, a *Assignment) error
	ListAssignmentsByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Assignment, int, error)

	CreateResult(ctx context.Context, r *Result) error
	GetResult(ctx context.Context, id uuid.UUID) (*Result, error)
	UpdateResult(ctx context.Context, r *Result) error
	ListResultsByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Result, int, error)
	ListAllResults(ctx context.Context) ([]*Result, error)
}
