package client

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cl *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	GetByNationalID(ctx context.Context, nationalID string) (*Client, error)
	Update(ctx context.Context, cl *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status string, limit, offset int) ([]*Client, int, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*Client, int, error)
}
