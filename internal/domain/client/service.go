package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for every portal login failure so the
// response does not reveal whether a national id is on file.
var ErrInvalidCredentials = errors.New("invalid credentials")

var validStatuses = map[string]bool{
	StatusActive:   true,
	StatusArchived: true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateClient(ctx context.Context, cl *Client) error {
	if cl.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if cl.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if cl.Status == "" {
		cl.Status = StatusActive
	}
	if !validStatuses[cl.Status] {
		return fmt.Errorf("invalid status: %s", cl.Status)
	}
	return s.repo.Create(ctx, cl)
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateClient(ctx context.Context, cl *Client) error {
	if cl.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if cl.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if cl.Status != "" && !validStatuses[cl.Status] {
		return fmt.Errorf("invalid status: %s", cl.Status)
	}
	return s.repo.Update(ctx, cl)
}

// ArchiveClient marks a client archived instead of deleting the record, so
// appointment and result history stays intact.
func (s *Service) ArchiveClient(ctx context.Context, id uuid.UUID) error {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("client not found: %w", err)
	}
	cl.Status = StatusArchived
	return s.repo.Update(ctx, cl)
}

func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListClients(ctx context.Context, status string, limit, offset int) ([]*Client, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.repo.List(ctx, status, limit, offset)
}

// PortalLogin authenticates a client against their national id and birth
// date. Clients have no passwords; this pair is what the front desk verifies
// over the phone as well.
func (s *Service) PortalLogin(ctx context.Context, nationalID string, birthDate time.Time) (*Client, error) {
	if nationalID == "" {
		return nil, ErrInvalidCredentials
	}
	cl, err := s.repo.GetByNationalID(ctx, nationalID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if cl.Status != StatusActive || cl.BirthDate == nil {
		return nil, ErrInvalidCredentials
	}
	y1, m1, d1 := cl.BirthDate.Date()
	y2, m2, d2 := birthDate.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return nil, ErrInvalidCredentials
	}
	return cl, nil
}

func (s *Service) SearchClients(ctx context.Context, query string, limit, offset int) ([]*Client, int, error) {
	if query == "" {
		return s.repo.List(ctx, "", limit, offset)
	}
	return s.repo.Search(ctx, query, limit, offset)
}
