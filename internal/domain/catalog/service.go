package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Manager struct {
	repo Repository
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

func (m *Manager) CreateService(ctx context.Context, s *Service) error {
	if err := validate(s); err != nil {
		return err
	}
	s.Active = true
	return m.repo.Create(ctx, s)
}

func (m *Manager) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	return m.repo.GetByID(ctx, id)
}

func (m *Manager) UpdateService(ctx context.Context, s *Service) error {
	existing, err := m.repo.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	if err := validate(s); err != nil {
		return err
	}
	s.Active = existing.Active
	return m.repo.Update(ctx, s)
}

// DeactivateService hides the entry from the bookable list without losing
// the appointments that reference it.
func (m *Manager) DeactivateService(ctx context.Context, id uuid.UUID) error {
	s, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.Active = false
	return m.repo.Update(ctx, s)
}

func (m *Manager) ActivateService(ctx context.Context, id uuid.UUID) error {
	s, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.Active = true
	return m.repo.Update(ctx, s)
}

func (m *Manager) ListServices(ctx context.Context, includeInactive bool) ([]*Service, error) {
	return m.repo.List(ctx, !includeInactive)
}

func validate(s *Service) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.ServiceType == "" {
		return fmt.Errorf("service_type is required")
	}
	if s.DurationMin <= 0 {
		return fmt.Errorf("duration_min must be positive")
	}
	if s.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	return nil
}
