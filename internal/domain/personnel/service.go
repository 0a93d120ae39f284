package personnel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/auth"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so
// login responses don't reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

var validRoles = map[string]bool{
	auth.RoleAdmin:        true,
	auth.RolePsychologist: true,
	auth.RoleAssistant:    true,
}

// validPermissions is the full set of grantable permission keys.
var validPermissions = map[string]bool{
	"clients.read":       true,
	"clients.write":      true,
	"appointments.read":  true,
	"appointments.write": true,
	"assessments.read":   true,
	"assessments.write":  true,
	"notes.read":         true,
	"notes.write":        true,
	"anamnesis.read":     true,
	"anamnesis.write":    true,
	"settings.write":     true,
	"reports.read":       true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreatePersonnel registers a staff member. The plaintext password is
// hashed before it reaches the repository.
func (s *Service) CreatePersonnel(ctx context.Context, p *Person, password string) error {
	if err := validate(p); err != nil {
		return err
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	p.Active = true
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPersonnel(ctx context.Context, id uuid.UUID) (*Person, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePersonnel(ctx context.Context, p *Person) error {
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := validate(p); err != nil {
		return err
	}

	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	existing.Title = p.Title
	existing.Email = p.Email
	existing.Phone = p.Phone
	existing.Role = p.Role
	existing.Active = p.Active
	*p = *existing
	return s.repo.Update(ctx, existing)
}

// SetPassword replaces the stored password hash.
func (s *Service) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return s.repo.Update(ctx, p)
}

// Deactivate keeps the record but blocks future logins.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Active = false
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePersonnel(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPersonnel(ctx context.Context, activeOnly bool, limit, offset int) ([]*Person, int, error) {
	return s.repo.List(ctx, activeOnly, limit, offset)
}

// Login verifies the credentials and returns the staff member. Inactive
// accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (*Person, error) {
	p, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !p.Active || !auth.CheckPassword(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

func (s *Service) GetPermissions(ctx context.Context, id uuid.UUID) ([]string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetPermissions(ctx, id)
}

// ReplacePermissions swaps the personnel's whole permission set. Unknown
// keys are rejected, duplicates collapsed.
func (s *Service) ReplacePermissions(ctx context.Context, id uuid.UUID, keys []string) ([]string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(keys))
	cleaned := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.ToLower(strings.TrimSpace(key))
		if !validPermissions[key] {
			return nil, fmt.Errorf("unknown permission key: %s", key)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, key)
	}
	sort.Strings(cleaned)

	if err := s.repo.ReplacePermissions(ctx, id, cleaned); err != nil {
		return nil, err
	}
	return cleaned, nil
}

func validate(p *Person) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if !validRoles[p.Role] {
		return fmt.Errorf("invalid role: %s", p.Role)
	}
	return nil
}
