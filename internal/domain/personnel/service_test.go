package personnel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/auth"
)

// -- Mock Repository --

type mockRepo struct {
	people map[uuid.UUID]*Person
	perms  map[uuid.UUID][]string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		people: make(map[uuid.UUID]*Person),
		perms:  make(map[uuid.UUID][]string),
	}
}

func (m *mockRepo) Create(_ context.Context, p *Person) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.people[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Person, error) {
	p, ok := m.people[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Person, error) {
	for _, p := range m.people {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, p *Person) error {
	m.people[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.people, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, activeOnly bool, limit, offset int) ([]*Person, int, error) {
	var out []*Person
	for _, p := range m.people {
		if !activeOnly || p.Active {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) GetPermissions(_ context.Context, id uuid.UUID) ([]string, error) {
	return m.perms[id], nil
}

func (m *mockRepo) ReplacePermissions(_ context.Context, id uuid.UUID, keys []string) error {
	m.perms[id] = keys
	return nil
}

// -- Tests --

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func newStaff(t *testing.T, svc *Service, email string) *Person {
	t.Helper()
	p := &Person{
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
		Title:     "Uzm. Psk.",
		Email:     email,
		Role:      auth.RolePsychologist,
	}
	if err := svc.CreatePersonnel(context.Background(), p, "gizli-sifre-1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return p
}

func TestCreatePersonnel(t *testing.T) {
	svc, _ := newTestService()

	p := newStaff(t, svc, "ayse@klinik.example")
	if !p.Active {
		t.Error("new personnel should start active")
	}
	if p.PasswordHash == "" || p.PasswordHash == "gizli-sifre-1" {
		t.Error("password must be stored hashed")
	}
}

func TestCreatePersonnel_Validation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name     string
		person   Person
		password string
	}{
		{"missing name", Person{Email: "a@b.c", Role: auth.RolePsychologist}, "gizli-sifre-1"},
		{"bad email", Person{FirstName: "A", LastName: "B", Email: "not-an-email", Role: auth.RoleAssistant}, "gizli-sifre-1"},
		{"bad role", Person{FirstName: "A", LastName: "B", Email: "a@b.c", Role: "janitor"}, "gizli-sifre-1"},
		{"short password", Person{FirstName: "A", LastName: "B", Email: "a@b.c", Role: auth.RoleAssistant}, "kisa"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.person
			if err := svc.CreatePersonnel(context.Background(), &p, tc.password); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	p := newStaff(t, svc, "ayse@klinik.example")

	got, err := svc.Login(context.Background(), "ayse@klinik.example", "gizli-sifre-1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != p.ID {
		t.Error("wrong person returned")
	}

	if _, err := svc.Login(context.Background(), "ayse@klinik.example", "yanlis-sifre"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "yok@klinik.example", "gizli-sifre-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLogin_InactiveRejected(t *testing.T) {
	svc, _ := newTestService()
	p := newStaff(t, svc, "ayse@klinik.example")

	if err := svc.Deactivate(context.Background(), p.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ayse@klinik.example", "gizli-sifre-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	svc, _ := newTestService()
	p := newStaff(t, svc, "ayse@klinik.example")

	if err := svc.SetPassword(context.Background(), p.ID, "yeni-sifre-123"); err != nil {
		t.Fatalf("set password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ayse@klinik.example", "yeni-sifre-123"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ayse@klinik.example", "gizli-sifre-1"); err == nil {
		t.Error("old password should no longer work")
	}
}

func TestReplacePermissions(t *testing.T) {
	svc, repo := newTestService()
	p := newStaff(t, svc, "ayse@klinik.example")

	keys, err := svc.ReplacePermissions(context.Background(), p.ID,
		[]string{"clients.read", "Clients.Read", "appointments.write"})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected duplicates collapsed to 2 keys, got %v", keys)
	}
	if keys[0] != "appointments.write" || keys[1] != "clients.read" {
		t.Errorf("expected sorted keys, got %v", keys)
	}
	if len(repo.perms[p.ID]) != 2 {
		t.Error("permissions not persisted")
	}
}

func TestReplacePermissions_UnknownKeyRejected(t *testing.T) {
	svc, _ := newTestService()
	p := newStaff(t, svc, "ayse@klinik.example")

	if _, err := svc.ReplacePermissions(context.Background(), p.ID, []string{"clients.delete-all"}); err == nil {
		t.Error("expected error for unknown permission key")
	}
}

func TestFullName(t *testing.T) {
	p := &Person{FirstName: "Ayşe", LastName: "Yılmaz", Title: "Uzm. Psk."}
	if p.FullName() != "Uzm. Psk. Ayşe Yılmaz" {
		t.Errorf("unexpected full name: %s", p.FullName())
	}
	p.Title = ""
	if p.FullName() != "Ayşe Yılmaz" {
		t.Errorf("unexpected full name: %s", p.FullName())
	}
}
