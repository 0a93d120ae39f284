package sessionnote

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	notes map[uuid.UUID]*Note
}

func newMockRepo() *mockRepo {
	return &mockRepo{notes: make(map[uuid.UUID]*Note)}
}

func (m *mockRepo) Create(_ context.Context, n *Note) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	n.UpdatedAt = time.Now()
	m.notes[n.ID] = n
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return n, nil
}

func (m *mockRepo) Update(_ context.Context, n *Note) error {
	m.notes[n.ID] = n
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.notes, id)
	return nil
}

func (m *mockRepo) ListByClient(_ context.Context, clientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	var out []*Note
	for _, n := range m.notes {
		if n.ClientID == clientID {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

// -- Tests --

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func TestCreateNote(t *testing.T) {
	svc, _ := newTestService()

	n := &Note{ClientID: uuid.New(), AuthorID: uuid.New(), Body: "İlk görüşme tamamlandı."}
	if err := svc.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if n.SessionAt.IsZero() {
		t.Error("expected session date to default to now")
	}
}

func TestCreateNote_Validation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name string
		note Note
	}{
		{"missing client", Note{AuthorID: uuid.New(), Body: "x"}},
		{"missing author", Note{ClientID: uuid.New(), Body: "x"}},
		{"missing body", Note{ClientID: uuid.New(), AuthorID: uuid.New()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := tc.note
			if err := svc.CreateNote(context.Background(), &n); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetNote_PrivateHiddenFromOthers(t *testing.T) {
	svc, _ := newTestService()
	author := uuid.New()

	n := &Note{ClientID: uuid.New(), AuthorID: author, Body: "Gizli gözlem.", Private: true}
	if err := svc.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetNote(context.Background(), n.ID, author, false); err != nil {
		t.Errorf("author should see own private note: %v", err)
	}
	if _, err := svc.GetNote(context.Background(), n.ID, uuid.New(), false); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for other reader, got %v", err)
	}
	if _, err := svc.GetNote(context.Background(), n.ID, uuid.New(), true); err != nil {
		t.Errorf("admin should see private note: %v", err)
	}
}

func TestUpdateNote_OnlyAuthorOrAdmin(t *testing.T) {
	svc, repo := newTestService()
	author := uuid.New()

	n := &Note{ClientID: uuid.New(), AuthorID: author, Body: "Taslak."}
	if err := svc.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edit := Note{ID: n.ID, SessionAt: n.SessionAt, Body: "Güncellenmiş not.", Private: true}
	if err := svc.UpdateNote(context.Background(), &edit, uuid.New(), false); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author, got %v", err)
	}
	if err := svc.UpdateNote(context.Background(), &edit, author, false); err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if repo.notes[n.ID].Body != "Güncellenmiş not." || !repo.notes[n.ID].Private {
		t.Errorf("update not applied: %+v", repo.notes[n.ID])
	}
	if edit.AuthorID != author {
		t.Error("author must not change on update")
	}
}

func TestDeleteNote(t *testing.T) {
	svc, repo := newTestService()
	author := uuid.New()

	n := &Note{ClientID: uuid.New(), AuthorID: author, Body: "Silinecek."}
	if err := svc.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteNote(context.Background(), n.ID, uuid.New(), false); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author, got %v", err)
	}
	if err := svc.DeleteNote(context.Background(), n.ID, author, false); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.notes[n.ID]; ok {
		t.Error("note should be gone")
	}
}

func TestListByClient_FiltersPrivate(t *testing.T) {
	svc, _ := newTestService()
	clientID := uuid.New()
	author := uuid.New()
	other := uuid.New()

	for _, n := range []*Note{
		{ClientID: clientID, AuthorID: author, Body: "Açık not."},
		{ClientID: clientID, AuthorID: author, Body: "Gizli not.", Private: true},
		{ClientID: clientID, AuthorID: other, Body: "Meslektaş notu."},
	} {
		if err := svc.CreateNote(context.Background(), n); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	visible, total, err := svc.ListByClient(context.Background(), clientID, other, false, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("expected unfiltered total 3, got %d", total)
	}
	if len(visible) != 2 {
		t.Errorf("expected 2 visible notes for non-author, got %d", len(visible))
	}

	all, _, err := svc.ListByClient(context.Background(), clientID, uuid.New(), true, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin should see all 3 notes, got %d", len(all))
	}
}
