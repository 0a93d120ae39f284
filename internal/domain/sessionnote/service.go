package sessionnote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrForbidden is returned when a reader may not see a private note or a
// non-author tries to change one.
var ErrForbidden = errors.New("note is private")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateNote(ctx context.Context, n *Note) error {
	if n.ClientID == uuid.Nil {
		return fmt.Errorf("client_id is required")
	}
	if n.AuthorID == uuid.Nil {
		return fmt.Errorf("author_id is required")
	}
	if n.Body == "" {
		return fmt.Errorf("body is required")
	}
	if n.SessionAt.IsZero() {
		n.SessionAt = time.Now()
	}
	return s.repo.Create(ctx, n)
}

// GetNote returns the note if the reader is allowed to see it.
func (s *Service) GetNote(ctx context.Context, id, readerID uuid.UUID, isAdmin bool) (*Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.VisibleTo(readerID, isAdmin) {
		return nil, ErrForbidden
	}
	return n, nil
}

// UpdateNote applies the editable fields. Only the author or an admin may
// change a note.
func (s *Service) UpdateNote(ctx context.Context, n *Note, editorID uuid.UUID, isAdmin bool) error {
	existing, err := s.repo.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	if existing.AuthorID != editorID && !isAdmin {
		return ErrForbidden
	}
	if n.Body == "" {
		return fmt.Errorf("body is required")
	}

	existing.SessionAt = n.SessionAt
	existing.Body = n.Body
	existing.Private = n.Private
	*n = *existing
	return s.repo.Update(ctx, existing)
}

func (s *Service) DeleteNote(ctx context.Context, id, editorID uuid.UUID, isAdmin bool) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != editorID && !isAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// ListByClient returns the client's notes with private notes of other
// authors filtered out. The total reflects the unfiltered count.
func (s *Service) ListByClient(ctx context.Context, clientID, readerID uuid.UUID, isAdmin bool, limit, offset int) ([]*Note, int, error) {
	notes, total, err := s.repo.ListByClient(ctx, clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	visible := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if n.VisibleTo(readerID, isAdmin) {
			visible = append(visible, n)
		}
	}
	return visible, total, nil
}
