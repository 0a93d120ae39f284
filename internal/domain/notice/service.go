package notice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/websocket"
)

var validTypes = map[string]bool{
	TypeInfo:        true,
	TypeAppointment: true,
	TypeAssessment:  true,
	TypeSystem:      true,
}

type Service struct {
	repo      Repository
	publisher websocket.EventPublisher
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetPublisher wires the websocket hub in. Optional.
func (s *Service) SetPublisher(p websocket.EventPublisher) {
	s.publisher = p
}

func (s *Service) CreateNotice(ctx context.Context, n *Notice) error {
	if n.PersonnelID == uuid.Nil {
		return fmt.Errorf("personnel_id is required")
	}
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if !validTypes[n.Type] {
		return fmt.Errorf("invalid notice type: %s", n.Type)
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.broadcast(ctx, "notice.created", n)
	return nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) (*Notice, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.Read {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			return nil, err
		}
		n.Read = true
	}
	return n, nil
}

func (s *Service) DeleteNotice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPersonnel(ctx context.Context, personnelID uuid.UUID, unreadOnly bool, limit, offset int) ([]*Notice, int, error) {
	return s.repo.ListByPersonnel(ctx, personnelID, unreadOnly, limit, offset)
}

func (s *Service) broadcast(ctx context.Context, eventType string, n *Notice) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	_ = s.publisher.Publish(ctx, websocket.NewEvent(eventType, websocket.TopicNotices, "notice", n.ID.String(), data))
}
