package anamnesis

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/blobstore"
)

// ErrIncomplete is returned when a form with empty sections is marked
// completed.
type ErrIncomplete struct {
	Missing []string
}

func (e *ErrIncomplete) Error() string {
	return fmt.Sprintf("sections not filled: %s", strings.Join(e.Missing, ", "))
}

type Service struct {
	repo  Repository
	blobs blobstore.BlobStore
}

func NewService(repo Repository, blobs blobstore.BlobStore) *Service {
	return &Service{repo: repo, blobs: blobs}
}

func (s *Service) CreateForm(ctx context.Context, f *Form) error {
	if f.ClientID == uuid.Nil {
		return fmt.Errorf("client_id is required")
	}
	if f.FilledBy == uuid.Nil {
		return fmt.Errorf("filled_by is required")
	}
	f.Status = StatusDraft
	return s.repo.Create(ctx, f)
}

func (s *Service) GetForm(ctx context.Context, id uuid.UUID) (*Form, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByClient(ctx context.Context, clientID uuid.UUID) (*Form, error) {
	return s.repo.GetByClient(ctx, clientID)
}

// UpdateForm applies the section edits. A completed form stays completed
// only while every section is still filled.
func (s *Service) UpdateForm(ctx context.Context, f *Form) error {
	existing, err := s.repo.GetByID(ctx, f.ID)
	if err != nil {
		return err
	}

	existing.Complaint = f.Complaint
	existing.History = f.History
	existing.Family = f.Family
	existing.Medical = f.Medical
	existing.EducationWork = f.EducationWork
	if existing.Status == StatusCompleted && len(existing.MissingSections()) > 0 {
		existing.Status = StatusDraft
	}
	*f = *existing
	return s.repo.Update(ctx, existing)
}

// Complete marks the form completed; every section must be filled.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Form, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if missing := f.MissingSections(); len(missing) > 0 {
		return nil, &ErrIncomplete{Missing: missing}
	}
	f.Status = StatusCompleted
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) DeleteForm(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AttachDocument stores an uploaded document against the form.
func (s *Service) AttachDocument(ctx context.Context, formID uuid.UUID, fileName, contentType, uploadedBy string, content io.Reader) (*blobstore.BlobMetadata, error) {
	f, err := s.repo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	meta := blobstore.BlobMetadata{
		FileName:    fileName,
		ContentType: contentType,
		ClientID:    f.ClientID.String(),
		AnamnesisID: f.ID.String(),
		Category:    "anamnesis-attachment",
		CreatedBy:   uploadedBy,
	}
	return s.blobs.Upload(ctx, meta, content)
}

// ListDocuments returns the metadata of every document attached to the form.
func (s *Service) ListDocuments(ctx context.Context, formID uuid.UUID) ([]*blobstore.BlobMetadata, error) {
	f, err := s.repo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	docs, _, err := s.blobs.Search(ctx, blobstore.SearchParams{
		ClientID: f.ClientID.String(),
		Category: "anamnesis-attachment",
		Limit:    100,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*blobstore.BlobMetadata, 0, len(docs))
	for _, d := range docs {
		if d.AnamnesisID == f.ID.String() {
			out = append(out, d)
		}
	}
	return out, nil
}

// OpenDocument streams a document back, verifying it belongs to the form.
func (s *Service) OpenDocument(ctx context.Context, formID uuid.UUID, blobID string) (io.ReadCloser, *blobstore.BlobMetadata, error) {
	rc, meta, err := s.blobs.Download(ctx, blobID)
	if err != nil {
		return nil, nil, err
	}
	if meta.AnamnesisID != formID.String() {
		rc.Close()
		return nil, nil, blobstore.ErrBlobNotFound
	}
	return rc, meta, nil
}
