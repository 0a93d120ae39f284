package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// DiskBlobStore stores blob content and metadata on the local filesystem.
// Each blob occupies two files under the root directory: <id> for content
// and <id>.json for metadata. An in-memory index is rebuilt on startup by
// scanning the metadata files.
type DiskBlobStore struct {
	root  string
	mu    sync.RWMutex
	index map[string]BlobMetadata
}

// NewDiskBlobStore creates a DiskBlobStore rooted at dir, creating the
// directory if it does not exist and loading any existing metadata.
func NewDiskBlobStore(dir string) (*DiskBlobStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	s := &DiskBlobStore{
		root:  dir,
		index: make(map[string]BlobMetadata),
	}
	if err := s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DiskBlobStore) loadIndex() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("reading upload directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.root, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading metadata %s: %w", entry.Name(), err)
		}
		var meta BlobMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			// Skip corrupt metadata rather than failing startup.
			continue
		}
		s.index[meta.ID] = meta
	}
	return nil
}

func (s *DiskBlobStore) contentPath(id string) string {
	return filepath.Join(s.root, id)
}

func (s *DiskBlobStore) metadataPath(id string) string {
	return filepath.Join(s.root, id+".json")
}

// Upload validates inputs and writes the content and metadata to disk.
func (s *DiskBlobStore) Upload(_ context.Context, meta BlobMetadata, content io.Reader) (*BlobMetadata, error) {
	data, err := prepareUpload(&meta, content)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(s.contentPath(meta.ID), data, 0o640); err != nil {
		return nil, fmt.Errorf("writing blob content: %w", err)
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(s.metadataPath(meta.ID), metaJSON, 0o640); err != nil {
		os.Remove(s.contentPath(meta.ID))
		return nil, fmt.Errorf("writing blob metadata: %w", err)
	}

	s.mu.Lock()
	s.index[meta.ID] = meta
	s.mu.Unlock()

	out := meta // copy
	return &out, nil
}

// Download opens the content file and returns it with the blob metadata.
func (s *DiskBlobStore) Download(_ context.Context, id string) (io.ReadCloser, *BlobMetadata, error) {
	s.mu.RLock()
	meta, ok := s.index[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrBlobNotFound
	}

	f, err := os.Open(s.contentPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrBlobNotFound
		}
		return nil, nil, fmt.Errorf("opening blob content: %w", err)
	}

	m := meta // copy
	return f, &m, nil
}

// Delete removes the content and metadata files and the index entry.
func (s *DiskBlobStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return ErrBlobNotFound
	}

	if err := os.Remove(s.contentPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob content: %w", err)
	}
	if err := os.Remove(s.metadataPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob metadata: %w", err)
	}
	delete(s.index, id)
	return nil
}

// GetMetadata returns blob metadata without content.
func (s *DiskBlobStore) GetMetadata(_ context.Context, id string) (*BlobMetadata, error) {
	s.mu.RLock()
	meta, ok := s.index[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrBlobNotFound
	}
	m := meta // copy
	return &m, nil
}

// ListByClient returns blobs for a client, optionally filtered by category.
func (s *DiskBlobStore) ListByClient(_ context.Context, clientID, category string, limit, offset int) ([]*BlobMetadata, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*BlobMetadata
	for _, meta := range s.index {
		if meta.ClientID != clientID {
			continue
		}
		if category != "" && meta.Category != category {
			continue
		}
		m := meta // copy
		matched = append(matched, &m)
	}

	total := len(matched)
	matched = paginate(matched, limit, offset)
	return matched, total, nil
}

// Search returns blobs matching the given search parameters.
func (s *DiskBlobStore) Search(_ context.Context, params SearchParams) ([]*BlobMetadata, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*BlobMetadata
	for _, meta := range s.index {
		if !matchesSearch(&meta, params) {
			continue
		}
		m := meta // copy
		matched = append(matched, &m)
	}

	total := len(matched)
	matched = paginate(matched, params.Limit, params.Offset)
	return matched, total, nil
}
