package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const manifestName = "manifest.json"

// manifestEntry is one dataset's record in the on-disk manifest.
type manifestEntry struct {
	StoredName string    `json:"stored_name"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Local stores datasets as files under a data directory with an explicit
// manifest mapping identifier to stored file name. The manifest is the
// single source of truth for resolution; stray files in the directory are
// ignored.
type Local struct {
	dir string

	mu       sync.Mutex
	manifest map[string]manifestEntry
}

// NewLocal opens (creating if needed) a local dataset store rooted at dir.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Local{dir: dir, manifest: make(map[string]manifestEntry)}

	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Fresh store.
	case err != nil:
		return nil, fmt.Errorf("read manifest: %w", err)
	default:
		if err := json.Unmarshal(data, &s.manifest); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	}

	return s, nil
}

func (s *Local) Save(ctx context.Context, fileName string, r io.Reader) (Dataset, error) {
	id := newID()

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".csv"
	}
	storedName := id + ext

	f, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return Dataset{}, fmt.Errorf("create dataset file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filepath.Join(s.dir, storedName))
		return Dataset{}, fmt.Errorf("write dataset file: %w", err)
	}

	entry := manifestEntry{
		StoredName: storedName,
		FileName:   fileName,
		SizeBytes:  size,
		UploadedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.manifest[id] = entry
	if err := s.writeManifest(); err != nil {
		delete(s.manifest, id)
		os.Remove(filepath.Join(s.dir, storedName))
		return Dataset{}, err
	}

	return Dataset{
		ID:         id,
		FileName:   fileName,
		SizeBytes:  size,
		UploadedAt: entry.UploadedAt,
	}, nil
}

func (s *Local) Resolve(ctx context.Context, id string) (Handle, error) {
	s.mu.Lock()
	entry, ok := s.manifest[id]
	s.mu.Unlock()

	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	return localHandle(filepath.Join(s.dir, entry.StoredName)), nil
}

func (s *Local) List(ctx context.Context) ([]Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Dataset, 0, len(s.manifest))
	for id, e := range s.manifest {
		out = append(out, Dataset{
			ID:         id,
			FileName:   e.FileName,
			SizeBytes:  e.SizeBytes,
			UploadedAt: e.UploadedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.Before(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// writeManifest persists the manifest atomically. Callers hold s.mu.
func (s *Local) writeManifest() error {
	data, err := json.MarshalIndent(s.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	tmp := filepath.Join(s.dir, manifestName+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, manifestName)); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

type localHandle string

func (h localHandle) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(string(h))
}

// newID generates an opaque dataset identifier: a uuid4 rendered as 32 hex
// characters.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
