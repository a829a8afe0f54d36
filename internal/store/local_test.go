package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLocal_SaveAndResolve(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	d, err := s.Save(ctx, "people.csv", strings.NewReader("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if len(d.ID) != 32 {
		t.Errorf("ID = %q, want 32 hex chars", d.ID)
	}
	if d.FileName != "people.csv" {
		t.Errorf("FileName = %q, want %q", d.FileName, "people.csv")
	}
	if d.SizeBytes != int64(len("a,b\n1,2\n")) {
		t.Errorf("SizeBytes = %d, want %d", d.SizeBytes, len("a,b\n1,2\n"))
	}

	h, err := s.Resolve(ctx, d.ID)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	rc, err := h.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("content = %q, want original bytes", data)
	}
}

func TestLocal_ResolveUnknownID(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	_, err = s.Resolve(context.Background(), "deadbeef")

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve() error = %v, want NotFoundError", err)
	}
	if notFound.ID != "deadbeef" {
		t.Errorf("NotFoundError.ID = %q, want %q", notFound.ID, "deadbeef")
	}
}

func TestLocal_ResolveRejectsPrefixMatch(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	d, err := s.Save(ctx, "x.csv", strings.NewReader("a\n1\n"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A proper prefix of a stored identifier must not resolve.
	_, err = s.Resolve(ctx, d.ID[:8])

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve(prefix) error = %v, want NotFoundError", err)
	}
}

func TestLocal_DefaultExtension(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	d, err := s.Save(ctx, "noextension", strings.NewReader("a\n1\n"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s.mu.Lock()
	entry := s.manifest[d.ID]
	s.mu.Unlock()

	if !strings.HasSuffix(entry.StoredName, ".csv") {
		t.Errorf("StoredName = %q, want .csv suffix", entry.StoredName)
	}
}

func TestLocal_ListOrderAndPersistence(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	first, err := s.Save(ctx, "first.csv", strings.NewReader("a\n1\n"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := s.Save(ctx, "second.csv", strings.NewReader("a\n2\n"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Reopen the store from disk; the manifest carries the state.
	reopened, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal(reopen) error = %v", err)
	}

	list, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(list))
	}

	ids := map[string]bool{list[0].ID: true, list[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("List() = %v, want both saved datasets", list)
	}

	if _, err := reopened.Resolve(ctx, first.ID); err != nil {
		t.Errorf("Resolve() after reopen error = %v", err)
	}
}
