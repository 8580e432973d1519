package indexing_test

import (
	"context"
	"strings"
	"testing"

	"librarian/internal/catalog"
	"librarian/internal/indexing"
	"librarian/internal/remote"
	"librarian/internal/testsupport"
)

func TestGenerateUploadsFolderIndex(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fake := remote.NewFake()
	ctx := context.Background()

	seed := []struct {
		id      string
		title   string
		authors []string
		summary string
		target  string
	}{
		{"id:1", "Beta Paper", []string{"A. One"}, "Second alphabetically.", "/Research/AI/beta.pdf"},
		{"id:2", "Alpha Paper", []string{"B. Two", "C. Three"}, "First alphabetically.", "/Research/AI/alpha.pdf"},
		{"id:3", "Elsewhere", nil, "Different folder.", "/Research/PL/other.pdf"},
	}
	for _, s := range seed {
		if err := store.Upsert(ctx, s.id, "f.pdf", "hash"); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		meta := catalog.Metadata{Title: s.title, Authors: s.authors, Summary: s.summary}
		if err := store.MarkProcessed(ctx, s.id, meta, []string{s.target}); err != nil {
			t.Fatalf("MarkProcessed: %v", err)
		}
	}

	count, err := indexing.Generate(ctx, store, fake, "/Research/AI")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 indexed records, got %d", count)
	}

	content, ok := fake.Upload("/Research/AI/README.md")
	if !ok {
		t.Fatal("README.md not uploaded")
	}
	text := string(content)
	if !strings.Contains(text, "# Ai") && !strings.Contains(text, "# AI") {
		t.Fatalf("missing heading:\n%s", text)
	}
	if !strings.Contains(text, "| Title | Authors | Summary |") {
		t.Fatalf("missing table header:\n%s", text)
	}
	if !strings.Contains(text, "[Alpha Paper](alpha.pdf)") {
		t.Fatalf("missing relative link:\n%s", text)
	}
	if !strings.Contains(text, "B. Two, C. Three") {
		t.Fatalf("missing authors:\n%s", text)
	}
	if strings.Contains(text, "Elsewhere") {
		t.Fatalf("index leaked records from another folder:\n%s", text)
	}
	// Title-ordered rows.
	if strings.Index(text, "Alpha Paper") > strings.Index(text, "Beta Paper") {
		t.Fatalf("rows not ordered by title:\n%s", text)
	}
}

func TestGenerateEmptyFolderUploadsNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fake := remote.NewFake()

	count, err := indexing.Generate(context.Background(), store, fake, "/Research/AI")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 records, got %d", count)
	}
	if fake.UploadCount() != 0 {
		t.Fatalf("expected no uploads, got %d", fake.UploadCount())
	}
}

func TestGenerateRequiresFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := indexing.Generate(context.Background(), store, remote.NewFake(), "  "); err == nil {
		t.Fatal("expected error for empty folder")
	}
}
