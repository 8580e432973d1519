package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"librarian/internal/catalog"
	"librarian/internal/testsupport"
)

func TestUpsertInsertsPendingRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := store.Upsert(ctx, "id:1", "paper.pdf", "hash-1"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	record, err := store.GetByID(ctx, "id:1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Status != catalog.StatusPending {
		t.Fatalf("expected pending status, got %q", record.Status)
	}
	if record.FileName != "paper.pdf" || record.ContentHash != "hash-1" {
		t.Fatalf("unexpected record: %#v", record)
	}
}

func TestUpsertUnchangedHashKeepsStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := store.Upsert(ctx, "id:1", "paper.pdf", "hash-1"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.MarkProcessed(ctx, "id:1", catalog.Metadata{Title: "T"}, nil); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}

	// Rename without a content change must not disturb the terminal status.
	if err := store.Upsert(ctx, "id:1", "renamed.pdf", "hash-1"); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	record, err := store.GetByID(ctx, "id:1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Status != catalog.StatusProcessed {
		t.Fatalf("status churned on unchanged hash: %q", record.Status)
	}
	if record.FileName != "renamed.pdf" {
		t.Fatalf("file name not refreshed: %q", record.FileName)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := store.Upsert(ctx, "id:1", "paper.pdf", "hash-1"); err != nil {
			t.Fatalf("Upsert %d failed: %v", i, err)
		}
	}

	summary, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if summary.Total != 1 || summary.Counts[catalog.StatusPending] != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestUpsertHashChangeResetsTerminalStates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	cases := []struct {
		name   string
		settle func(id string) error
	}{
		{"processed", func(id string) error {
			return store.MarkProcessed(ctx, id, catalog.Metadata{Title: "T"}, []string{"/out/a.pdf"})
		}},
		{"error", func(id string) error {
			return store.MarkFailed(ctx, id, "download failed")
		}},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := fmt.Sprintf("id:%d", i)
			if err := store.Upsert(ctx, id, "paper.pdf", "hash-1"); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
			if err := tc.settle(id); err != nil {
				t.Fatalf("settle failed: %v", err)
			}

			if err := store.Upsert(ctx, id, "paper.pdf", "hash-2"); err != nil {
				t.Fatalf("hash-change Upsert failed: %v", err)
			}

			record, err := store.GetByID(ctx, id)
			if err != nil {
				t.Fatalf("GetByID failed: %v", err)
			}
			if record.Status != catalog.StatusPending {
				t.Fatalf("content change must reset to pending, got %q", record.Status)
			}
			if record.ContentHash != "hash-2" {
				t.Fatalf("hash not refreshed: %q", record.ContentHash)
			}
			if record.LastError != "" {
				t.Fatalf("last_error must be cleared on reset, got %q", record.LastError)
			}
		})
	}
}

func TestLoadPendingOrdersAndBounds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("id:%d", i)
		if err := store.Upsert(ctx, id, fmt.Sprintf("paper-%d.pdf", i), "hash"); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}
	// One record is already settled and must never be scanned again.
	if err := store.MarkProcessed(ctx, "id:0", catalog.Metadata{}, nil); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}

	pending, err := store.LoadPending(ctx, 3)
	if err != nil {
		t.Fatalf("LoadPending failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 records, got %d", len(pending))
	}
	// Most recently updated first.
	if pending[0].RemoteID != "id:4" {
		t.Fatalf("expected id:4 first, got %q", pending[0].RemoteID)
	}
	for _, record := range pending {
		if record.Status != catalog.StatusPending {
			t.Fatalf("non-pending record returned: %#v", record)
		}
	}
}

func TestLoadPendingEmptyIsNotAnError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	pending, err := store.LoadPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("LoadPending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty result, got %d", len(pending))
	}
}

func TestMarkProcessedStoresMetadataAndTargets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Upsert(ctx, "id:1", "paper.pdf", "hash-1"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	meta := catalog.Metadata{
		Title:   "Quantum Computing for Dummies",
		Authors: []string{"John Doe", "Jane Roe"},
		Summary: "A beginner's guide.",
	}
	targets := []string{"/Research/Quantum/paper.pdf"}
	if err := store.MarkProcessed(ctx, "id:1", meta, targets); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}

	record, err := store.GetByID(ctx, "id:1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Title != meta.Title || record.Summary != meta.Summary {
		t.Fatalf("metadata not stored: %#v", record)
	}
	if len(record.Authors) != 2 || record.Authors[1] != "Jane Roe" {
		t.Fatalf("authors not stored: %#v", record.Authors)
	}
	if len(record.TargetPaths) != 1 || record.TargetPaths[0] != targets[0] {
		t.Fatalf("target paths not stored: %#v", record.TargetPaths)
	}
}

func TestMarkFailedSetsAndClearsLastError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Upsert(ctx, "id:1", "paper.pdf", "hash-1"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.MarkFailed(ctx, "id:1", "upload rejected"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	record, err := store.GetByID(ctx, "id:1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Status != catalog.StatusError || record.LastError != "upload rejected" {
		t.Fatalf("unexpected record after failure: %#v", record)
	}

	// Any subsequent successful transition clears the stale message.
	if err := store.MarkProcessed(ctx, "id:1", catalog.Metadata{Title: "T"}, nil); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}
	record, err = store.GetByID(ctx, "id:1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.LastError != "" {
		t.Fatalf("last_error not cleared: %q", record.LastError)
	}
}

func TestSetStatusValidatesAndClearsError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Upsert(ctx, "id:1", "paper.pdf", "hash-1"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.SetStatus(ctx, "id:1", catalog.Status("bogus")); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if err := store.MarkFailed(ctx, "id:1", "boom"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}
	if err := store.SetStatus(ctx, "id:1", catalog.StatusSkipped); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	record, err := store.GetByID(ctx, "id:1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Status != catalog.StatusSkipped || record.LastError != "" {
		t.Fatalf("unexpected record: %#v", record)
	}
}

func TestMutationsOnMissingRecordReturnNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.GetByID(ctx, "id:missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.MarkFailed(ctx, "id:missing", "x"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.MarkProcessed(ctx, "id:missing", catalog.Metadata{}, nil); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByTargetPrefix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	seed := []struct {
		id     string
		title  string
		target string
	}{
		{"id:1", "Beta Paper", "/Research/AI/beta.pdf"},
		{"id:2", "Alpha Paper", "/Research/AI/alpha.pdf"},
		{"id:3", "Gamma Paper", "/Research/PL/gamma.pdf"},
	}
	for _, s := range seed {
		if err := store.Upsert(ctx, s.id, "f.pdf", "hash"); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if err := store.MarkProcessed(ctx, s.id, catalog.Metadata{Title: s.title}, []string{s.target}); err != nil {
			t.Fatalf("MarkProcessed failed: %v", err)
		}
	}

	records, err := store.FindByTargetPrefix(ctx, "/Research/AI")
	if err != nil {
		t.Fatalf("FindByTargetPrefix failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Title != "Alpha Paper" || records[1].Title != "Beta Paper" {
		t.Fatalf("records not ordered by title: %q, %q", records[0].Title, records[1].Title)
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := catalog.ParseStatus(" Pending "); !ok || status != catalog.StatusPending {
		t.Fatalf("ParseStatus failed: %q %v", status, ok)
	}
	if _, ok := catalog.ParseStatus("bogus"); ok {
		t.Fatal("expected bogus status to be rejected")
	}
	if len(catalog.AllStatuses()) != 6 {
		t.Fatalf("expected 6 statuses, got %d", len(catalog.AllStatuses()))
	}
}
