package remote

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Fake is an in-memory Store for tests. All methods are safe for
// concurrent use.
type Fake struct {
	mu      sync.Mutex
	entries map[string]Entry  // keyed by id
	content map[string][]byte // keyed by id
	uploads map[string][]byte // keyed by path

	// FetchErr and PutErr, when set, are returned by the corresponding
	// methods for the matching id or path.
	FetchErr map[string]error
	PutErr   map[string]error
}

// NewFake returns an empty fake remote store.
func NewFake() *Fake {
	return &Fake{
		entries:  make(map[string]Entry),
		content:  make(map[string][]byte),
		uploads:  make(map[string][]byte),
		FetchErr: make(map[string]error),
		PutErr:   make(map[string]error),
	}
}

// Add registers an entry with its content.
func (f *Fake) Add(entry Entry, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entry.ID] = entry
	f.content[entry.ID] = content
}

func (f *Fake) List(ctx context.Context, folder string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := make([]Entry, 0, len(f.entries))
	for _, entry := range f.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (f *Fake) Fetch(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FetchErr[id]; err != nil {
		return nil, err
	}
	content, ok := f.content[id]
	if !ok {
		return nil, fmt.Errorf("remote: no such file %q", id)
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp, nil
}

func (f *Fake) Put(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.PutErr[path]; err != nil {
		return err
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	f.uploads[path] = cp
	return nil
}

// Upload returns the content uploaded to path, if any.
func (f *Fake) Upload(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.uploads[path]
	return content, ok
}

// UploadCount reports how many distinct paths received uploads.
func (f *Fake) UploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}
