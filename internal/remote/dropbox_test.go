package remote

import (
	"testing"

	"librarian/internal/config"
)

func TestNewDropboxRequiresToken(t *testing.T) {
	cfg := config.Default()
	cfg.Dropbox.AccessToken = "  "
	if _, err := NewDropbox(&cfg); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestUploadPrefixGuard(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		path    string
		allowed bool
	}{
		{"inside prefix", "/Research", "/Research/AI/paper.pdf", true},
		{"prefix itself", "/Research", "/Research", true},
		{"sibling folder", "/Research", "/Researcher/paper.pdf", false},
		{"outside prefix", "/Research", "/Private/notes.md", false},
		{"root prefix allows all", "/", "/anything/at/all.pdf", true},
		{"root prefix rejects relative", "/", "relative.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dropbox{uploadPrefix: tt.prefix}
			if got := d.allowed(tt.path); got != tt.allowed {
				t.Fatalf("allowed(%q) with prefix %q = %v, want %v", tt.path, tt.prefix, got, tt.allowed)
			}
		})
	}
}
