package remote

import "context"

// Entry describes one file visible in the remote inbox folder.
type Entry struct {
	// ID is the provider-assigned identifier, stable across renames.
	ID string
	// Name is the display file name.
	Name string
	// Path is the full remote path of the file.
	Path string
	// ContentHash fingerprints the file content.
	ContentHash string
}

// Store is the remote file service the pipeline reads from and publishes to.
type Store interface {
	// List enumerates the files directly inside folder. Sub-folders are
	// not descended into.
	List(ctx context.Context, folder string) ([]Entry, error)
	// Fetch downloads the file identified by id and returns its bytes.
	Fetch(ctx context.Context, id string) ([]byte, error)
	// Put uploads content to path, overwriting any existing file.
	Put(ctx context.Context, path string, content []byte) error
}
