package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"librarian/internal/config"
)

// Dropbox talks to the Dropbox content API. Uploads are restricted to the
// configured prefix so a bad classification rule cannot scribble over
// unrelated parts of the account.
type Dropbox struct {
	client       files.Client
	uploadPrefix string
}

// NewDropbox builds a Dropbox store from the configuration.
func NewDropbox(cfg *config.Config) (*Dropbox, error) {
	token := strings.TrimSpace(cfg.Dropbox.AccessToken)
	if token == "" {
		return nil, errors.New("remote: dropbox access token is required")
	}

	sdkCfg := dropbox.Config{
		Token: token,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Dropbox.TimeoutSeconds) * time.Second,
		},
	}
	return &Dropbox{
		client:       files.New(sdkCfg),
		uploadPrefix: cfg.Dropbox.UploadPrefix,
	}, nil
}

// List walks the folder listing, following pagination cursors until the
// service reports no more results. Folder entries are skipped.
func (d *Dropbox) List(ctx context.Context, folder string) ([]Entry, error) {
	arg := files.NewListFolderArg(folder)
	res, err := d.client.ListFolder(arg)
	if err != nil {
		return nil, fmt.Errorf("remote: list %s: %w", folder, err)
	}

	var entries []Entry
	for {
		for _, raw := range res.Entries {
			meta, ok := raw.(*files.FileMetadata)
			if !ok {
				continue
			}
			entries = append(entries, Entry{
				ID:          meta.Id,
				Name:        meta.Name,
				Path:        meta.PathDisplay,
				ContentHash: meta.ContentHash,
			})
		}
		if !res.HasMore {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err = d.client.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, fmt.Errorf("remote: continue list %s: %w", folder, err)
		}
	}
	return entries, nil
}

// Fetch downloads a file by its stable id.
func (d *Dropbox) Fetch(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, reader, err := d.client.Download(files.NewDownloadArg(id))
	if err != nil {
		return nil, fmt.Errorf("remote: download %s: %w", id, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("remote: read %s: %w", id, err)
	}
	return content, nil
}

// Put uploads content to path in overwrite mode. Paths outside the
// configured upload prefix are rejected before any bytes leave the process.
func (d *Dropbox) Put(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.allowed(path) {
		return fmt.Errorf("remote: path %q is outside upload prefix %q", path, d.uploadPrefix)
	}

	arg := files.NewUploadArg(path)
	arg.Mode = &files.WriteMode{Tagged: dropbox.Tagged{Tag: "overwrite"}}
	if _, err := d.client.Upload(arg, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("remote: upload %s: %w", path, err)
	}
	return nil
}

func (d *Dropbox) allowed(path string) bool {
	prefix := d.uploadPrefix
	if prefix == "" || prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
