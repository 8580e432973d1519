package pipeline

import (
	"context"
	"fmt"
)

// Sync reconciles the remote inbox folder into the catalog. New files are
// registered as pending; known files with an unchanged hash keep their
// status (renames only refresh the display name); a changed hash forces
// the record back to pending so the batch reprocesses it.
func (p *Pipeline) Sync(ctx context.Context) (int, error) {
	entries, err := p.remote.List(ctx, p.cfg.Dropbox.Inbox)
	if err != nil {
		return 0, fmt.Errorf("sync inbox: %w", err)
	}

	for _, entry := range entries {
		if err := p.store.Upsert(ctx, entry.ID, entry.Name, entry.ContentHash); err != nil {
			return 0, fmt.Errorf("sync %s: %w", entry.Name, err)
		}
		p.logger.Debug("synchronized inbox entry",
			"remote_id", entry.ID,
			"file", entry.Name,
		)
	}

	p.logger.Info("inbox synchronized", "folder", p.cfg.Dropbox.Inbox, "entries", len(entries))
	return len(entries), nil
}
