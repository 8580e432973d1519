package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// timestampLayout keeps a fixed-width fraction so lexicographic ordering in
// SQL matches chronological ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func nowTimestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// Upsert reconciles a freshly listed remote file into the catalog.
//
// A new id is inserted as pending. An existing id with an unchanged hash
// keeps its status and only refreshes name and timestamp, so re-running a
// sync against an unchanged backlog never disturbs processed or error
// records. A changed hash resets the status to pending unconditionally —
// the only path that moves a record backward out of a terminal state —
// and clears any stale error message.
func (s *Store) Upsert(ctx context.Context, remoteID, fileName, contentHash string) error {
	if remoteID == "" {
		return errors.New("catalog: upsert requires a remote id")
	}
	if contentHash == "" {
		return errors.New("catalog: upsert requires a content hash")
	}

	_, err := s.execWithRetry(ctx, `
        INSERT INTO files (remote_id, file_name, content_hash, status, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(remote_id) DO UPDATE SET
            file_name    = excluded.file_name,
            content_hash = excluded.content_hash,
            status = CASE
                WHEN files.content_hash != excluded.content_hash THEN excluded.status
                ELSE files.status
            END,
            last_error = CASE
                WHEN files.content_hash != excluded.content_hash THEN NULL
                ELSE files.last_error
            END,
            updated_at = excluded.updated_at`,
		remoteID, fileName, contentHash, StatusPending, nowTimestamp(),
	)
	if err != nil {
		return fmt.Errorf("upsert file %s: %w", remoteID, err)
	}
	return nil
}

// LoadPending returns up to limit pending records, most recently updated first.
func (s *Store) LoadPending(ctx context.Context, limit int) ([]*FileRecord, error) {
	return s.ListByStatus(ctx, StatusPending, limit)
}

// ListByStatus returns up to limit records in the given status, most
// recently updated first.
func (s *Store) ListByStatus(ctx context.Context, status Status, limit int) ([]*FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT remote_id, file_name, content_hash, status, title, authors,
               summary, target_paths, last_error, updated_at
        FROM files
        WHERE status = ?
        ORDER BY updated_at DESC
        LIMIT ?`,
		status, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", status, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// MarkProcessed records a successful job: terminal processed status, the
// extracted metadata, and every target path written. A zero-target success
// is recorded the same way with an empty path list.
func (s *Store) MarkProcessed(ctx context.Context, remoteID string, meta Metadata, targetPaths []string) error {
	authors, err := encodeStrings(meta.Authors)
	if err != nil {
		return fmt.Errorf("encode authors: %w", err)
	}
	targets, err := encodeStrings(targetPaths)
	if err != nil {
		return fmt.Errorf("encode target paths: %w", err)
	}

	res, err := s.execWithRetry(ctx, `
        UPDATE files
        SET status = ?, title = ?, authors = ?, summary = ?, target_paths = ?,
            last_error = NULL, updated_at = ?
        WHERE remote_id = ?`,
		StatusProcessed, meta.Title, authors, meta.Summary, targets, nowTimestamp(), remoteID,
	)
	if err != nil {
		return fmt.Errorf("mark processed %s: %w", remoteID, err)
	}
	return requireRow(res, remoteID)
}

// MarkFailed records a failed job with its human-readable cause.
func (s *Store) MarkFailed(ctx context.Context, remoteID, message string) error {
	res, err := s.execWithRetry(ctx, `
        UPDATE files
        SET status = ?, last_error = ?, updated_at = ?
        WHERE remote_id = ?`,
		StatusError, message, nowTimestamp(), remoteID,
	)
	if err != nil {
		return fmt.Errorf("mark failed %s: %w", remoteID, err)
	}
	return requireRow(res, remoteID)
}

// SetStatus overwrites a record's status unconditionally. The error message
// is cleared whenever the new status is not error, preserving the invariant
// that last_error is only set on error records.
func (s *Store) SetStatus(ctx context.Context, remoteID string, status Status) error {
	if _, ok := ParseStatus(string(status)); !ok {
		return fmt.Errorf("catalog: unknown status %q", status)
	}

	res, err := s.execWithRetry(ctx, `
        UPDATE files
        SET status = ?,
            last_error = CASE WHEN ? = 'error' THEN last_error ELSE NULL END,
            updated_at = ?
        WHERE remote_id = ?`,
		status, status, nowTimestamp(), remoteID,
	)
	if err != nil {
		return fmt.Errorf("set status %s: %w", remoteID, err)
	}
	return requireRow(res, remoteID)
}

// GetByID returns a single record.
func (s *Store) GetByID(ctx context.Context, remoteID string) (*FileRecord, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT remote_id, file_name, content_hash, status, title, authors,
               summary, target_paths, last_error, updated_at
        FROM files
        WHERE remote_id = ?`,
		remoteID,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", remoteID, err)
	}
	return record, nil
}

// FindByTargetPrefix returns records whose written target paths contain the
// given folder, ordered by title for index rendering.
func (s *Store) FindByTargetPrefix(ctx context.Context, folder string) ([]*FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT remote_id, file_name, content_hash, status, title, authors,
               summary, target_paths, last_error, updated_at
        FROM files
        WHERE target_paths LIKE ?
        ORDER BY title ASC`,
		"%"+folder+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("find by target prefix: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// CountByStatus returns aggregated record counts per status.
func (s *Store) CountByStatus(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM files GROUP BY status")
	if err != nil {
		return Summary{}, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	summary := Summary{Counts: make(map[Status]int, len(allStatuses))}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Summary{}, fmt.Errorf("scan status count: %w", err)
		}
		summary.Counts[status] = count
		summary.Total += count
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("iterate status counts: %w", err)
	}
	return summary, nil
}

func requireRow(res sql.Result, remoteID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, remoteID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*FileRecord, error) {
	var (
		record      FileRecord
		title       sql.NullString
		authors     sql.NullString
		summary     sql.NullString
		targetPaths sql.NullString
		lastError   sql.NullString
		updatedAt   string
	)
	if err := row.Scan(
		&record.RemoteID, &record.FileName, &record.ContentHash, &record.Status,
		&title, &authors, &summary, &targetPaths, &lastError, &updatedAt,
	); err != nil {
		return nil, err
	}

	record.Title = title.String
	record.Summary = summary.String
	record.LastError = lastError.String

	var err error
	if record.Authors, err = decodeStrings(authors.String); err != nil {
		return nil, fmt.Errorf("decode authors for %s: %w", record.RemoteID, err)
	}
	if record.TargetPaths, err = decodeStrings(targetPaths.String); err != nil {
		return nil, fmt.Errorf("decode target paths for %s: %w", record.RemoteID, err)
	}

	if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at for %s: %w", record.RemoteID, err)
	}
	return &record, nil
}

func scanRecords(rows *sql.Rows) ([]*FileRecord, error) {
	var records []*FileRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeStrings(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return nil, err
	}
	return out, nil
}
