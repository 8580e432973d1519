// Package catalog persists one record per remote file in SQLite and owns
// the status lifecycle that makes repeated runs idempotent: the
// change-detection upsert, the bounded pending scan, and the terminal
// status transitions applied by the batch collector.
package catalog
