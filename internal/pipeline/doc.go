// Package pipeline drives the batch document flow: synchronizing the
// remote inbox into the catalog, dispatching pending records to a bounded
// worker pool, and collecting per-job results back into the catalog.
package pipeline
