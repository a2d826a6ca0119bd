// Package ingestion provides the bulk question import pipeline.
//
// The pipeline takes parsed question documents, validates them, skips
// external IDs that are already stored, derives the searchable content and
// its embedding on a worker pool, and writes the survivors to storage. Each
// input ends up imported, skipped or failed, and the run returns a report
// with the per-question failures.
package ingestion
