// Package pipeline runs fact-check steps against a subject document.
//
// A check is split into steps: the self check, the reference check, and the
// per-statistic breakdown. Each step receives the shared CheckReport and
// fills in its part. Steps run in order and honour context cancellation.
//
// BatchProcessor checks several subjects concurrently with errgroup.
package pipeline
