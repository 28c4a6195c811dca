// Package model defines the core data structures used throughout factcheck.
//
// This package contains the following main types:
//   - Source: Where a claim comes from, with a trust flag
//   - Statistic: A described numeric claim and the sources citing it
//   - Information: A website-level document made of statistics
//   - CheckReport: The result of checking one document against references
//   - Summary: Verdict counts across a batch of checks
//
// Source, Statistic and Information implement the Checkable interface,
// which judges accuracy either on its own terms (IsAccurate) or relative to
// trusted values of the same type (IsAccurateWithSources).
//
// The models are serializable to JSON for document loading, report output
// and database storage.
package model
