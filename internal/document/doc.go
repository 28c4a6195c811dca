// Package document loads Information documents from JSON or YAML.
//
// Every field of the document schema is required and key names are
// case-sensitive; unknown fields are ignored. Any decoding problem is
// reported as ErrInvalidDocument.
//
// The package also embeds the three demonstration documents used by
// `factcheck check` when no files are given: a trusted government
// reference, a false website and a social media post.
package document
