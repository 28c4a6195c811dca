// Package database stores check results in SQLite.
//
// VerdictDB keeps every check report together with the fingerprint of the
// document that was checked, so the history of a website can be listed and
// a past verdict traced back to the exact document version. The documents
// themselves are stored once per fingerprint.
//
// The driver is modernc.org/sqlite, a CGO-free SQLite implementation.
package database
