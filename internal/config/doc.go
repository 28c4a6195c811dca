// Package config provides configuration structures and utilities for factcheck.
// It defines which documents are checked, which trusted references they are
// checked against, and report and storage preferences.
package config
