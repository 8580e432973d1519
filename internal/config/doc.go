// Package config loads, normalizes, and validates librarian's TOML
// configuration and derives the work-directory paths used across the
// application.
package config
