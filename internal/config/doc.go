// Package config resolves runtime configuration for the labelsheet binary.
// Sources are layered with precedence: CLI flags > YAML config > environment
// variables > defaults. Besides the HTTP server settings it carries the base
// LayoutSettings that the CLI commands and the API start from.
package config
