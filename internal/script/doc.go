// Package script loads YAML descriptions of status line sequences and replays
// them through a status.Reporter, letting shell-driven builds print a batch of
// Cargo-style progress lines from a single file.
package script
