// Package cli constructs the termstatus command-line interface, wiring the
// Cobra command hierarchy, the Viper configuration loader, the diagnostic zap
// logger, and the status reporter that prints Cargo-style lines for shell
// scripts.
package cli
