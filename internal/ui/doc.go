// Package ui translates command lifecycle events into Cargo-style status lines.
package ui
