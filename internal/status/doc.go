// Package status renders Cargo-style console status lines.
//
// Reporter formats leveled status messages ("Compiling: termstatus") and
// attribute lines ("path:\t/tmp/project") and hands each rendered line to a
// LineSink. ZapLineSink is the LineSink used by the CLI: it routes Ok and Info
// lines to standard output, Warn and Error lines to standard error, and colors
// them when the destination is a terminal.
package status
