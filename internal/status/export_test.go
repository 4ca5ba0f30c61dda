package status

import "io"

// SetTerminalDetector replaces terminal detection and returns a function restoring the previous detector.
func SetTerminalDetector(detector func(io.Writer) bool) func() {
	previousDetector := terminalDetector
	terminalDetector = detector
	return func() {
		terminalDetector = previousDetector
	}
}
