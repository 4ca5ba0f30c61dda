package status

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	colorModeAutoNameConstant           = "auto"
	colorModeAlwaysNameConstant         = "always"
	colorModeNeverNameConstant          = "never"
	noColorEnvironmentVariableConstant  = "NO_COLOR"
	terminalEnvironmentVariableConstant = "TERM"
	dumbTerminalNameConstant            = "dumb"
	unsupportedColorModeErrorTemplate   = "unsupported color mode: %q (expected auto, always, or never)"
)

var terminalDetector = writerIsTerminal

// ColorMode controls whether status lines are colorized.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoNameConstant)
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysNameConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverNameConstant)
)

// UnsupportedColorModeError reports a color mode that cannot be parsed.
type UnsupportedColorModeError struct {
	Value string
}

// Error describes the unsupported color mode value.
func (unsupportedError UnsupportedColorModeError) Error() string {
	return fmt.Sprintf(unsupportedColorModeErrorTemplate, unsupportedError.Value)
}

// ParseColorMode resolves a case-insensitive color mode. An empty value selects ColorModeAuto.
func ParseColorMode(value string) (ColorMode, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	switch normalizedValue {
	case "", colorModeAutoNameConstant:
		return ColorModeAuto, nil
	case colorModeAlwaysNameConstant:
		return ColorModeAlways, nil
	case colorModeNeverNameConstant:
		return ColorModeNever, nil
	default:
		return ColorModeAuto, UnsupportedColorModeError{Value: value}
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so configuration decoders can populate a ColorMode.
func (colorMode *ColorMode) UnmarshalText(text []byte) error {
	parsedMode, parseError := ParseColorMode(string(text))
	if parseError != nil {
		return parseError
	}
	*colorMode = parsedMode
	return nil
}

// Palette decides, per stream, whether lines are colorized and holds the color for each severity.
type Palette struct {
	colors         map[Severity]*color.Color
	enabledStreams map[Stream]bool
}

// NewPalette resolves the color mode against the destination writers.
// In ColorModeAuto a stream is colorized only when its writer is a terminal,
// NO_COLOR is empty, and TERM is not dumb.
func NewPalette(colorMode ColorMode, outputWriter io.Writer, errorWriter io.Writer) Palette {
	enabledStreams := map[Stream]bool{}

	switch colorMode {
	case ColorModeAlways:
		enabledStreams[StreamStandardOutput] = true
		enabledStreams[StreamStandardError] = true
	case ColorModeNever:
	default:
		if colorPermittedByEnvironment() {
			enabledStreams[StreamStandardOutput] = terminalDetector(outputWriter)
			enabledStreams[StreamStandardError] = terminalDetector(errorWriter)
		}
	}

	colors := make(map[Severity]*color.Color, len(severityColorAttributes))
	for _, severity := range Severities() {
		severityColor := color.New(severity.colorAttribute())
		severityColor.EnableColor()
		colors[severity] = severityColor
	}

	return Palette{colors: colors, enabledStreams: enabledStreams}
}

// Enabled reports whether lines written to the stream are colorized.
func (palette Palette) Enabled(stream Stream) bool {
	return palette.enabledStreams[stream]
}

// Colorize wraps the line in the severity's color when its stream is colorized.
func (palette Palette) Colorize(severity Severity, line string) string {
	if !palette.Enabled(severity.Stream()) {
		return line
	}
	severityColor, colorExists := palette.colors[severity]
	if !colorExists {
		return line
	}
	return severityColor.Sprint(line)
}

func colorPermittedByEnvironment() bool {
	if len(os.Getenv(noColorEnvironmentVariableConstant)) > 0 {
		return false
	}
	return os.Getenv(terminalEnvironmentVariableConstant) != dumbTerminalNameConstant
}

func writerIsTerminal(writer io.Writer) bool {
	descriptorWriter, hasDescriptor := writer.(interface{ Fd() uintptr })
	if !hasDescriptor {
		return false
	}
	descriptor := descriptorWriter.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}
