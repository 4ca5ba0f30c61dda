package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap/zapcore"
)

const (
	severityOkNameConstant           = "ok"
	severityInfoNameConstant         = "info"
	severityWarnNameConstant         = "warn"
	severityErrorNameConstant        = "error"
	severityOkAliasConstant          = "success"
	severityWarnAliasConstant        = "warning"
	severityErrorAliasConstant       = "err"
	warningStatusWordConstant        = "warning"
	errorStatusWordConstant          = "error"
	unknownSeverityNameTemplate      = "severity(%d)"
	unsupportedSeverityErrorTemplate = "unsupported severity: %q"
	standardOutputStreamNameConstant = "stdout"
	standardErrorStreamNameConstant  = "stderr"
)

// Severity classifies a status line and selects its stream and color.
type Severity int

// Supported severities.
const (
	SeverityOk Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// Stream identifies the console stream a severity is written to.
type Stream string

// Supported streams.
const (
	StreamStandardOutput Stream = Stream(standardOutputStreamNameConstant)
	StreamStandardError  Stream = Stream(standardErrorStreamNameConstant)
)

// UnsupportedSeverityError reports a severity name that cannot be parsed.
type UnsupportedSeverityError struct {
	Value string
}

// Error describes the unsupported severity value.
func (unsupportedError UnsupportedSeverityError) Error() string {
	return fmt.Sprintf(unsupportedSeverityErrorTemplate, unsupportedError.Value)
}

var severityNames = map[Severity]string{
	SeverityOk:    severityOkNameConstant,
	SeverityInfo:  severityInfoNameConstant,
	SeverityWarn:  severityWarnNameConstant,
	SeverityError: severityErrorNameConstant,
}

var severityLookup = map[string]Severity{
	severityOkNameConstant:     SeverityOk,
	severityOkAliasConstant:    SeverityOk,
	severityInfoNameConstant:   SeverityInfo,
	severityWarnNameConstant:   SeverityWarn,
	severityWarnAliasConstant:  SeverityWarn,
	severityErrorNameConstant:  SeverityError,
	severityErrorAliasConstant: SeverityError,
}

var severityStreams = map[Severity]Stream{
	SeverityOk:    StreamStandardOutput,
	SeverityInfo:  StreamStandardOutput,
	SeverityWarn:  StreamStandardError,
	SeverityError: StreamStandardError,
}

var severityColorAttributes = map[Severity]color.Attribute{
	SeverityOk:    color.FgGreen,
	SeverityInfo:  color.FgCyan,
	SeverityWarn:  color.FgYellow,
	SeverityError: color.FgRed,
}

var severityZapLevels = map[Severity]zapcore.Level{
	SeverityOk:    zapcore.InfoLevel,
	SeverityInfo:  zapcore.InfoLevel,
	SeverityWarn:  zapcore.WarnLevel,
	SeverityError: zapcore.ErrorLevel,
}

var severityStatusWords = map[Severity]string{
	SeverityWarn:  warningStatusWordConstant,
	SeverityError: errorStatusWordConstant,
}

// Severities lists every supported severity in ascending order.
func Severities() []Severity {
	return []Severity{SeverityOk, SeverityInfo, SeverityWarn, SeverityError}
}

// ParseSeverity resolves a case-insensitive severity name or alias.
func ParseSeverity(value string) (Severity, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	severity, severityExists := severityLookup[normalizedValue]
	if !severityExists {
		return SeverityOk, UnsupportedSeverityError{Value: value}
	}
	return severity, nil
}

// String returns the canonical severity name.
func (severity Severity) String() string {
	if name, nameExists := severityNames[severity]; nameExists {
		return name
	}
	return fmt.Sprintf(unknownSeverityNameTemplate, int(severity))
}

// Stream reports the console stream lines of this severity are written to.
// Unknown severities are treated as errors.
func (severity Severity) Stream() Stream {
	if stream, streamExists := severityStreams[severity]; streamExists {
		return stream
	}
	return StreamStandardError
}

// StatusWord returns the fixed status word used by Warn and Error messages.
// Ok and Info have no fixed word and return an empty string.
func (severity Severity) StatusWord() string {
	return severityStatusWords[severity]
}

func (severity Severity) colorAttribute() color.Attribute {
	if attribute, attributeExists := severityColorAttributes[severity]; attributeExists {
		return attribute
	}
	return color.FgRed
}

func (severity Severity) zapLevel() zapcore.Level {
	if level, levelExists := severityZapLevels[severity]; levelExists {
		return level
	}
	return zapcore.ErrorLevel
}
