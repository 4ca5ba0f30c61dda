package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/termstatus/internal/status"
)

const (
	scriptPathRequiredMessageConstant     = "script path must be provided"
	scriptLoadErrorTemplateConstant       = "failed to load status script: %w"
	scriptParseErrorTemplateConstant      = "failed to parse status script: %w"
	scriptEmptyMessageConstant            = "status script must define at least one line"
	scriptValidationErrorTemplateConstant = "status script line %d: %s"
	labelRequiredReasonConstant           = "label is required"
	fixedStatusWordReasonTemplateConstant = "%s lines use the status word %q and cannot be relabeled as %q"
)

// ErrEmptyScript indicates a script without lines.
var ErrEmptyScript = errors.New(scriptEmptyMessageConstant)

// Script is the ordered list of status lines declared in a YAML document.
type Script struct {
	Lines []LineDefinition `yaml:"lines" json:"lines"`
}

// LineDefinition declares a single status or attribute line.
type LineDefinition struct {
	Severity  string `yaml:"severity" json:"severity"`
	Label     string `yaml:"label" json:"label"`
	Message   string `yaml:"message" json:"message"`
	Attribute bool   `yaml:"attribute" json:"attribute"`
}

// ScriptValidationError identifies the first invalid line of a script.
type ScriptValidationError struct {
	LineNumber int
	Reason     string
}

// Error describes the invalid line using its one-based position.
func (validationError ScriptValidationError) Error() string {
	return fmt.Sprintf(scriptValidationErrorTemplateConstant, validationError.LineNumber, validationError.Reason)
}

// LoadScript reads and parses the script stored at filePath.
func LoadScript(filePath string) (Script, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Script{}, errors.New(scriptPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Script{}, fmt.Errorf(scriptLoadErrorTemplateConstant, readError)
	}

	return ParseScript(contentBytes)
}

// ParseScript decodes a YAML (or JSON) script document.
func ParseScript(contentBytes []byte) (Script, error) {
	var parsedScript Script
	if unmarshalError := yaml.Unmarshal(contentBytes, &parsedScript); unmarshalError != nil {
		return Script{}, fmt.Errorf(scriptParseErrorTemplateConstant, unmarshalError)
	}
	return parsedScript, nil
}

// StatusLines validates every definition and converts them to status lines.
func (parsedScript Script) StatusLines() ([]status.StatusLine, error) {
	if len(parsedScript.Lines) == 0 {
		return nil, ErrEmptyScript
	}

	statusLines := make([]status.StatusLine, 0, len(parsedScript.Lines))
	for lineIndex, lineDefinition := range parsedScript.Lines {
		statusLine, conversionError := lineDefinition.statusLine()
		if conversionError != nil {
			return nil, ScriptValidationError{LineNumber: lineIndex + 1, Reason: conversionError.Error()}
		}
		statusLines = append(statusLines, statusLine)
	}

	return statusLines, nil
}

func (lineDefinition LineDefinition) statusLine() (status.StatusLine, error) {
	severity, parseError := status.ParseSeverity(lineDefinition.Severity)
	if parseError != nil {
		return status.StatusLine{}, parseError
	}

	label := strings.TrimSpace(lineDefinition.Label)
	statusWord := severity.StatusWord()

	switch {
	case lineDefinition.Attribute, len(statusWord) == 0:
		if len(label) == 0 {
			return status.StatusLine{}, errors.New(labelRequiredReasonConstant)
		}
	case len(label) > 0 && label != statusWord:
		return status.StatusLine{}, fmt.Errorf(fixedStatusWordReasonTemplateConstant, severity, statusWord, label)
	}

	return status.StatusLine{
		Severity:  severity,
		Label:     label,
		Message:   lineDefinition.Message,
		Attribute: lineDefinition.Attribute,
	}, nil
}

// Replay validates the whole script and then reports each line in order.
// Nothing is reported when validation fails.
func Replay(reporter *status.Reporter, parsedScript Script) error {
	statusLines, validationError := parsedScript.StatusLines()
	if validationError != nil {
		return validationError
	}

	for _, statusLine := range statusLines {
		reporter.Report(statusLine)
	}

	return nil
}
