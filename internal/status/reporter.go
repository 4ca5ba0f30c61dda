package status

import (
	"fmt"
	"unicode/utf8"
)

const (
	statusLineTemplateConstant       = "%s: %s"
	alignedAttributeTemplateConstant = "%s: %s"
	tabbedAttributeTemplateConstant  = "%s:\t%s"
	attributeAlignmentWidthConstant  = 7
)

// StatusLine describes a single line handed to Reporter.Report.
type StatusLine struct {
	Severity  Severity
	Label     string
	Message   string
	Attribute bool
}

// Reporter renders status and attribute lines and forwards them to a LineSink.
type Reporter struct {
	sink LineSink
}

// NewReporter constructs a Reporter writing to sink. A nil sink discards every line.
func NewReporter(sink LineSink) *Reporter {
	if sink == nil {
		sink = discardLineSink{}
	}
	return &Reporter{sink: sink}
}

// ReportStatus emits "statusWord: message" at the given severity.
func (reporter *Reporter) ReportStatus(severity Severity, statusWord string, message string) {
	if reporter == nil || reporter.sink == nil {
		return
	}
	reporter.sink.Emit(severity, FormatStatus(statusWord, message))
}

// ReportAttribute emits an attribute line at the given severity.
func (reporter *Reporter) ReportAttribute(severity Severity, attributeName string, message string) {
	if reporter == nil || reporter.sink == nil {
		return
	}
	reporter.sink.Emit(severity, FormatAttribute(attributeName, message))
}

// Report emits a StatusLine. Status lines without a label use the severity's status word.
func (reporter *Reporter) Report(statusLine StatusLine) {
	if statusLine.Attribute {
		reporter.ReportAttribute(statusLine.Severity, statusLine.Label, statusLine.Message)
		return
	}
	label := statusLine.Label
	if len(label) == 0 {
		label = statusLine.Severity.StatusWord()
	}
	reporter.ReportStatus(statusLine.Severity, label, statusLine.Message)
}

// Ok prints a success status to standard output, green when colored.
func (reporter *Reporter) Ok(label string, message string) {
	reporter.ReportStatus(SeverityOk, label, message)
}

// Okf is Ok with a fmt template.
func (reporter *Reporter) Okf(label string, template string, arguments ...any) {
	reporter.Ok(label, fmt.Sprintf(template, arguments...))
}

// Info prints an informational status to standard output, cyan when colored.
func (reporter *Reporter) Info(label string, message string) {
	reporter.ReportStatus(SeverityInfo, label, message)
}

// Infof is Info with a fmt template.
func (reporter *Reporter) Infof(label string, template string, arguments ...any) {
	reporter.Info(label, fmt.Sprintf(template, arguments...))
}

// Warn prints "warning: message" to standard error, yellow when colored.
func (reporter *Reporter) Warn(message string) {
	reporter.ReportStatus(SeverityWarn, warningStatusWordConstant, message)
}

// Warnf is Warn with a fmt template.
func (reporter *Reporter) Warnf(template string, arguments ...any) {
	reporter.Warn(fmt.Sprintf(template, arguments...))
}

// Error prints "error: message" to standard error, red when colored.
func (reporter *Reporter) Error(message string) {
	reporter.ReportStatus(SeverityError, errorStatusWordConstant, message)
}

// Errorf is Error with a fmt template.
func (reporter *Reporter) Errorf(template string, arguments ...any) {
	reporter.Error(fmt.Sprintf(template, arguments...))
}

// AttributeOk prints an attribute line to standard output.
func (reporter *Reporter) AttributeOk(attributeName string, message string) {
	reporter.ReportAttribute(SeverityOk, attributeName, message)
}

// AttributeOkf is AttributeOk with a fmt template.
func (reporter *Reporter) AttributeOkf(attributeName string, template string, arguments ...any) {
	reporter.AttributeOk(attributeName, fmt.Sprintf(template, arguments...))
}

// AttributeError prints an attribute line to standard error.
func (reporter *Reporter) AttributeError(attributeName string, message string) {
	reporter.ReportAttribute(SeverityError, attributeName, message)
}

// AttributeErrorf is AttributeError with a fmt template.
func (reporter *Reporter) AttributeErrorf(attributeName string, template string, arguments ...any) {
	reporter.AttributeError(attributeName, fmt.Sprintf(template, arguments...))
}

// FormatStatus renders a status line without alignment.
func FormatStatus(statusWord string, message string) string {
	return fmt.Sprintf(statusLineTemplateConstant, statusWord, message)
}

// FormatAttribute renders an attribute line. Names shorter than seven
// characters are followed by a tab so their values line up with longer names.
func FormatAttribute(attributeName string, message string) string {
	if utf8.RuneCountInString(attributeName) >= attributeAlignmentWidthConstant {
		return fmt.Sprintf(alignedAttributeTemplateConstant, attributeName, message)
	}
	return fmt.Sprintf(tabbedAttributeTemplateConstant, attributeName, message)
}
