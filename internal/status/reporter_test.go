package status_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/termstatus/internal/status"
)

const (
	testShortAttributeNameConstant      = "good"
	testLongAttributeNameConstant       = "excellent"
	testBoundaryAttributeNameConstant   = "version"
	testBelowBoundaryAttributeConstant  = "target"
	testMultibyteAttributeNameConstant  = "größe"
	testAttributeMessageConstant        = "yep"
	testLoadedLabelConstant             = "Loaded"
	testLoadedMessageConstant           = "app loaded successfully"
	testBuiltLabelConstant              = "Built"
	testBuiltTemplateConstant           = "%s in %ds"
	testBuiltTargetConstant             = "target"
	testBuiltSecondsConstant            = 3
	testWarnMessageConstant             = "heads up"
	testErrorMessageConstant            = "boom"
	testInfoLabelConstant               = "Info"
	testInfoMessageConstant             = "you may care to know about"
	testConcurrentReporterCountConstant = 16
)

type recordedLine struct {
	severity status.Severity
	line     string
}

type recordingLineSink struct {
	mutex sync.Mutex
	lines []recordedLine
}

func (sink *recordingLineSink) Emit(severity status.Severity, renderedLine string) {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()
	sink.lines = append(sink.lines, recordedLine{severity: severity, line: renderedLine})
}

func TestFormatAttributeAlignment(testInstance *testing.T) {
	testCases := []struct {
		name          string
		attributeName string
		expectedLine  string
	}{
		{
			name:          "short_name_uses_tab",
			attributeName: testShortAttributeNameConstant,
			expectedLine:  "good:\tyep",
		},
		{
			name:          "long_name_uses_space",
			attributeName: testLongAttributeNameConstant,
			expectedLine:  "excellent: yep",
		},
		{
			name:          "seven_characters_uses_space",
			attributeName: testBoundaryAttributeNameConstant,
			expectedLine:  "version: yep",
		},
		{
			name:          "six_characters_uses_tab",
			attributeName: testBelowBoundaryAttributeConstant,
			expectedLine:  "target:\tyep",
		},
		{
			name:          "multibyte_name_counts_characters",
			attributeName: testMultibyteAttributeNameConstant,
			expectedLine:  "größe:\tyep",
		},
		{
			name:          "empty_name_uses_tab",
			attributeName: "",
			expectedLine:  ":\tyep",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedLine, status.FormatAttribute(testCase.attributeName, testAttributeMessageConstant))
		})
	}
}

func TestReporterOperations(testInstance *testing.T) {
	testCases := []struct {
		name             string
		report           func(*status.Reporter)
		expectedSeverity status.Severity
		expectedLine     string
	}{
		{
			name: "attribute_ok_short",
			report: func(reporter *status.Reporter) {
				reporter.AttributeOk(testShortAttributeNameConstant, testAttributeMessageConstant)
			},
			expectedSeverity: status.SeverityOk,
			expectedLine:     "good:\tyep",
		},
		{
			name: "attribute_ok_long",
			report: func(reporter *status.Reporter) {
				reporter.AttributeOk(testLongAttributeNameConstant, testAttributeMessageConstant)
			},
			expectedSeverity: status.SeverityOk,
			expectedLine:     "excellent: yep",
		},
		{
			name: "ok",
			report: func(reporter *status.Reporter) {
				reporter.Ok(testLoadedLabelConstant, testLoadedMessageConstant)
			},
			expectedSeverity: status.SeverityOk,
			expectedLine:     "Loaded: app loaded successfully",
		},
		{
			name: "okf",
			report: func(reporter *status.Reporter) {
				reporter.Okf(testBuiltLabelConstant, testBuiltTemplateConstant, testBuiltTargetConstant, testBuiltSecondsConstant)
			},
			expectedSeverity: status.SeverityOk,
			expectedLine:     "Built: target in 3s",
		},
		{
			name: "info",
			report: func(reporter *status.Reporter) {
				reporter.Info(testInfoLabelConstant, testInfoMessageConstant)
			},
			expectedSeverity: status.SeverityInfo,
			expectedLine:     "Info: you may care to know about",
		},
		{
			name: "infof_reports_at_info",
			report: func(reporter *status.Reporter) {
				reporter.Infof(testBuiltLabelConstant, testBuiltTemplateConstant, testBuiltTargetConstant, testBuiltSecondsConstant)
			},
			expectedSeverity: status.SeverityInfo,
			expectedLine:     "Built: target in 3s",
		},
		{
			name: "warn",
			report: func(reporter *status.Reporter) {
				reporter.Warn(testWarnMessageConstant)
			},
			expectedSeverity: status.SeverityWarn,
			expectedLine:     "warning: heads up",
		},
		{
			name: "warnf",
			report: func(reporter *status.Reporter) {
				reporter.Warnf("%d files skipped", 2)
			},
			expectedSeverity: status.SeverityWarn,
			expectedLine:     "warning: 2 files skipped",
		},
		{
			name: "error",
			report: func(reporter *status.Reporter) {
				reporter.Error(testErrorMessageConstant)
			},
			expectedSeverity: status.SeverityError,
			expectedLine:     "error: boom",
		},
		{
			name: "errorf",
			report: func(reporter *status.Reporter) {
				reporter.Errorf("exit code %d", 101)
			},
			expectedSeverity: status.SeverityError,
			expectedLine:     "error: exit code 101",
		},
		{
			name: "attribute_error",
			report: func(reporter *status.Reporter) {
				reporter.AttributeError("error", testAttributeMessageConstant)
			},
			expectedSeverity: status.SeverityError,
			expectedLine:     "error:\tyep",
		},
		{
			name: "attribute_errorf",
			report: func(reporter *status.Reporter) {
				reporter.AttributeErrorf("expected", "%q", "value")
			},
			expectedSeverity: status.SeverityError,
			expectedLine:     "expected: \"value\"",
		},
		{
			name: "attribute_okf",
			report: func(reporter *status.Reporter) {
				reporter.AttributeOkf("path", "%s/%s", "/tmp", "project")
			},
			expectedSeverity: status.SeverityOk,
			expectedLine:     "path:\t/tmp/project",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			sink := &recordingLineSink{}
			reporter := status.NewReporter(sink)

			testCase.report(reporter)

			require.Len(testInstance, sink.lines, 1)
			require.Equal(testInstance, testCase.expectedSeverity, sink.lines[0].severity)
			require.Equal(testInstance, testCase.expectedLine, sink.lines[0].line)
		})
	}
}

func TestReporterReportStatusLine(testInstance *testing.T) {
	testCases := []struct {
		name         string
		statusLine   status.StatusLine
		expectedLine string
	}{
		{
			name:         "status_with_label",
			statusLine:   status.StatusLine{Severity: status.SeverityOk, Label: "Compiling", Message: "termstatus"},
			expectedLine: "Compiling: termstatus",
		},
		{
			name:         "warn_without_label_uses_status_word",
			statusLine:   status.StatusLine{Severity: status.SeverityWarn, Message: testWarnMessageConstant},
			expectedLine: "warning: heads up",
		},
		{
			name:         "error_without_label_uses_status_word",
			statusLine:   status.StatusLine{Severity: status.SeverityError, Message: testErrorMessageConstant},
			expectedLine: "error: boom",
		},
		{
			name:         "attribute",
			statusLine:   status.StatusLine{Severity: status.SeverityOk, Label: testShortAttributeNameConstant, Message: testAttributeMessageConstant, Attribute: true},
			expectedLine: "good:\tyep",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			sink := &recordingLineSink{}
			status.NewReporter(sink).Report(testCase.statusLine)

			require.Len(testInstance, sink.lines, 1)
			require.Equal(testInstance, testCase.statusLine.Severity, sink.lines[0].severity)
			require.Equal(testInstance, testCase.expectedLine, sink.lines[0].line)
		})
	}
}

func TestReporterRepeatedCallsProduceIndependentLines(testInstance *testing.T) {
	var outputBuffer bytes.Buffer
	reporter := status.NewReporter(status.NewConsoleLineSink(&outputBuffer, nil, status.NewPalette(status.ColorModeNever, nil, nil)))

	reporter.Ok(testLoadedLabelConstant, testLoadedMessageConstant)
	reporter.Ok(testLoadedLabelConstant, testLoadedMessageConstant)

	require.Equal(testInstance, "Loaded: app loaded successfully\nLoaded: app loaded successfully\n", outputBuffer.String())
}

func TestReporterWithoutSinkDiscards(testInstance *testing.T) {
	require.NotPanics(testInstance, func() {
		status.NewReporter(nil).Error(testErrorMessageConstant)
	})

	var nilReporter *status.Reporter
	require.NotPanics(testInstance, func() {
		nilReporter.Ok(testLoadedLabelConstant, testLoadedMessageConstant)
	})
}

func TestReporterConcurrentLinesStayWhole(testInstance *testing.T) {
	var outputBuffer bytes.Buffer
	reporter := status.NewReporter(status.NewConsoleLineSink(&outputBuffer, nil, status.NewPalette(status.ColorModeNever, nil, nil)))

	var waitGroup sync.WaitGroup
	for reporterIndex := 0; reporterIndex < testConcurrentReporterCountConstant; reporterIndex++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			reporter.AttributeOk(testLongAttributeNameConstant, testLoadedMessageConstant)
		}()
	}
	waitGroup.Wait()

	outputLines := strings.Split(strings.TrimSuffix(outputBuffer.String(), "\n"), "\n")
	require.Len(testInstance, outputLines, testConcurrentReporterCountConstant)
	for _, outputLine := range outputLines {
		require.Equal(testInstance, "excellent: app loaded successfully", outputLine)
	}
}
