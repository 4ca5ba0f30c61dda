package ui

import (
	"fmt"
	"strings"

	"github.com/temirov/termstatus/internal/execshell"
	"github.com/temirov/termstatus/internal/status"
)

const (
	// DefaultStartedLabel is the status word printed before a command runs.
	DefaultStartedLabel = "Running"
	// DefaultFinishedLabel is the status word printed after a command succeeds.
	DefaultFinishedLabel = "Finished"

	commandLabelTemplateConstant           = "%s%s"
	workingDirectorySuffixTemplateConstant = " (in %s)"
	emptyStringConstant                    = ""
)

// CommandEventFormatter builds the messages printed for command lifecycle events.
type CommandEventFormatter struct{}

// BuildCommandMessage renders the command, its arguments, and the working directory when one is set.
func (formatter CommandEventFormatter) BuildCommandMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(commandLabelTemplateConstant, command.Label(), formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandEventFormatter) formatWorkingDirectorySuffix(command execshell.ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

// StatusCommandEventReporter implements execshell.CommandEventObserver by
// printing success status lines. Failures are left to the caller, which
// receives them as errors from the executor.
type StatusCommandEventReporter struct {
	reporter      *status.Reporter
	formatter     CommandEventFormatter
	startedLabel  string
	finishedLabel string
}

// NewStatusCommandEventReporter constructs an observer printing through reporter.
// Empty labels fall back to DefaultStartedLabel and DefaultFinishedLabel.
func NewStatusCommandEventReporter(reporter *status.Reporter, startedLabel string, finishedLabel string) *StatusCommandEventReporter {
	if reporter == nil {
		reporter = status.NewReporter(nil)
	}
	if len(strings.TrimSpace(startedLabel)) == 0 {
		startedLabel = DefaultStartedLabel
	}
	if len(strings.TrimSpace(finishedLabel)) == 0 {
		finishedLabel = DefaultFinishedLabel
	}
	return &StatusCommandEventReporter{
		reporter:      reporter,
		formatter:     CommandEventFormatter{},
		startedLabel:  startedLabel,
		finishedLabel: finishedLabel,
	}
}

// CommandStarted prints the started status line.
func (eventReporter *StatusCommandEventReporter) CommandStarted(command execshell.ShellCommand) {
	if eventReporter == nil {
		return
	}
	eventReporter.reporter.Ok(eventReporter.startedLabel, eventReporter.formatter.BuildCommandMessage(command))
}

// CommandCompleted prints the finished status line when the command exited with zero.
func (eventReporter *StatusCommandEventReporter) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventReporter == nil || result.ExitCode != 0 {
		return
	}
	eventReporter.reporter.Ok(eventReporter.finishedLabel, eventReporter.formatter.BuildCommandMessage(command))
}

// CommandExecutionFailed prints nothing; the executor returns the failure.
func (eventReporter *StatusCommandEventReporter) CommandExecutionFailed(execshell.ShellCommand, error) {}
