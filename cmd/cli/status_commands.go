package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/termstatus/internal/execshell"
	"github.com/temirov/termstatus/internal/script"
	"github.com/temirov/termstatus/internal/status"
	"github.com/temirov/termstatus/internal/ui"
)

const (
	okCommandUseConstant                 = "ok LABEL MESSAGE..."
	okCommandShortDescriptionConstant    = "Print a success status to standard output"
	infoCommandUseConstant               = "info LABEL MESSAGE..."
	infoCommandShortDescriptionConstant  = "Print an informational status to standard output"
	warnCommandUseConstant               = "warn MESSAGE..."
	warnCommandShortDescriptionConstant  = "Print a warning to standard error"
	errorCommandUseConstant              = "error MESSAGE..."
	errorCommandShortDescriptionConstant = "Print an error to standard error"
	attributeCommandUseConstant          = "attr"
	attributeCommandShortDescription     = "Print an indented attribute line"
	attributeOkCommandUseConstant        = "ok NAME MESSAGE..."
	attributeOkShortDescriptionConstant  = "Print an attribute line to standard output"
	attributeErrorCommandUseConstant     = "error NAME MESSAGE..."
	attributeErrorShortDescription       = "Print an attribute line to standard error"
	replayCommandUseConstant             = "replay FILE"
	replayCommandShortDescription        = "Print every status line declared in a YAML script"
	replayCommandLongDescription         = "replay reads a YAML document with a top-level lines list; each entry declares severity, label, message, and attribute. The whole script is validated before any line is printed."
	messageWordSeparatorConstant         = " "
	statusReportedMessageConstant        = "status line reported"
	scriptReplayedMessageConstant        = "status script replayed"
	logFieldSeverityConstant             = "severity"
	logFieldAttributeConstant            = "attribute"
	logFieldScriptPathConstant           = "script_path"
	logFieldLineCountConstant            = "line_count"
	dashedMessageLongDescription         = "Flags are read only before the first argument; put -- before a first argument that starts with a dash, as in: termstatus warn -- -5 degrees."
	runCommandUseConstant                = "run [flags] [--] COMMAND [ARGUMENTS...]"
	runCommandShortDescription           = "Run a command between Running and Finished status lines"
	runCommandLongDescription            = "run executes COMMAND, forwarding its output, after printing a started status line. A finished status line follows a zero exit code; otherwise the failure is printed as an error and termstatus exits with the command's exit code."
	startedLabelFlagNameConstant         = "started-label"
	startedLabelFlagUsageConstant        = "Status word printed before the command runs."
	finishedLabelFlagNameConstant        = "finished-label"
	finishedLabelFlagUsageConstant       = "Status word printed after the command succeeds."
	workingDirectoryFlagNameConstant     = "dir"
	workingDirectoryFlagUsageConstant    = "Working directory for the command."
	environmentFlagNameConstant          = "env"
	environmentFlagUsageConstant         = "Environment assignment KEY=VALUE added to the command environment; repeatable."
	environmentAssignmentSeparator       = "="
	invalidEnvironmentAssignmentTemplate = "invalid environment assignment %q (expected KEY=VALUE)"
	executorCreationErrorTemplate        = "unable to create command executor: %w"
)

// LoggerProvider supplies the diagnostic zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ReporterResolver supplies the status reporter for a command execution context.
type ReporterResolver func(context.Context) *status.Reporter

// StatusCommandBuilder assembles the status printing commands.
type StatusCommandBuilder struct {
	LoggerProvider   LoggerProvider
	ReporterResolver ReporterResolver
}

// Build constructs the status printing commands.
func (builder *StatusCommandBuilder) Build() []*cobra.Command {
	attributeCommand := &cobra.Command{
		Use:   attributeCommandUseConstant,
		Short: attributeCommandShortDescription,
	}
	attributeCommand.AddCommand(
		builder.buildLabeledCommand(attributeOkCommandUseConstant, attributeOkShortDescriptionConstant, status.SeverityOk, true),
		builder.buildLabeledCommand(attributeErrorCommandUseConstant, attributeErrorShortDescription, status.SeverityError, true),
	)

	return []*cobra.Command{
		builder.buildLabeledCommand(okCommandUseConstant, okCommandShortDescriptionConstant, status.SeverityOk, false),
		builder.buildLabeledCommand(infoCommandUseConstant, infoCommandShortDescriptionConstant, status.SeverityInfo, false),
		builder.buildMessageCommand(warnCommandUseConstant, warnCommandShortDescriptionConstant, status.SeverityWarn),
		builder.buildMessageCommand(errorCommandUseConstant, errorCommandShortDescriptionConstant, status.SeverityError),
		attributeCommand,
		builder.buildReplayCommand(),
		builder.buildRunCommand(),
	}
}

func (builder *StatusCommandBuilder) buildLabeledCommand(use string, shortDescription string, severity status.Severity, attribute bool) *cobra.Command {
	labeledCommand := &cobra.Command{
		Use:   use,
		Short: shortDescription,
		Long:  shortDescription + ". " + dashedMessageLongDescription,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(command *cobra.Command, arguments []string) error {
			builder.report(command, status.StatusLine{
				Severity:  severity,
				Label:     arguments[0],
				Message:   joinMessageWords(arguments[1:]),
				Attribute: attribute,
			})
			return nil
		},
	}
	labeledCommand.Flags().SetInterspersed(false)
	return labeledCommand
}

func (builder *StatusCommandBuilder) buildMessageCommand(use string, shortDescription string, severity status.Severity) *cobra.Command {
	messageCommand := &cobra.Command{
		Use:   use,
		Short: shortDescription,
		Long:  shortDescription + ". " + dashedMessageLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			builder.report(command, status.StatusLine{
				Severity: severity,
				Message:  joinMessageWords(arguments),
			})
			return nil
		},
	}
	messageCommand.Flags().SetInterspersed(false)
	return messageCommand
}

func (builder *StatusCommandBuilder) buildReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   replayCommandUseConstant,
		Short: replayCommandShortDescription,
		Long:  replayCommandLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			loadedScript, loadError := script.LoadScript(arguments[0])
			if loadError != nil {
				return loadError
			}

			if replayError := script.Replay(builder.resolveReporter(command), loadedScript); replayError != nil {
				return replayError
			}

			builder.resolveLogger().Debug(
				scriptReplayedMessageConstant,
				zap.String(logFieldScriptPathConstant, arguments[0]),
				zap.Int(logFieldLineCountConstant, len(loadedScript.Lines)),
			)
			return nil
		},
	}
}

func (builder *StatusCommandBuilder) buildRunCommand() *cobra.Command {
	var startedLabel string
	var finishedLabel string
	var workingDirectory string
	var environmentAssignments []string

	runCommand := &cobra.Command{
		Use:   runCommandUseConstant,
		Short: runCommandShortDescription,
		Long:  runCommandLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			environmentVariables, environmentError := parseEnvironmentAssignments(environmentAssignments)
			if environmentError != nil {
				return environmentError
			}

			eventReporter := ui.NewStatusCommandEventReporter(builder.resolveReporter(command), startedLabel, finishedLabel)
			runner := execshell.NewOSCommandRunner(command.OutOrStdout(), command.ErrOrStderr())
			executor, creationError := execshell.NewShellExecutor(builder.resolveLogger(), runner, eventReporter)
			if creationError != nil {
				return fmt.Errorf(executorCreationErrorTemplate, creationError)
			}

			_, executionError := executor.Execute(command.Context(), execshell.ShellCommand{
				Name: execshell.CommandName(arguments[0]),
				Details: execshell.CommandDetails{
					Arguments:            arguments[1:],
					WorkingDirectory:     workingDirectory,
					EnvironmentVariables: environmentVariables,
				},
			})
			return executionError
		},
	}

	runCommand.Flags().SetInterspersed(false)
	runCommand.Flags().StringVar(&startedLabel, startedLabelFlagNameConstant, ui.DefaultStartedLabel, startedLabelFlagUsageConstant)
	runCommand.Flags().StringVar(&finishedLabel, finishedLabelFlagNameConstant, ui.DefaultFinishedLabel, finishedLabelFlagUsageConstant)
	runCommand.Flags().StringVar(&workingDirectory, workingDirectoryFlagNameConstant, "", workingDirectoryFlagUsageConstant)
	runCommand.Flags().StringArrayVar(&environmentAssignments, environmentFlagNameConstant, nil, environmentFlagUsageConstant)

	return runCommand
}

func (builder *StatusCommandBuilder) report(command *cobra.Command, statusLine status.StatusLine) {
	builder.resolveReporter(command).Report(statusLine)
	builder.resolveLogger().Debug(
		statusReportedMessageConstant,
		zap.Stringer(logFieldSeverityConstant, statusLine.Severity),
		zap.Bool(logFieldAttributeConstant, statusLine.Attribute),
	)
}

func (builder *StatusCommandBuilder) resolveReporter(command *cobra.Command) *status.Reporter {
	if builder.ReporterResolver == nil || command == nil {
		return status.NewReporter(nil)
	}
	reporter := builder.ReporterResolver(command.Context())
	if reporter == nil {
		return status.NewReporter(nil)
	}
	return reporter
}

func (builder *StatusCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func parseEnvironmentAssignments(assignments []string) (map[string]string, error) {
	if len(assignments) == 0 {
		return nil, nil
	}
	environmentVariables := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		environmentKey, environmentValue, hasSeparator := strings.Cut(assignment, environmentAssignmentSeparator)
		if !hasSeparator || len(strings.TrimSpace(environmentKey)) == 0 {
			return nil, fmt.Errorf(invalidEnvironmentAssignmentTemplate, assignment)
		}
		environmentVariables[environmentKey] = environmentValue
	}
	return environmentVariables, nil
}

func joinMessageWords(words []string) string {
	return strings.Join(words, messageWordSeparatorConstant)
}
