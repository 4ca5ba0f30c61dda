package execshell

import (
	"errors"
	"fmt"
	"strings"
)

const (
	commandArgumentsJoinSeparatorConstant     = " "
	commandFailedErrorTemplateConstant        = "%s failed with exit code %d"
	commandExecutionErrorTemplateConstant     = "%s could not be started: %v"
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandNameRequiredMessageConstant        = "command name must be provided"
)

// ErrLoggerNotConfigured indicates a ShellExecutor created without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates a ShellExecutor created without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// ErrCommandNameRequired indicates a ShellCommand without an executable name.
var ErrCommandNameRequired = errors.New(commandNameRequiredMessageConstant)

// CommandName identifies the executable to run.
type CommandName string

// CommandDetails holds the invocation options of a ShellCommand.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand is an executable together with its invocation options.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// Label renders the command and its arguments separated by spaces.
func (command ShellCommand) Label() string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
}

// ExecutionResult captures the outcome of a command that ran to completion.
type ExecutionResult struct {
	ExitCode      int
	StandardError string
}

// CommandFailedError reports a command that exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failing command and its exit code.
func (failedError CommandFailedError) Error() string {
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failedError.Command.Label(), failedError.Result.ExitCode)
}

// ExitCode returns the exit code of the failed command.
func (failedError CommandFailedError) ExitCode() int {
	return failedError.Result.ExitCode
}

// CommandExecutionError reports a command that could not be run at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the command and the underlying failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, executionError.Command.Label(), executionError.Cause)
}

// Unwrap exposes the underlying failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}
