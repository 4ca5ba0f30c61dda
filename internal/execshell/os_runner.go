package execshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
)

// StandardErrorTailLimit bounds how many trailing bytes of standard error a result keeps.
const StandardErrorTailLimit = 4096

// CommandRunner runs a ShellCommand to completion.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// OSCommandRunner executes commands using os/exec, streaming their output to
// the configured writers while keeping the tail of standard error.
type OSCommandRunner struct {
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewOSCommandRunner constructs a runner that forwards child output. Nil writers discard the stream.
func NewOSCommandRunner(outputWriter io.Writer, errorWriter io.Writer) *OSCommandRunner {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	return &OSCommandRunner{outputWriter: outputWriter, errorWriter: errorWriter}
}

// Run executes the supplied command using os/exec.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	standardErrorBuffer := &tailBuffer{limit: StandardErrorTailLimit}
	executable.Stdout = runner.outputWriter
	executable.Stderr = io.MultiWriter(runner.errorWriter, standardErrorBuffer)

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				ExitCode:      exitError.ExitCode(),
				StandardError: standardErrorBuffer.String(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		ExitCode:      0,
		StandardError: standardErrorBuffer.String(),
	}, nil
}

type tailBuffer struct {
	limit int
	data  []byte
}

func (buffer *tailBuffer) Write(data []byte) (int, error) {
	buffer.data = append(buffer.data, data...)
	if overflow := len(buffer.data) - buffer.limit; overflow > 0 {
		buffer.data = append(buffer.data[:0], buffer.data[overflow:]...)
	}
	return len(data), nil
}

func (buffer *tailBuffer) String() string {
	return string(buffer.data)
}
