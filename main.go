package main

import (
	"errors"
	"os"

	"github.com/temirov/termstatus/cmd/cli"
)

const defaultFailureExitCodeConstant = 1

type exitCoder interface {
	ExitCode() int
}

// main executes the termstatus command-line application. Failures are
// already printed as error status lines by cli.Execute.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	var commandExitCoder exitCoder
	if errors.As(executionError, &commandExitCoder) && commandExitCoder.ExitCode() > 0 {
		os.Exit(commandExitCoder.ExitCode())
	}
	os.Exit(defaultFailureExitCodeConstant)
}
