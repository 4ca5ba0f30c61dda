package script_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/termstatus/internal/script"
	"github.com/temirov/termstatus/internal/status"
)

const (
	testScriptFileNameConstant = "status.yaml"
	testValidScriptConstant    = `lines:
  - severity: ok
    label: Compiling
    message: termstatus v0.1.0
  - severity: ok
    attribute: true
    label: path
    message: /tmp/project
  - severity: info
    label: Note
    message: cached
  - severity: warn
    message: unused variable
  - severity: error
    attribute: true
    label: expected
    message: "42"
  - severity: error
    label: error
    message: build failed
`
	testExpectedOutputConstant = "Compiling: termstatus v0.1.0\npath:\t/tmp/project\nNote: cached\n"
	testExpectedErrorConstant  = "warning: unused variable\nexpected: 42\nerror: build failed\n"
)

func TestReplayWritesLinesToTheirStreams(testInstance *testing.T) {
	parsedScript, parseError := script.ParseScript([]byte(testValidScriptConstant))
	require.NoError(testInstance, parseError)

	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer
	reporter := status.NewReporter(status.NewConsoleLineSink(&outputBuffer, &errorBuffer, status.NewPalette(status.ColorModeNever, nil, nil)))

	require.NoError(testInstance, script.Replay(reporter, parsedScript))
	require.Equal(testInstance, testExpectedOutputConstant, outputBuffer.String())
	require.Equal(testInstance, testExpectedErrorConstant, errorBuffer.String())
}

func TestLoadScript(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	scriptPath := filepath.Join(temporaryDirectory, testScriptFileNameConstant)
	require.NoError(testInstance, os.WriteFile(scriptPath, []byte(testValidScriptConstant), 0o600))

	loadedScript, loadError := script.LoadScript(scriptPath)
	require.NoError(testInstance, loadError)
	require.Len(testInstance, loadedScript.Lines, 6)
	require.Equal(testInstance, "Compiling", loadedScript.Lines[0].Label)
	require.True(testInstance, loadedScript.Lines[1].Attribute)

	_, missingPathError := script.LoadScript("  ")
	require.Error(testInstance, missingPathError)

	_, missingFileError := script.LoadScript(filepath.Join(temporaryDirectory, "missing.yaml"))
	require.ErrorIs(testInstance, missingFileError, os.ErrNotExist)
}

func TestParseScriptRejectsMalformedYAML(testInstance *testing.T) {
	_, parseError := script.ParseScript([]byte("lines: [\n"))
	require.Error(testInstance, parseError)
}

func TestStatusLinesValidation(testInstance *testing.T) {
	testCases := []struct {
		name               string
		content            string
		expectedLineNumber int
	}{
		{
			name:               "unknown_severity",
			content:            "lines:\n  - severity: fatal\n    label: Boom\n",
			expectedLineNumber: 1,
		},
		{
			name:               "ok_without_label",
			content:            "lines:\n  - severity: ok\n    label: Fine\n    message: x\n  - severity: ok\n    message: y\n",
			expectedLineNumber: 2,
		},
		{
			name:               "attribute_without_label",
			content:            "lines:\n  - severity: error\n    attribute: true\n    message: y\n",
			expectedLineNumber: 1,
		},
		{
			name:               "warn_relabeled",
			content:            "lines:\n  - severity: warn\n    label: Careful\n    message: y\n",
			expectedLineNumber: 1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedScript, parseError := script.ParseScript([]byte(testCase.content))
			require.NoError(testInstance, parseError)

			var outputBuffer bytes.Buffer
			reporter := status.NewReporter(status.NewConsoleLineSink(&outputBuffer, &outputBuffer, status.NewPalette(status.ColorModeNever, nil, nil)))
			replayError := script.Replay(reporter, parsedScript)

			var validationError script.ScriptValidationError
			require.True(testInstance, errors.As(replayError, &validationError))
			require.Equal(testInstance, testCase.expectedLineNumber, validationError.LineNumber)
			require.Empty(testInstance, outputBuffer.String())
		})
	}
}

func TestStatusLinesRejectsEmptyScript(testInstance *testing.T) {
	parsedScript, parseError := script.ParseScript([]byte("lines: []\n"))
	require.NoError(testInstance, parseError)

	_, validationError := parsedScript.StatusLines()
	require.ErrorIs(testInstance, validationError, script.ErrEmptyScript)
}
