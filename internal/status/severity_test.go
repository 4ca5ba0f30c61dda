package status_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/termstatus/internal/status"
)

func TestSeverityStreams(testInstance *testing.T) {
	expectedStreams := map[status.Severity]status.Stream{
		status.SeverityOk:    status.StreamStandardOutput,
		status.SeverityInfo:  status.StreamStandardOutput,
		status.SeverityWarn:  status.StreamStandardError,
		status.SeverityError: status.StreamStandardError,
	}

	for _, severity := range status.Severities() {
		require.Equal(testInstance, expectedStreams[severity], severity.Stream(), severity.String())
	}
}

func TestParseSeverity(testInstance *testing.T) {
	testCases := []struct {
		value            string
		expectedSeverity status.Severity
		expectError      bool
	}{
		{value: "ok", expectedSeverity: status.SeverityOk},
		{value: "Success", expectedSeverity: status.SeverityOk},
		{value: "info", expectedSeverity: status.SeverityInfo},
		{value: "WARN", expectedSeverity: status.SeverityWarn},
		{value: "warning", expectedSeverity: status.SeverityWarn},
		{value: " error ", expectedSeverity: status.SeverityError},
		{value: "err", expectedSeverity: status.SeverityError},
		{value: "fatal", expectError: true},
		{value: "", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.value, func(testInstance *testing.T) {
			severity, parseError := status.ParseSeverity(testCase.value)
			if testCase.expectError {
				var unsupportedError status.UnsupportedSeverityError
				require.True(testInstance, errors.As(parseError, &unsupportedError))
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedSeverity, severity)
		})
	}
}

func TestSeverityNamesAndStatusWords(testInstance *testing.T) {
	require.Equal(testInstance, "ok", status.SeverityOk.String())
	require.Equal(testInstance, "info", status.SeverityInfo.String())
	require.Equal(testInstance, "warn", status.SeverityWarn.String())
	require.Equal(testInstance, "error", status.SeverityError.String())
	require.Equal(testInstance, "severity(9)", status.Severity(9).String())

	require.Empty(testInstance, status.SeverityOk.StatusWord())
	require.Empty(testInstance, status.SeverityInfo.StatusWord())
	require.Equal(testInstance, "warning", status.SeverityWarn.StatusWord())
	require.Equal(testInstance, "error", status.SeverityError.StatusWord())
	require.Equal(testInstance, status.StreamStandardError, status.Severity(9).Stream())
}
