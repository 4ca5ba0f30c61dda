package utils

import (
	"context"

	"github.com/temirov/termstatus/internal/status"
)

const statusReporterContextKeyConstant = commandContextKey("statusReporter")

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithReporter attaches the status reporter commands print through.
func (accessor CommandContextAccessor) WithReporter(parentContext context.Context, reporter *status.Reporter) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, statusReporterContextKeyConstant, reporter)
}

// Reporter extracts the status reporter from the provided context.
func (accessor CommandContextAccessor) Reporter(executionContext context.Context) (*status.Reporter, bool) {
	if executionContext == nil {
		return nil, false
	}
	reporter, reporterAvailable := executionContext.Value(statusReporterContextKeyConstant).(*status.Reporter)
	if !reporterAvailable || reporter == nil {
		return nil, false
	}
	return reporter, true
}
