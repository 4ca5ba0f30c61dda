package cli

import (
	"github.com/temirov/termstatus/internal/status"
	"github.com/temirov/termstatus/internal/utils"
)

const (
	commonConfigurationKeyConstant   = "common"
	commonLogLevelConfigKeyConstant  = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant = commonConfigurationKeyConstant + ".log_format"
	statusConfigurationKeyConstant   = "status"
	statusColorConfigKeyConstant     = statusConfigurationKeyConstant + ".color"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Status StatusConfiguration            `mapstructure:"status"`
}

// ApplicationCommonConfiguration stores diagnostic logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// StatusConfiguration stores status line rendering preferences.
type StatusConfiguration struct {
	Color status.ColorMode `mapstructure:"color"`
}

// DefaultConfigurationValues returns the defaults applied beneath configuration files and environment variables.
func DefaultConfigurationValues() map[string]any {
	return map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		statusColorConfigKeyConstant:     string(status.ColorModeAuto),
	}
}
