package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/termstatus/internal/status"
	"github.com/temirov/termstatus/internal/utils"
	"github.com/temirov/termstatus/internal/utils/flags"
)

const (
	applicationNameConstant                 = "termstatus"
	applicationShortDescriptionConstant     = "Print Cargo-style status lines from shell scripts"
	applicationLongDescriptionConstant      = "termstatus prints justified, colorized status and attribute lines. Success and informational lines go to standard output; warnings and errors go to standard error."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a YAML configuration file."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured diagnostic log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured diagnostic log format."
	colorFlagNameConstant                   = "color"
	colorFlagUsageConstant                  = "Colorize status lines."
	environmentPrefixConstant               = "TERMSTATUS"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationColorFieldConstant         = "color"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	statusSyncErrorTemplateConstant         = "unable to flush status output: %w"
	colorModeErrorTemplateConstant          = "unable to resolve color mode: %w"
	defaultConfigurationSearchPathConstant  = "."
)

// Application wires the Cobra root command, configuration loader, diagnostic logger, and status reporter.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	statusSink             *status.ZapLineSink
	reporter               *status.Reporter
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      *flags.ChoiceValue
	logFormatFlagValue     *flags.ChoiceValue
	colorFlagValue         *flags.ChoiceValue
	outputWriter           io.Writer
	errorWriter            io.Writer
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a CLI application writing to the process standard streams.
func NewApplication() *Application {
	return NewApplicationWithStreams(os.Stdout, os.Stderr)
}

// NewApplicationWithStreams assembles a CLI application writing status lines to
// the provided output and error streams. Nil writers fall back to the process streams.
func NewApplicationWithStreams(outputWriter io.Writer, errorWriter io.Writer) *Application {
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	if errorWriter == nil {
		errorWriter = os.Stderr
	}

	application := &Application{
		configurationLoader:    utils.NewConfigurationLoader(environmentPrefixConstant, defaultConfigurationSearchPathConstant, EmbeddedDefaultConfiguration()),
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		logLevelFlagValue:      flags.NewChoiceValue("", logLevelChoices()),
		logFormatFlagValue:     flags.NewChoiceValue("", logFormatChoices()),
		colorFlagValue:         flags.NewChoiceValue("", colorModeChoices()),
		outputWriter:           utils.NewFlushingWriter(outputWriter),
		errorWriter:            utils.NewFlushingWriter(errorWriter),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetOut(application.outputWriter)
	cobraCommand.SetErr(application.errorWriter)

	persistentFlagSet := cobraCommand.PersistentFlags()
	persistentFlagSet.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlagSet.Var(application.logLevelFlagValue, logLevelFlagNameConstant, flags.FormatChoiceUsage(string(utils.LogLevelError), logLevelChoices(), logLevelFlagUsageConstant))
	persistentFlagSet.Var(application.logFormatFlagValue, logFormatFlagNameConstant, flags.FormatChoiceUsage(string(utils.LogFormatConsole), logFormatChoices(), logFormatFlagUsageConstant))
	persistentFlagSet.Var(application.colorFlagValue, colorFlagNameConstant, flags.FormatChoiceUsage(string(status.ColorModeAuto), colorModeChoices(), colorFlagUsageConstant))

	statusCommandBuilder := StatusCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ReporterResolver: application.resolveReporter,
	}
	cobraCommand.AddCommand(statusCommandBuilder.Build()...)

	application.rootCommand = cobraCommand

	return application
}

// SetArguments overrides the command-line arguments, mainly for embedding and tests.
func (application *Application) SetArguments(arguments []string) {
	application.rootCommand.SetArgs(arguments)
}

// Execute runs the configured Cobra command hierarchy and ensures logger and status output flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushStatusSink(); syncError != nil && executionError == nil {
		return fmt.Errorf(statusSyncErrorTemplateConstant, syncError)
	}
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// ReportError prints a failure as an error status line. When configuration
// failed before a reporter was built, the line is colored per the --color flag.
func (application *Application) ReportError(failure error) {
	if failure == nil {
		return
	}
	reporter := application.reporter
	if reporter == nil {
		colorMode, colorModeError := status.ParseColorMode(application.colorFlagValue.String())
		if colorModeError != nil {
			colorMode = status.ColorModeAuto
		}
		palette := status.NewPalette(colorMode, application.outputWriter, application.errorWriter)
		reporter = status.NewReporter(status.NewConsoleLineSink(application.outputWriter, application.errorWriter, palette))
	}
	reporter.Error(failure.Error())
}

// Execute builds a fresh application instance, executes the root command hierarchy, and reports failures.
func Execute() error {
	application := NewApplication()
	executionError := application.Execute()
	application.ReportError(executionError)
	return executionError
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, DefaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue.String()
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue.String()
	}

	if application.persistentFlagChanged(command, colorFlagNameConstant) {
		colorMode, colorModeError := status.ParseColorMode(application.colorFlagValue.String())
		if colorModeError != nil {
			return fmt.Errorf(colorModeErrorTemplateConstant, colorModeError)
		}
		application.configuration.Status.Color = colorMode
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(strings.ToLower(strings.TrimSpace(application.configuration.Common.LogLevel))),
		utils.LogFormat(strings.ToLower(strings.TrimSpace(application.configuration.Common.LogFormat))),
		application.errorWriter,
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	palette := status.NewPalette(application.configuration.Status.Color, application.outputWriter, application.errorWriter)
	application.statusSink = status.NewConsoleLineSink(application.outputWriter, application.errorWriter, palette)
	application.reporter = status.NewReporter(application.statusSink)

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationColorFieldConstant, string(application.configuration.Status.Color)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithReporter(command.Context(), application.reporter)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) resolveReporter(executionContext context.Context) *status.Reporter {
	if reporter, reporterAvailable := application.commandContextAccessor.Reporter(executionContext); reporterAvailable {
		return reporter
	}
	return application.reporter
}

func (application *Application) flushStatusSink() error {
	if application.statusSink == nil {
		return nil
	}
	return application.statusSink.Sync()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func logLevelChoices() []string {
	choices := make([]string, 0, len(utils.LogLevels()))
	for _, logLevel := range utils.LogLevels() {
		choices = append(choices, string(logLevel))
	}
	return choices
}

func logFormatChoices() []string {
	choices := make([]string, 0, len(utils.LogFormats()))
	for _, logFormat := range utils.LogFormats() {
		choices = append(choices, string(logFormat))
	}
	return choices
}

func colorModeChoices() []string {
	return []string{string(status.ColorModeAuto), string(status.ColorModeAlways), string(status.ColorModeNever)}
}
