package status

import (
	"errors"
	"io"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	consoleMessageKeyConstant = "message"
)

// LineSink writes a rendered status line to the stream selected by its severity.
// Implementations must write each line atomically and preserve call order.
type LineSink interface {
	Emit(severity Severity, renderedLine string)
}

type discardLineSink struct{}

func (discardLineSink) Emit(Severity, string) {}

// ZapLineSink emits status lines as zap entries, colorizing the entry message through a Palette.
type ZapLineSink struct {
	logger  *zap.Logger
	palette Palette
}

// NewZapLineSink wraps an existing zap logger. Ok and Info lines are logged at
// info level, Warn at warn level and Error at error level.
func NewZapLineSink(logger *zap.Logger, palette Palette) *ZapLineSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLineSink{logger: logger, palette: palette}
}

// NewConsoleLineSink builds a zap logger that writes bare messages: entries
// below warn level go to outputWriter and the rest go to errorWriter.
// A nil writer discards its stream.
func NewConsoleLineSink(outputWriter io.Writer, errorWriter io.Writer, palette Palette) *ZapLineSink {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: consoleMessageKeyConstant,
		LineEnding: zapcore.DefaultLineEnding,
	})

	outputCore := zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(resolveWriter(outputWriter))),
		zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level < zapcore.WarnLevel
		}),
	)
	errorCore := zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(resolveWriter(errorWriter))),
		zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level >= zapcore.WarnLevel
		}),
	)

	logger := zap.New(
		zapcore.NewTee(outputCore, errorCore),
		zap.ErrorOutput(zapcore.AddSync(io.Discard)),
	)

	return NewZapLineSink(logger, palette)
}

// Emit logs the rendered line at the zap level mapped from the severity.
func (sink *ZapLineSink) Emit(severity Severity, renderedLine string) {
	if sink == nil || sink.logger == nil {
		return
	}
	sink.logger.Log(severity.zapLevel(), sink.palette.Colorize(severity, renderedLine))
}

// Sync flushes buffered output. Errors raised by terminals that cannot be synced are ignored.
func (sink *ZapLineSink) Sync() error {
	if sink == nil || sink.logger == nil {
		return nil
	}

	syncError := sink.logger.Sync()
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

func resolveWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return io.Discard
	}
	return writer
}
