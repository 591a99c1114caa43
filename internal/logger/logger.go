package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// JSONOutput reports whether Initialize selected JSON output
	JSONOutput bool
)

func init() {
	// Safe no-op logger until Initialize runs
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. JSON output uses the zap production
// config; otherwise a compact console encoder writes to stderr so generated
// output on stdout stays clean.
func Initialize(jsonOutput, verbose bool) error {
	JSONOutput = jsonOutput

	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var zapLogger *zap.Logger
	var err error

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err = config.Build()
	} else {
		zapLogger = zap.New(
			zapcore.NewCore(
				newConsoleEncoder(),
				zapcore.AddSync(os.Stderr),
				level,
			),
		)
	}

	if err != nil {
		return err
	}

	Logger = zapLogger.Sugar()
	return nil
}

// Named returns a child of the global logger.
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}

func newConsoleEncoder() zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		StacktraceKey:    "",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	return zapcore.NewConsoleEncoder(cfg)
}
