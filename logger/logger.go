// Package logger holds the process-wide structured logger.
//
// Components never keep a logger from package init: they call
// ComponentLogger when they start work, so a later Initialize takes effect.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It discards everything until Initialize.
var Logger = zap.NewNop().Sugar()

// Initialize replaces the global logger with one writing to stderr, so
// generated output on stdout stays clean. The verbosity count (-v, -vv)
// selects the level, see VerbosityToLevel.
func Initialize(jsonOutput bool, verbosity int) error {
	Logger = New(os.Stderr, jsonOutput, verbosity)
	return nil
}

// New builds a logger writing to w: JSON lines when jsonOutput is set,
// otherwise the compact console format.
func New(w io.Writer, jsonOutput bool, verbosity int) *zap.SugaredLogger {
	level := VerbosityToLevel(verbosity)
	sink := zapcore.Lock(zapcore.AddSync(w))

	var encoder zapcore.Encoder
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		encoder = newMinimalEncoder(colorEnabled(w))
	}

	return zap.New(zapcore.NewCore(encoder, sink, level)).Sugar()
}

// colorEnabled honours NO_COLOR and only colours terminals
func colorEnabled(w io.Writer) bool {
	if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	_ = Logger.Sync()
}
