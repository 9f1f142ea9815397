// Package logging builds the process-wide logr.Logger. Stderr is reserved
// for diagnostic logs; protocol data never touches it (spec §4.7).
package logging

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logr.Logger writing to stderr, or to logFile if non-empty
// (MCP_LOG_FILE), at debug or info level depending on debug.
func New(debug bool, logFile string) (logr.Logger, func(), error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	var out *os.File = os.Stderr
	cleanup := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logr.Discard(), cleanup, err
		}
		out = f
		cleanup = func() { _ = f.Close() }
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(out),
		level,
	)
	zapLog := zap.New(core)
	return zapr.NewLogger(zapLog), func() { cleanup(); _ = zapLog.Sync() }, nil
}
