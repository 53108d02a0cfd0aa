package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the JSON logger handed to the engine, menu and drivers.
// --verbose forces debug; otherwise --level applies.
func newLogger(globals *Globals) *zap.Logger {
	if globals == nil {
		return zap.NewNop()
	}
	level := zapcore.InfoLevel
	if globals.Level != "" {
		if parsed, err := zapcore.ParseLevel(globals.Level); err == nil {
			level = parsed
		}
	}
	if globals.Verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(globals.Stderr)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
