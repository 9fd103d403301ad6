// Package logging holds the process-wide loggers.
//
// ErrLog, WarnLog, InfoLog and DebugLog are sugared zap loggers that share
// one core, so their output is ordered and carries the level of the logger
// used. DebugLog output only shows with Init(true).
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	rootLogger *zap.Logger

	ErrLog   *zap.SugaredLogger
	WarnLog  *zap.SugaredLogger
	InfoLog  *zap.SugaredLogger
	DebugLog *zap.SugaredLogger
)

func init() {
	Init(false)
}

// Init builds the root logger. Debug mode uses a colored console encoder
// at debug level, otherwise JSON at info level is written to stderr.
func Init(debug bool) {

	var enc zapcore.Encoder
	var lvl zapcore.Level
	if debug {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
		lvl = zapcore.DebugLevel
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		lvl = zapcore.InfoLevel
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)
	SetLogger(zap.New(core, zap.AddCaller()))
}

// SetLogger replaces the root logger and the derived level loggers.
func SetLogger(l *zap.Logger) {
	rootLogger = l
	sugar := l.Sugar()
	ErrLog = sugar.Named("err")
	WarnLog = sugar.Named("warn")
	InfoLog = sugar.Named("info")
	DebugLog = sugar.Named("debug")
}

// L returns the structured root logger
func L() *zap.Logger {
	return rootLogger
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = rootLogger.Sync()
}
