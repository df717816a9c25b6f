package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

/*
logger builds the command logger: console encoding to stderr, or JSON
encoding to a rotated file when --log-file is set. --verbose lowers the
level to debug.
*/
func (rcc *rootCmdConfig) logger() *zap.SugaredLogger {
	level := zap.InfoLevel
	if rcc.verbose {
		level = zap.DebugLevel
	}
	if rcc.logFile == "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		l, err := cfg.Build()
		if err != nil {
			return zap.NewNop().Sugar()
		}
		return l.Sugar()
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   rcc.logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), writer, level)
	return zap.New(core).Sugar()
}
