package logger

import (
	"learning_center_backend/internal/config"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log stays a no-op until InitLogger runs, so packages and tests can log
	// unconditionally.
	Log   *zap.Logger = zap.NewNop()
	level             = zap.NewAtomicLevelAt(zap.InfoLevel)
)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.MillisDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// InitLogger builds the process logger: JSON lines into a rotated file and,
// when enabled, a console copy on stdout. Both share one atomic level.
func InitLogger(cfg *config.Config) {
	level.SetLevel(LevelFor(cfg))

	var cores []zapcore.Core
	if cfg.Log.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotated), level))
	}
	if cfg.Log.Console || len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), level))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		With(zap.String("service", "learning-center"), zap.String("mode", cfg.Server.Mode))

	initRollbar(cfg)
}

// LevelFor resolves the configured level. An unset or unknown log.level
// falls back to debug in debug mode and info otherwise.
func LevelFor(cfg *config.Config) zapcore.Level {
	if cfg.Log.Level != "" {
		if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			return lvl
		}
	}
	if cfg.Server.Mode == "debug" {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

// SetLevel changes the level of the running logger. Safe while requests are
// being served.
func SetLevel(lvl zapcore.Level) {
	level.SetLevel(lvl)
}

func Level() zapcore.Level {
	return level.Level()
}
