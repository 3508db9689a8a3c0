package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/forgebay/escrow/internal/pkg/models"
)

// ZapLogger wraps zap with the field helpers and echo middleware this service uses
type ZapLogger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

// InitZapLogger creates the service logger from application config. Debug mode
// uses a human-readable console encoder; everything else emits JSON.
func InitZapLogger(cfg *models.Config) (*ZapLogger, error) {
	level := zapcore.InfoLevel
	if cfg.App.Debug {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.App.Debug {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(devCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", cfg.App.Name))

	logger := &ZapLogger{
		Logger: zl,
		sugar:  zl.Sugar(),
	}
	SetGlobalLogger(logger)
	return logger, nil
}

// Close flushes buffered log entries
func (l *ZapLogger) Close() error {
	if err := l.Logger.Sync(); err != nil {
		// Sync on stdout is not supported everywhere; ignore those errors
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to sync logger: %w", err)
		}
	}
	return nil
}
