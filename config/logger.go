package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Development uses the console encoder at debug level,
// everything else writes JSON at the configured level.
func NewLogger(app AppConfig, cfg LoggerConfig) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if app.Env == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zapConfig.Level = level
	}
	if cfg.Encoding != "" {
		zapConfig.Encoding = cfg.Encoding
	}
	zapConfig.DisableCaller = cfg.DisableCaller
	zapConfig.DisableStacktrace = cfg.DisableStacktrace

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", app.Name), zap.String("env", app.Env)), nil
}
