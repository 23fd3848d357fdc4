package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/config"
)

// New builds the application logger: JSON output in production, console otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	if cfg.Env == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return log.With(zap.String("env", cfg.Env)), nil
}
