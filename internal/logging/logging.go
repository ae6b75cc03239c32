package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a development logger for local runs and a JSON production
// logger otherwise.
func New(local bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if local {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
