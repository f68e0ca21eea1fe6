package scrapyard

import "go.uber.org/zap"

// Config holds global configuration for the storage system
var Config config = config{logger: zap.NewNop()}

type config struct {
	logger *zap.Logger
}

// SetLogger configures the logger used for structural-operation debug logs.
// Passing nil restores the no-op logger.
func (c *config) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}
