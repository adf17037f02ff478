package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/rentalops/rentcore/pkg/infrastructure/config"
	"github.com/rentalops/rentcore/pkg/interfaces/httpapi"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	Config *config.Config
	Logger *zap.Logger
}

// ServeCommand runs the HTTP facade.
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a serve command from configuration.
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute starts the facade server and blocks until it stops.
func (c *ServeCommand) Execute(_ context.Context) error {
	server := httpapi.NewServer(c.config.Config, c.config.Logger)
	return server.Run()
}
