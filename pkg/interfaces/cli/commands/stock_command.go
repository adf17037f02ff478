package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rentalops/rentcore/pkg/domain/entities"
	"github.com/rentalops/rentcore/pkg/infrastructure/api"
	"github.com/rentalops/rentcore/pkg/infrastructure/config"
	"github.com/rentalops/rentcore/pkg/interfaces/cli/output"
)

// StockConfig holds configuration for the stock command
type StockConfig struct {
	MaterialID int64
	Date       string
	Config     *config.Config
	Logger     *zap.Logger
}

// StockCommand prints a material's availability with its level bucket.
type StockCommand struct {
	config StockConfig
}

// NewStockCommand creates a stock command from configuration.
func NewStockCommand(config StockConfig) *StockCommand {
	return &StockCommand{config: config}
}

// Execute fetches availability and classifies it against the configured
// thresholds.
func (c *StockCommand) Execute(ctx context.Context) error {
	client := api.NewClient(
		c.config.Config.APIBaseURL,
		time.Duration(c.config.Config.TimeoutSeconds)*time.Second,
		c.config.Logger,
	)

	av, err := client.Stock(ctx, c.config.MaterialID, c.config.Date)
	if err != nil {
		return fmt.Errorf("failed to load stock for material %d: %w", c.config.MaterialID, err)
	}

	level := entities.ClassifyStock(av.Scorta, av.Disponibile, entities.StockThresholds{
		LowAbs:   c.config.Config.StockLowAbs,
		LowRatio: c.config.Config.StockLowRatio,
	})
	output.RenderStock(os.Stdout, c.config.MaterialID, av.Scorta, av.Prenotato, av.Disponibile, level)
	return nil
}
