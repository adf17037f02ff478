package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rentalops/rentcore/pkg/application/dto"
	"github.com/rentalops/rentcore/pkg/application/services/coverage"
	"github.com/rentalops/rentcore/pkg/infrastructure/api"
	"github.com/rentalops/rentcore/pkg/infrastructure/config"
	"github.com/rentalops/rentcore/pkg/interfaces/cli/output"
)

// CalendarioConfig holds configuration for the calendario command
type CalendarioConfig struct {
	Year   int
	Month  int
	Config *config.Config
	Logger *zap.Logger
}

// CalendarioCommand prints a month's coverage grid.
type CalendarioCommand struct {
	config CalendarioConfig
}

// NewCalendarioCommand creates a calendario command from configuration.
func NewCalendarioCommand(config CalendarioConfig) *CalendarioCommand {
	return &CalendarioCommand{config: config}
}

// Execute fetches the month's events and renders the start/coverage grid.
func (c *CalendarioCommand) Execute(ctx context.Context) error {
	year, month := c.config.Year, c.config.Month
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	client := api.NewClient(
		c.config.Config.APIBaseURL,
		time.Duration(c.config.Config.TimeoutSeconds)*time.Second,
		c.config.Logger,
	)
	events, err := client.MonthEvents(ctx, year, month)
	if err != nil {
		return fmt.Errorf("failed to load events for %d-%02d: %w", year, month, err)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	window := dto.Window{
		From: first.Format("2006-01-02"),
		To:   first.AddDate(0, 1, -1).Format("2006-01-02"),
	}

	service := coverage.NewService()
	idx := service.Index(events, window)

	fmt.Printf("Calendario %d-%02d: %d eventi su %d postazioni\n\n",
		year, month, len(events), c.config.Config.LocationSlots)
	output.RenderMonth(os.Stdout, idx, service.Days(window))
	return nil
}
