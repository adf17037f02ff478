package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rentalops/rentcore/pkg/application/services/diff"
	"github.com/rentalops/rentcore/pkg/domain/entities"
	"github.com/rentalops/rentcore/pkg/infrastructure/api"
	"github.com/rentalops/rentcore/pkg/infrastructure/config"
	"github.com/rentalops/rentcore/pkg/interfaces/cli/output"
)

// DiffConfig holds configuration for the diff command
type DiffConfig struct {
	EventID int64
	FromRef int64
	ToRef   int64
	ByPrice bool // legacy item@price identity convention
	Config  *config.Config
	Logger  *zap.Logger
}

// DiffCommand compares two revisions of an event and prints the report.
type DiffCommand struct {
	config DiffConfig
}

// NewDiffCommand creates a diff command from configuration.
func NewDiffCommand(config DiffConfig) *DiffCommand {
	return &DiffCommand{config: config}
}

// Execute fetches the revision history and renders the diff. When no refs
// are given the two most recent revisions are compared.
func (c *DiffCommand) Execute(ctx context.Context) error {
	client := api.NewClient(
		c.config.Config.APIBaseURL,
		time.Duration(c.config.Config.TimeoutSeconds)*time.Second,
		c.config.Logger,
	)

	snaps, err := client.ListRevisions(ctx, c.config.EventID)
	if err != nil {
		return fmt.Errorf("failed to load revisions for event %d: %w", c.config.EventID, err)
	}
	if len(snaps) < 2 {
		return fmt.Errorf("event %d has %d revision(s), need at least 2", c.config.EventID, len(snaps))
	}

	before := &snaps[len(snaps)-2]
	after := &snaps[len(snaps)-1]
	if c.config.FromRef != 0 || c.config.ToRef != 0 {
		if before = findRef(snaps, c.config.FromRef); before == nil {
			return fmt.Errorf("ref %d not found for event %d", c.config.FromRef, c.config.EventID)
		}
		if after = findRef(snaps, c.config.ToRef); after == nil {
			return fmt.Errorf("ref %d not found for event %d", c.config.ToRef, c.config.EventID)
		}
	}

	identity := diff.IdentityByItem
	if c.config.ByPrice {
		identity = diff.IdentityByItemAndPrice
	}
	service := diff.NewServiceWithConfig(diff.Config{Identity: identity})

	fmt.Printf("Evento %d: ref%d → ref%d\n\n", c.config.EventID, before.Ref, after.Ref)
	output.RenderDiff(os.Stdout, service.Compare(before, after))
	return nil
}

func findRef(snaps []entities.Snapshot, ref int64) *entities.Snapshot {
	for i := range snaps {
		if snaps[i].Ref == ref {
			return &snaps[i]
		}
	}
	return nil
}
