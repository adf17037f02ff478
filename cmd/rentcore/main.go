package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rentalops/rentcore/pkg/infrastructure/config"
	"github.com/rentalops/rentcore/pkg/interfaces/cli/commands"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	logCfg := zap.NewDevelopmentConfig()
	logCfg.DisableStacktrace = true
	if !verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return logCfg.Build()
}

func main() {
	var (
		configPath string
		verbose    bool

		eventID int64
		fromRef int64
		toRef   int64
		byPrice bool

		year  int
		month int

		materialID int64
		date       string
	)

	var cfg *config.Config
	var logger *zap.Logger

	root := &cobra.Command{
		Use:   "rentcore",
		Short: "Revision diff and calendar coverage tooling for the rental back office",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if logger, err = newLogger(verbose); err != nil {
				return err
			}
			if cfg, err = config.Load(configPath); err != nil {
				return fmt.Errorf("failed to load config %s: %w", configPath, err)
			}
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "rentcore.yaml", "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two revisions of an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return commands.NewDiffCommand(commands.DiffConfig{
				EventID: eventID,
				FromRef: fromRef,
				ToRef:   toRef,
				ByPrice: byPrice,
				Config:  cfg,
				Logger:  logger,
			}).Execute(cmd.Context())
		},
	}
	diffCmd.Flags().Int64Var(&eventID, "evento", 0, "event id")
	diffCmd.Flags().Int64Var(&fromRef, "from", 0, "older revision ref (default: second to last)")
	diffCmd.Flags().Int64Var(&toRef, "to", 0, "newer revision ref (default: last)")
	diffCmd.Flags().BoolVar(&byPrice, "by-price", false, "use the legacy item@price line identity")
	diffCmd.MarkFlagRequired("evento")

	calendarioCmd := &cobra.Command{
		Use:   "calendario",
		Short: "Print a month's start/coverage grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return commands.NewCalendarioCommand(commands.CalendarioConfig{
				Year:   year,
				Month:  month,
				Config: cfg,
				Logger: logger,
			}).Execute(cmd.Context())
		},
	}
	calendarioCmd.Flags().IntVar(&year, "year", 0, "year (default: current)")
	calendarioCmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default: current)")

	stockCmd := &cobra.Command{
		Use:   "stock",
		Short: "Check a material's availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return commands.NewStockCommand(commands.StockConfig{
				MaterialID: materialID,
				Date:       date,
				Config:     cfg,
				Logger:     logger,
			}).Execute(cmd.Context())
		},
	}
	stockCmd.Flags().Int64Var(&materialID, "materiale", 0, "material id")
	stockCmd.Flags().StringVar(&date, "date", "", "ISO date (default: today on the API side)")
	stockCmd.MarkFlagRequired("materiale")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP facade",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return commands.NewServeCommand(commands.ServeConfig{
				Config: cfg,
				Logger: logger,
			}).Execute(cmd.Context())
		},
	}

	root.AddCommand(diffCmd, calendarioCmd, stockCmd, serveCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
