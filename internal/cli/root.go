// Package cli implements the pricer command line tool: portfolio NPV,
// par rates and z-spreads against a market snapshot file.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meenmo/rateslib/internal/config"
	"github.com/meenmo/rateslib/internal/logging"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/pricing"
)

// App carries the loaded configuration and logger into the subcommands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd wires the pricer command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "pricer",
		Short: "Fixed income portfolio pricer",
		Long: `pricer values portfolios of fixed and floating rate instruments
against a market snapshot: discount curves, index fixings and fx quotes
read from a JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if s, _ := cmd.Flags().GetString("market"); s != "" {
				cfg.MarketFile = s
			}
			if s, _ := cmd.Flags().GetString("portfolio"); s != "" {
				cfg.PortfolioFile = s
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.LogLevel = "debug"
			}
			app.Config = cfg
			app.Logger = logging.New(cfg.LogLevel)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (env: PRICER_*)")
	rootCmd.PersistentFlags().String("market", "", "market snapshot JSON file")
	rootCmd.PersistentFlags().String("portfolio", "", "portfolio JSON file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newNPVCmd(app))
	rootCmd.AddCommand(newParRateCmd(app))
	rootCmd.AddCommand(newZSpreadCmd(app))
	rootCmd.AddCommand(newCashflowsCmd(app))
	return rootCmd
}

// loadInputs reads the snapshot and portfolio named in the config.
func (a *App) loadInputs() (*market.Store, []pricing.Position, error) {
	if a.Config.MarketFile == "" {
		return nil, nil, fmt.Errorf("no market file: pass --market or set PRICER_MARKET_FILE")
	}
	if a.Config.PortfolioFile == "" {
		return nil, nil, fmt.Errorf("no portfolio file: pass --portfolio or set PRICER_PORTFOLIO_FILE")
	}
	store, err := loadStore(a.Config.MarketFile)
	if err != nil {
		return nil, nil, err
	}
	portfolio, err := loadPortfolio(a.Config.PortfolioFile, store)
	if err != nil {
		return nil, nil, err
	}
	a.Logger.Debug().
		Str("market", a.Config.MarketFile).
		Int("positions", len(portfolio)).
		Msg("inputs loaded")
	return store, portfolio, nil
}

func (a *App) newEngine(store *market.Store) *pricing.Engine {
	return pricing.NewEngine(store, a.Logger).
		WithWorkers(a.Config.Workers).
		WithIncludeTodayCashflows(a.Config.IncludeTodayCashflows)
}
