package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/calibration"
	"github.com/mhenders/baize/internal/config"
	"github.com/mhenders/baize/internal/database"
	"github.com/mhenders/baize/internal/metrics"
	"github.com/mhenders/baize/internal/simulation"
	"github.com/mhenders/baize/internal/store"
)

// Shared command state, wired up once per invocation by the root
// PersistentPreRunE and torn down by PersistentPostRun.
var (
	cfg         config.Config
	calCfg      calibration.Config
	leagueStore store.LeagueStore
	runCounters metrics.MetricsStore
	teardown    func()
)

var rootCmd = &cobra.Command{
	Use:   "baize",
	Short: "Season projections, lineups and cross-league ratings for pool leagues",
	Long: `Baize works from a local or remote sqlite snapshot of an amateur pool
league: it builds standings, simulates the rest of the season, recommends
lineups, scouts opponents and calibrates player strength across divisions
and across leagues that never play each other.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		var err error
		calCfg, err = config.LoadCalibration(cfg.CalibrationPath)
		if err != nil {
			return err
		}

		db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		teardown = dbTeardown
		leagueStore = store.New(db)
		runCounters = metrics.New(db)
		runCounters.Increment(cmd.Name())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if teardown != nil {
			teardown()
		}
	},
}

// newRand builds the simulation source: an explicit seed reproduces a run,
// zero seeds from the clock.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return simulation.NewRand(seed)
}

func simOptions(runs int) []simulation.Option {
	var opts []simulation.Option
	if runs > 0 {
		opts = append(opts, simulation.WithRuns(runs))
	}
	return opts
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
