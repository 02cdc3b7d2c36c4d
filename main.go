// Command scheduled is the host-harness CLI for the schedule propagation
// engine (SPEC_FULL.md §4.6). It replaces the teacher repo's single
// flag-parsed main with a small cobra.Command tree — one subcommand per
// engine operation — because the engine now exposes five operations
// instead of the teacher's one "generate an SVG" action.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scheduled/internal/model"
	"scheduled/internal/router"
	"scheduled/internal/scenario"
	"scheduled/internal/scheduler"
	"scheduled/internal/trace"
)

var (
	scenarioPath string
	cfgFile      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scheduled",
		Short: "Project-schedule propagation engine CLI",
		Long: "scheduled drives the calendar/rule-registry/scheduler/arrow-router engine\n" +
			"against a YAML scenario file: the same (features, dependencies, rules,\n" +
			"positions) tuple a roadmap host would feed it.",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scheduled.yaml)")
	root.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "scenario YAML file (default: a built-in FS-chain example)")
	root.PersistentFlags().Bool("debug", false, "enable verbose trace output")
	_ = viper.BindPFlag("scenario", root.PersistentFlags().Lookup("scenario"))
	_ = viper.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))

	cobra.OnInitialize(func() {
		initConfig()
		trace.Enabled = viper.GetBool("debug")
		if scenarioPath == "" {
			scenarioPath = viper.GetString("scenario")
		}
	})

	root.AddCommand(
		newRecalcCmd(),
		newAutoCmd(),
		newCapacityCmd(),
		newValidateCmd(),
		newRouteCmd(),
	)
	return root
}

// initConfig wires viper to read SCHEDULED_* environment variables and an
// optional .scheduled.yaml config file, the way felixgeelhaar-specular
// binds its own cobra commands through viper.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".scheduled")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("SCHEDULED")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // absence of a config file is not an error
}

func loadScenario() (scenario.Result, error) {
	trace.Printf("loading scenario from %q", scenarioPath)
	return scenario.Load(scenarioPath)
}

func newRecalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recalc",
		Short: "Run a full rule-aware recalculation and print the resulting updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario()
			if err != nil {
				return err
			}
			updates := scheduler.Recalculate(s.Features, s.Dependencies, s.Rules)
			printUpdates(cmd, updates)
			return nil
		},
	}
}

func newAutoCmd() *cobra.Command {
	var movedID, start, end string
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Run incremental auto-schedule after moving one feature",
		RunE: func(cmd *cobra.Command, args []string) error {
			if movedID == "" || start == "" || end == "" {
				return fmt.Errorf("auto: --moved, --start, and --end are all required")
			}
			s, err := loadScenario()
			if err != nil {
				return err
			}
			startAt, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("auto: parsing --start: %w", err)
			}
			endAt, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("auto: parsing --end: %w", err)
			}
			updates := scheduler.AutoSchedule(movedID, model.DateRange{StartAt: startAt, EndAt: endAt}, s.Features, s.Dependencies)
			printUpdates(cmd, updates)
			return nil
		},
	}
	cmd.Flags().StringVar(&movedID, "moved", "", "id of the feature that was moved")
	cmd.Flags().StringVar(&start, "start", "", "new start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "new end date, YYYY-MM-DD")
	return cmd
}

func newCapacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity",
		Short: "Run the advisory capacity sweep and print any warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario()
			if err != nil {
				return err
			}
			warnings := scheduler.CheckCapacity(s.Features, s.Rules)
			if len(warnings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no capacity warnings")
				return nil
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q: actual=%d max=%d features=%v\n",
					w.ResourceKind, w.ResourceID, w.Actual, w.MaxConcurrent, w.FeatureNames)
			}
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every feature's duration against the enabled duration rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario()
			if err != nil {
				return err
			}
			for _, f := range s.Features {
				v := scheduler.ValidateDuration(f, s.Rules)
				if v.Valid {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", f.ID)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.ID, v.Message)
			}
			return nil
		},
	}
}

func newRouteCmd() *cobra.Command {
	var positionsPath string
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Compute an SVG path string for every dependency",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario()
			if err != nil {
				return err
			}
			positions := s.Positions
			if positionsPath != "" {
				extra, err := scenario.Load(positionsPath)
				if err != nil {
					return err
				}
				positions = extra.Positions
			}
			cache, err := router.NewCachingRouter(256)
			if err != nil {
				return err
			}
			for _, dep := range s.Dependencies {
				path, ok := cache.ComputeDependencyPath(dep, positions)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: no path (missing position)\n", dep.ID)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", dep.ID, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&positionsPath, "positions", "", "optional separate scenario file supplying positions")
	return cmd
}

func printUpdates(cmd *cobra.Command, updates []model.FeatureUpdate) {
	if len(updates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no updates")
		return
	}
	for _, u := range updates {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: start=%s end=%s\n", u.ID, u.StartAt.Format("2006-01-02"), u.EndAt.Format("2006-01-02"))
	}
}
