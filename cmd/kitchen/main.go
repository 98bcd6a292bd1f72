// kitchen is a cooking game for the terminal: follow recipe steps with the
// mouse, earn stars and unlock new dishes.
//
// Usage:
//
//	kitchen play [recipe]    - Open the kitchen, optionally starting a recipe
//	kitchen list             - List recipes and unlock thresholds
//	kitchen album            - Show recently cooked dishes
//	kitchen serve            - Start SSH server for remote play
//	kitchen reset            - Wipe the saved profile
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config, 60)
//	--db <path>           - Set database path (default: ~/.kitchen/kitchen.db)
//	--config <path>       - Custom kitchen.yaml
//	--recipes <path>      - Custom recipes.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kitchen/internal/config"
	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagRecipes    string
	flagDifficulty string
	flagMute       bool
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kitchen",
	Short: "TUI Kitchen - Cook dishes in your terminal",
	Long: `TUI Kitchen is a terminal cooking game. Every recipe is a sequence of
small mouse mini-games: tap, stir, pour, slice, hold, draw and time your moves.
Finished dishes earn up to three stars, and stars unlock new recipes.

Available commands:
  play     - Open the kitchen
  list     - Show all recipes
  album    - Show recently cooked dishes
  serve    - Start SSH server for remote play
  reset    - Start over with a fresh profile

Examples:
  kitchen play
  kitchen play omelette
  kitchen list
  kitchen serve --ssh :2222
  kitchen album --limit 5`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to profile database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom kitchen.yaml")
	rootCmd.PersistentFlags().StringVar(&flagRecipes, "recipes", "", "Path to custom recipes.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
}

// setup is the configuration shared by every command.
type setup struct {
	cfg         config.KitchenConfig
	catalog     *kitchen.Catalog
	catalogPath string // "" when the embedded catalog is used
}

// loadSetup loads the kitchen config and recipe catalog and applies the
// global flags on top.
func loadSetup() (setup, error) {
	cfg, err := config.LoadKitchen(flagConfig)
	if err != nil {
		return setup{}, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			return setup{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Gameplay.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if _, err := cfg.Rules(0); err != nil {
		return setup{}, err
	}

	cat, path, err := config.LoadCatalog(flagRecipes)
	if err != nil {
		return setup{}, err
	}
	return setup{cfg: cfg, catalog: cat, catalogPath: path}, nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fail prints an error and exits, as every command does on fatal errors.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
