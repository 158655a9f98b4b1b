package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tactics/internal/config"
	"github.com/vovakirdan/tui-tactics/internal/core"
	"github.com/vovakirdan/tui-tactics/internal/games/skirmish"
	"github.com/vovakirdan/tui-tactics/internal/platform/tui"
	"github.com/vovakirdan/tui-tactics/internal/registry"
	"github.com/vovakirdan/tui-tactics/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Battle Strategy controls:
  Arrows/WASD/hjkl - Move the board cursor
  Tab              - Select the next living unit
  Enter            - End Turn
  +/-              - Adjust the damage slider
  0                - Reset the damage slider
  X                - Apply slider damage to the unit under the cursor
  C/Space          - Toggle "show fallen units"
  P                - Pause
  R                - Restart (after game over)
  B/Esc            - Back (when paused or game over)
  Ctrl+S           - Save a screenshot to ~/.tactics/screenshots
  Q/Ctrl+C         - Quit

Examples:
  tactics play skirmish
  tactics play skirmish --seed 42
  tactics play skirmish --config ./my-skirmish.yaml
  tactics play widgets`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'tactics list' to see available games)", gameID)
	}

	if gameID == "skirmish" {
		if err := checkConfig(flagConfig); err != nil {
			return err
		}
		skirmish.SetConfigPath(flagConfig)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// checkConfig validates an explicit config file before the TUI starts so
// errors are reported on a normal terminal.
func checkConfig(path string) error {
	if path == "" {
		return nil
	}
	if _, err := config.LoadSkirmish(path); err != nil {
		return err
	}
	return nil
}

// runtimeConfig builds the runtime config from flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens match history, or returns nil so play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("match history unavailable", "error", err)
		return nil
	}
	return store
}
