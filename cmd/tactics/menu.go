package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tactics/internal/games/skirmish"
	"github.com/vovakirdan/tui-tactics/internal/platform/tui"
	"github.com/vovakirdan/tui-tactics/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Going back from a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Match history
  Q            - Quit

Examples:
  tactics menu
  tactics menu --fps 30
  tactics menu --db ./matches.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom Battle Strategy config YAML")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := checkConfig(flagConfig); err != nil {
		return err
	}
	skirmish.SetConfigPath(flagConfig)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsHistory {
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", result.GameID, "error", err)
			continue
		}

		// Fresh seed per game unless fixed by --seed
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg); err != nil {
			return err
		}
	}
}
