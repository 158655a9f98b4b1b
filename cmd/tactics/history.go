package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tactics/internal/platform/tui"
	"github.com/vovakirdan/tui-tactics/internal/registry"
	"github.com/vovakirdan/tui-tactics/internal/storage"
	"github.com/vovakirdan/tui-tactics/internal/tactics"
)

var (
	flagHistoryLimit int
	flagHistoryMatch string
	flagHistoryClear bool
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Show recorded matches",
	Long: `Display recently finished matches for a game (default: skirmish).

Examples:
  tactics history
  tactics history --limit 5
  tactics history --match 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  tactics history --tui
  tactics history --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().StringVar(&flagHistoryMatch, "match", "", "Show a single match by ID")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded matches for the game")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse history interactively")
}

func runHistory(cmd *cobra.Command, args []string) error {
	gameID := "skirmish"
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("unknown game %q (run 'tactics list' to see available games)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	switch {
	case flagHistoryTUI:
		cfg := runtimeConfig()
		_, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
		return err

	case flagHistoryClear:
		if err := store.ClearMatches(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared match history for %s.\n", game.Title())
		return nil

	case flagHistoryMatch != "":
		rec, err := store.MatchByID(flagHistoryMatch)
		if err != nil {
			return err
		}
		if rec == nil {
			return errors.New("match not found: " + flagHistoryMatch)
		}
		printMatch(out, *rec)
		return nil
	}

	return printHistory(out, store, gameID, game.Title())
}

func printHistory(out io.Writer, store *storage.Store, gameID, title string) error {
	matches, err := store.RecentMatches(gameID, flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Match History - %s\n\n", title)

	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches recorded yet.")
		fmt.Fprintf(out, "\nPlay 'tactics play %s' to record the first one!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %5s  %-12s  %9s  %s\n", "Date", "Turns", "Result", "Survivors", "Match")
	fmt.Fprintf(out, "  %-16s  %5s  %-12s  %9s  %s\n", "----", "-----", "------", "---------", "-----")
	for _, rec := range matches {
		fmt.Fprintf(out, "  %-16s  %5d  %-12s  %9d  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.Turns, result(rec), rec.Survivors, rec.MatchID)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d matches, %.1f turns on average, longest %d turns\n",
		stats.MatchCount, stats.AvgTurns, stats.LongestGame)

	losses, err := store.LossesByPlayer(gameID)
	if err != nil {
		return err
	}
	if len(losses) > 0 {
		fmt.Fprint(out, "Eliminations:")
		for p := range tactics.PlayerCount {
			fmt.Fprintf(out, "  Player %d: %d", p, losses[p])
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printMatch(out io.Writer, rec storage.MatchRecord) {
	fmt.Fprintf(out, "Match     %s\n", rec.MatchID)
	fmt.Fprintf(out, "Game      %s\n", rec.GameID)
	fmt.Fprintf(out, "Played    %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Turns     %d\n", rec.Turns)
	fmt.Fprintf(out, "Result    %s\n", result(rec))
	fmt.Fprintf(out, "Survivors %d\n", rec.Survivors)
	fmt.Fprintf(out, "Duration  %ds\n", rec.Duration)
}

func result(rec storage.MatchRecord) string {
	if rec.EndReason == "eliminated" {
		return fmt.Sprintf("P%d eliminated", rec.LoserPlayer)
	}
	return rec.EndReason
}
