package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"memorygame/internal/catalog"
	"memorygame/internal/clock"
	"memorygame/internal/game"
	"memorygame/internal/tui"
)

var (
	flagPairs int
	flagP1    string
	flagP2    string
)

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Play a two-player game on one board",
	Long: `Two players take turns on a shared board. Finding a pair scores a point
and keeps the turn; a miss passes it. The player with more pairs wins.

Examples:
  memorygame local
  memorygame local --pairs 16 --p1 Ana --p2 Leo`,
	Args: cobra.NoArgs,
	RunE: runLocal,
}

func init() {
	localCmd.Flags().IntVar(&flagPairs, "pairs", 10, "Number of pairs (10-20)")
	localCmd.Flags().StringVar(&flagP1, "p1", "", "Name of player 1")
	localCmd.Flags().StringVar(&flagP2, "p2", "", "Name of player 2")
}

func runLocal(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{interactive: true})
	if err != nil {
		return err
	}
	defer a.Close()

	g := game.NewLocalGame(a.profile, clock.NewReal(), a.rules, a.logger, a.rng)
	defer g.Close()
	if err := g.Start(cmd.Context(), flagPairs, flagP1, flagP2); err != nil {
		return err
	}

	model := tui.NewLocalModel(g, newPlayer(a), a.profile.Active(catalog.KindCardStyle).Glyph)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	if res, ok := g.Result(); ok {
		fmt.Printf("%s %d - %d %s\n", res.Names[0], res.Scores[0], res.Scores[1], res.Names[1])
	}
	return nil
}
