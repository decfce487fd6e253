package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"memorygame/internal/audio"
	"memorygame/internal/catalog"
	"memorygame/internal/clock"
	"memorygame/internal/game"
	"memorygame/internal/tui"
)

var (
	flagMode       string
	flagRows       int
	flagTimer      bool
	flagAlias      string
	flagThemeFiles []string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a single-player game",
	Long: `Deal a board and play until every pair is found.

Modes:
  easy       - 3 rows
  medium     - 4 rows
  hard       - 5 rows
  challenge  - 4 rows against a 60 second countdown
  desafio    - random 4 to 6 rows, timed
  custom     - 2 to 10 rows (--rows), optional --timer
  normal     - any number of rows (--rows), optional --timer

Controls:
  Arrows/hjkl    - Move
  Enter/Space    - Flip the card under the cursor
  R              - New board
  Q/Esc/Ctrl+C   - Quit

Examples:
  memorygame play --mode hard
  memorygame play --mode custom --rows 10
  memorygame play --theme-file ./my-themes.txt`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", string(game.ModeNormal), "Mode: easy, medium, hard, challenge, desafio, custom, normal")
	playCmd.Flags().IntVar(&flagRows, "rows", 4, "Rows for custom and normal games")
	playCmd.Flags().BoolVar(&flagTimer, "timer", false, "Show the elapsed time (custom and normal games)")
	playCmd.Flags().StringVar(&flagAlias, "alias", "", "Player alias (saved to the profile)")
	playCmd.Flags().StringSliceVar(&flagThemeFiles, "theme-file", nil, "Load extra emoji themes from a file (repeatable)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{interactive: true, history: true, themeFiles: flagThemeFiles})
	if err != nil {
		return err
	}
	defer a.Close()

	opts, err := game.Preset(game.Mode(strings.ToLower(flagMode)), flagRows, flagTimer, a.rules.Presets, a.rng)
	if err != nil {
		return err
	}
	if flagAlias != "" {
		opts.Alias = a.profile.SetAlias(flagAlias)
	} else {
		opts.Alias = a.profile.Alias()
	}

	g := game.NewGame(a.profile, a.history, a.writer, clock.NewReal(), a.rules, a.logger, game.WithRand(a.rng))
	defer g.Close()
	if err := g.Start(cmd.Context(), opts); err != nil {
		return err
	}

	player := newPlayer(a)
	model := tui.NewGameModel(g, player, a.profile.Active(catalog.KindCardStyle).Glyph, a.rules.Timing.ChallengeSeconds)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	if res, ok := g.Result(); ok && res.Won {
		fmt.Printf("Won in %d attempts. Coins: %d\n", res.Attempts, a.profile.Coins())
	}
	return nil
}

// newPlayer starts the selected music track at the saved volume.
func newPlayer(a *app) audio.Player {
	p := audio.NewSilent(os.Stderr, a.logger)
	p.SetVolume(a.profile.Snapshot().Volume)
	p.PlayMusic(a.profile.Active(catalog.KindMusic).Audio, true)
	return p
}
