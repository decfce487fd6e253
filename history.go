package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"memorygame/internal/tui"
)

var (
	flagClear bool
	flagPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse played games",
	Long: `List every finished single-player game, most recent first. Select a game
to read its move log.

Examples:
  memorygame history
  memorygame history --plain
  memorygame history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole history")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the history instead of opening the browser")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{history: true})
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := cmd.Context()

	if flagClear {
		if err := a.history.Clear(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	}

	if !flagPlain {
		model, err := tui.NewHistoryModel(ctx, a.history, 24)
		if err != nil {
			return err
		}
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("run history: %w", err)
		}
		return nil
	}

	records, err := a.history.List(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No games played yet.")
		fmt.Println()
		fmt.Println("Play 'memorygame play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-5s  %-16s  %-10s  %-9s  %4s  %5s  %5s  %s\n", "#", "Date", "Player", "Mode", "Rows", "Tries", "Time", "Result")
	fmt.Printf("  %-5s  %-16s  %-10s  %-9s  %4s  %5s  %5s  %s\n", "-", "----", "------", "----", "----", "-----", "----", "------")
	for _, r := range records {
		elapsed := "-"
		if r.UsedTimer && r.ElapsedSeconds >= 0 {
			elapsed = fmt.Sprintf("%02d:%02d", r.ElapsedSeconds/60, r.ElapsedSeconds%60)
		}
		result := "Lost"
		if r.Won {
			result = "Won"
		}
		fmt.Printf("  %-5d  %-16s  %-10s  %-9s  %4d  %5d  %5s  %s\n",
			r.ID, r.PlayedAt.Local().Format("2006-01-02 15:04"), r.Alias, r.Mode, r.GridSize, r.Attempts, elapsed, result)
	}
	return nil
}
