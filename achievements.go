package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"memorygame/internal/scoring"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		unlocked := a.profile.Achievements()
		all := scoring.Achievements()
		fmt.Printf("Achievements %d/%d\n\n", unlocked.Len(), len(all))
		for _, ach := range all {
			mark := "[ ]"
			if unlocked.Has(ach.Title) {
				mark = "[x]"
			}
			fmt.Printf("  %s %-26s %s\n", mark, ach.Title, ach.Description)
		}
		return nil
	},
}
