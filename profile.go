package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"memorygame/internal/catalog"
)

var (
	flagSetAlias  string
	flagSetVolume float64
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the player profile",
	Long: `Show the alias, volume, coins and selected items.

Examples:
  memorygame profile
  memorygame profile --alias Ana
  memorygame profile --volume 0.5`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&flagSetAlias, "alias", "", "Set the player alias")
	profileCmd.Flags().Float64Var(&flagSetVolume, "volume", 1, "Set the volume (0-1)")
}

func runProfile(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Changed("alias") {
		a.profile.SetAlias(flagSetAlias)
	}
	if cmd.Flags().Changed("volume") {
		a.profile.SetVolume(flagSetVolume)
	}

	d := a.profile.Snapshot()
	fmt.Printf("Alias:  %s\n", d.Alias)
	fmt.Printf("Volume: %.0f%%\n", d.Volume*100)
	fmt.Printf("Coins:  %d\n", d.Coins)
	fmt.Println()
	for _, kind := range catalog.Kinds {
		fmt.Printf("%-11s %s\n", kind+":", a.profile.Active(kind).Name)
	}
	fmt.Printf("\nAchievements: %d unlocked\n", len(d.UnlockedAchievements))
	return nil
}
