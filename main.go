// memorygame is a matching-pairs card game for the terminal.
//
// Usage:
//
//	memorygame play              - Play a single-player game
//	memorygame local             - Play a two-player game on one board
//	memorygame history           - Browse played games
//	memorygame shop              - List, buy and select cosmetics
//	memorygame achievements      - Show achievements
//	memorygame profile           - Show or change the player profile
//
// Global flags (also read from MEMORYGAME_<FLAG> environment variables):
//
//	--data <dir>        - Data directory (default: ~/.memorygame)
//	--db <path>         - History database (default: <data>/history.db)
//	--rules <path>      - Rules YAML file
//	--log-level <lvl>   - debug, info, warn or error
//	--seed <value>      - RNG seed for reproducible boards
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memorygame",
	Short: "Memory - find the matching pairs in your terminal",
	Long: `Memory is a matching-pairs card game. Flip two cards per turn; matching
cards stay face up. Clear the board to earn coins and achievements, then
spend coins in the shop on themes, card styles, backgrounds and music.

Examples:
  memorygame play --mode easy
  memorygame play --mode challenge
  memorygame play --mode custom --rows 6 --timer
  memorygame local --pairs 12 --p1 Ana --p2 Leo
  memorygame shop buy theme Animals
  memorygame history`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("data", "~/.memorygame", "Directory for the profile, history and logs")
	pf.String("db", "", "Path to the history database (default: <data>/history.db)")
	pf.String("rules", "", "Path to a rules YAML file")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.Int64("seed", 0, "RNG seed (0 = random based on time)")
	for _, name := range []string{"data", "db", "rules", "log-level", "seed"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("MEMORYGAME")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(profileCmd)
}
