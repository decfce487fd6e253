package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"memorygame/internal/catalog"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List, buy and select cosmetics",
	Long: `Spend coins on emoji themes, card styles, backgrounds and music tracks.

Kinds: theme, style, background, music

Examples:
  memorygame shop list
  memorygame shop list theme
  memorygame shop buy theme Animals
  memorygame shop select style "Star"`,
}

var shopListCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List catalog items",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <kind> <name>",
	Short: "Buy an item with coins",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runShopBuy,
}

var shopSelectCmd = &cobra.Command{
	Use:   "select <kind> <name>",
	Short: "Use an unlocked item",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runShopSelect,
}

func init() {
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopSelectCmd)
}

func runShopList(cmd *cobra.Command, args []string) error {
	kinds := catalog.Kinds
	if len(args) == 1 {
		kind, err := catalog.ParseKind(strings.ToLower(args[0]))
		if err != nil {
			return err
		}
		kinds = []catalog.Kind{kind}
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Coins: %d\n", a.profile.Coins())
	for _, kind := range kinds {
		active := a.profile.Active(kind).Name
		fmt.Printf("\n%s\n", strings.ToUpper(string(kind)))
		for _, it := range a.catalog.Items(kind) {
			status := fmt.Sprintf("%d coins", it.Price)
			switch {
			case it.Name == active:
				status = "selected"
			case it.Unlocked:
				status = "owned"
			}
			fmt.Printf("  %-2s %-20s %s\n", preview(it), it.Name, status)
		}
	}
	return nil
}

func runShopBuy(cmd *cobra.Command, args []string) error {
	kind, name, err := itemArgs(args)
	if err != nil {
		return err
	}
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.profile.Purchase(kind, name); err != nil {
		return err
	}
	fmt.Printf("Bought %s %q. Coins left: %d\n", kind, name, a.profile.Coins())
	return nil
}

func runShopSelect(cmd *cobra.Command, args []string) error {
	kind, name, err := itemArgs(args)
	if err != nil {
		return err
	}
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.profile.Select(kind, name); err != nil {
		return err
	}
	fmt.Printf("Now using %s %q.\n", kind, name)
	return nil
}

// itemArgs parses "<kind> <name...>"; names may contain spaces.
func itemArgs(args []string) (catalog.Kind, string, error) {
	kind, err := catalog.ParseKind(strings.ToLower(args[0]))
	if err != nil {
		return "", "", err
	}
	return kind, strings.Join(args[1:], " "), nil
}

func preview(it catalog.Item) string {
	switch {
	case it.Glyph != "":
		return it.Glyph
	case len(it.Symbols) > 0:
		return it.Symbols[0]
	}
	return " "
}
