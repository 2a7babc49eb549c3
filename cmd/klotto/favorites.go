package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/store"
)

// NewFavoritesCmd creates the favorites command with its subcommands.
func NewFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage saved favorite number sets",
		Long: `Favorites manages a local list of hand-picked number sets.

Unlike the generation history, favorites keep the order the numbers
were entered in and can carry a memo. Favorites count toward the
'klotto winnings' check.`,
	}

	cmd.AddCommand(newFavoritesAddCmd())
	cmd.AddCommand(newFavoritesListCmd())
	cmd.AddCommand(newFavoritesRemoveCmd())

	return cmd
}

// newFavoritesAddCmd creates the favorites add subcommand.
func newFavoritesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [numbers...]",
		Short: "Save a number set as a favorite",
		Long: `Add saves six numbers as a favorite, optionally with a memo.

Examples:
  klotto favorites add 3 11 18 24 36 44
  klotto favorites add 1 2 9 16 25 33 --memo "family birthdays"`,
		Args: cobra.ExactArgs(model.NumbersPerSet),
		RunE: runFavoritesAddCmd,
	}

	cmd.Flags().StringP("memo", "m", "", "Free-form note for the set")

	return cmd
}

// runFavoritesAddCmd executes the favorites add subcommand.
func runFavoritesAddCmd(cmd *cobra.Command, args []string) error {
	numbers := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", arg, err)
		}
		numbers = append(numbers, n)
	}
	if err := model.ValidateNumbers(numbers); err != nil {
		return err
	}

	memo, err := cmd.Flags().GetString("memo")
	if err != nil {
		return err
	}

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	favorites, err := openFavorites(cfg)
	if err != nil {
		return err
	}

	added, err := favorites.Add(numbers, memo)
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	if !added {
		fmt.Printf("Already saved: %s\n", formatBalls(numbers))
		return nil
	}

	fmt.Printf("Saved favorite #%d: %s\n", favorites.Len(), formatBalls(numbers))
	return nil
}

// newFavoritesListCmd creates the favorites list subcommand.
func newFavoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved favorites",
		RunE:  runFavoritesListCmd,
	}
}

// runFavoritesListCmd executes the favorites list subcommand.
func runFavoritesListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	favorites, err := openFavorites(cfg)
	if err != nil {
		return err
	}

	items := favorites.All()
	if len(items) == 0 {
		fmt.Println("No favorites saved yet.")
		fmt.Println("\nUse 'klotto favorites add' to save a set.")
		return nil
	}

	fmt.Printf("Favorites (%d):\n\n", len(items))
	for i, fav := range items {
		line := fmt.Sprintf("  %3d. %s", i+1, formatBalls(fav.Numbers))
		if fav.Memo != "" {
			line += fmt.Sprintf("  - %s", fav.Memo)
		}
		fmt.Println(line)
	}
	fmt.Println("\nUse 'klotto favorites remove <index>' to delete one.")

	return nil
}

// newFavoritesRemoveCmd creates the favorites remove subcommand.
func newFavoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [index]",
		Short: "Remove a favorite by its list index",
		Args:  cobra.ExactArgs(1),
		RunE:  runFavoritesRemoveCmd,
	}
}

// runFavoritesRemoveCmd executes the favorites remove subcommand.
func runFavoritesRemoveCmd(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	favorites, err := openFavorites(cfg)
	if err != nil {
		return err
	}

	// The list command numbers favorites from one.
	if err := favorites.Remove(index - 1); err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			return fmt.Errorf("no favorite at index %d (use 'klotto favorites list')", index)
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	fmt.Printf("Removed favorite #%d.\n", index)
	return nil
}
