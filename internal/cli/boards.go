package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/draftboard/pkg/board"
	"github.com/matzehuels/draftboard/pkg/session"
)

// boardsCommand creates the boards command for browsing saved boards.
func (c *CLI) boardsCommand() *cobra.Command {
	var (
		configPath string
		owner      string
	)

	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Browse and manage saved boards",
		Long: `Browse and manage saved boards.

Without a subcommand, boards opens an interactive picker and prints the
selected board as JSON. Boards are read from the backend configured under
[board] in the config file; the memory backend holds no boards between
processes, so a persistent backend (mongo) is required for this command
to be useful.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardsPick(cmd.Context(), configPath, owner)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/draftboard/config.toml)")
	cmd.PersistentFlags().StringVar(&owner, "owner", session.Local().OwnerID(), "owner scope for board access")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardsList(cmd.Context(), configPath, owner)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [id]",
		Short: "Print a board as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardsShow(cmd.Context(), configPath, owner, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardsDelete(cmd.Context(), configPath, owner, args[0])
		},
	})

	return cmd
}

// openBoardStore builds the configured board store.
func (c *CLI) openBoardStore(ctx context.Context, configPath string) (board.Store, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return newBoardStore(ctx, cfg.Board)
}

// runBoardsPick opens the interactive picker and prints the chosen board.
func (c *CLI) runBoardsPick(ctx context.Context, configPath, owner string) error {
	store, err := c.openBoardStore(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	summaries, err := store.List(ctx, owner)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		printInfo("No boards saved")
		return nil
	}

	model := NewBoardListModel(summaries)
	prog := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("board picker: %w", err)
	}

	result, ok := final.(BoardListModel)
	if !ok || result.Selected == nil {
		return nil
	}

	b, err := store.Get(ctx, owner, result.Selected.ID)
	if err != nil {
		return err
	}
	return printBoard(b)
}

// runBoardsList prints one line per saved board.
func (c *CLI) runBoardsList(ctx context.Context, configPath, owner string) error {
	store, err := c.openBoardStore(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	summaries, err := store.List(ctx, owner)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		printInfo("No boards saved")
		return nil
	}

	for _, s := range summaries {
		printKeyValue(s.ID, fmt.Sprintf("%s (v%d, %s)", s.Name, s.Version, formatRelativeTime(s.UpdatedAt)))
	}
	return nil
}

// runBoardsShow prints a single board as indented JSON.
func (c *CLI) runBoardsShow(ctx context.Context, configPath, owner, id string) error {
	store, err := c.openBoardStore(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	b, err := store.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	return printBoard(b)
}

// printBoard writes a board as indented JSON to stdout.
func printBoard(b *board.Board) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// runBoardsDelete removes a board.
func (c *CLI) runBoardsDelete(ctx context.Context, configPath, owner, id string) error {
	store, err := c.openBoardStore(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if err := store.Delete(ctx, owner, id); err != nil {
		return err
	}
	printSuccess("Deleted board %s", id)
	return nil
}
