package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/fstophq/fstop-cli/internal/cli"
	"github.com/fstophq/fstop-cli/pkg/tui"
)

var shortcutsCopy bool

// NewShortcutsCommand creates the shortcuts command
func NewShortcutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcuts",
		Short: "Print the studio's keyboard-shortcut reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := tui.ShortcutReferenceText()
			if shortcutsCopy {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				cli.PrintSuccess("Shortcut reference copied to clipboard")
				return nil
			}
			fmt.Print(text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&shortcutsCopy, "copy", false, "Copy the reference to the clipboard instead of printing")
	return cmd
}
