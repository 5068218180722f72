package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fstophq/fstop-cli/internal/cli"
)

var maintenanceRoot string

// NewMaintenanceCommand creates the maintenance command group: the same
// destructive actions the TUI's Library tab offers, each behind a
// confirmation unless --yes is passed.
func NewMaintenanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Destructive library maintenance operations",
		Long: `Destructive maintenance operations against the studio's library.

Root-scoped operations act on the library root given with --root, falling
back to the folder the studio last had open. Every operation asks for
confirmation unless --yes is passed.

Examples:
  fstop maintenance clear-sidecars --root ~/Photos
  fstop maintenance clear-ai-tags
  fstop maintenance clear-thumbnails --yes`,
	}

	cmd.PersistentFlags().StringVar(&maintenanceRoot, "root", "", "Library root (default: the studio's last open folder)")

	cmd.AddCommand(newClearSidecarsCommand())
	cmd.AddCommand(newClearAITagsCommand())
	cmd.AddCommand(newClearTagsCommand())
	cmd.AddCommand(newClearThumbnailsCommand())

	return cmd
}

func newClearSidecarsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-sidecars",
		Short: "Delete every .fsx edit sidecar under the library root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRootedMaintenance(
				"Clear edit sidecars",
				"Deletes every .fsx sidecar under %s. Edits stored in sidecars are lost.",
				func(ctx context.Context, svc maintenanceBackend, root string) (string, error) {
					count, err := svc.ClearAllSidecars(ctx, root)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Removed %d sidecar file(s)", count), nil
				})
		},
	}
}

func newClearAITagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-ai-tags",
		Short: "Remove AI-generated tags from photos under the library root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRootedMaintenance(
				"Clear AI tags",
				"Removes all AI-generated tags from photos under %s.",
				func(ctx context.Context, svc maintenanceBackend, root string) (string, error) {
					count, err := svc.ClearAITags(ctx, root)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Removed %d AI tag(s)", count), nil
				})
		},
	}
}

func newClearTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-tags",
		Short: "Remove ALL tags from photos under the library root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRootedMaintenance(
				"Clear all tags",
				"Removes ALL tags, yours and AI's, from photos under %s. This cannot be undone.",
				func(ctx context.Context, svc maintenanceBackend, root string) (string, error) {
					count, err := svc.ClearAllTags(ctx, root)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Removed %d tag(s)", count), nil
				})
		},
	}
}

func newClearThumbnailsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-thumbnails",
		Short: "Drop the rendered thumbnail cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			defer ctx.Close()

			ok, err := cli.Confirm("Clear thumbnail cache",
				"Drops every cached thumbnail. They re-render on demand.")
			if err != nil {
				return err
			}
			if !ok {
				cli.PrintInfo("Cancelled")
				return nil
			}

			svc, err := ctx.Backend()
			if err != nil {
				return err
			}
			if err := svc.ClearThumbnailCache(context.Background()); err != nil {
				return err
			}
			cli.PrintSuccess("Thumbnail cache cleared")
			return nil
		},
	}
}

// maintenanceBackend is the slice of the backend the rooted maintenance
// commands use.
type maintenanceBackend interface {
	ClearAllSidecars(ctx context.Context, root string) (int, error)
	ClearAITags(ctx context.Context, root string) (int, error)
	ClearAllTags(ctx context.Context, root string) (int, error)
}

// runRootedMaintenance is the shared confirm-then-execute path for the
// root-scoped operations.
func runRootedMaintenance(title, messageFormat string,
	run func(ctx context.Context, svc maintenanceBackend, root string) (string, error)) error {

	cmdCtx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	defer cmdCtx.Close()

	root, err := cmdCtx.EffectiveRoot(maintenanceRoot)
	if err != nil {
		return err
	}
	if err := cli.ValidateRootDir(root); err != nil {
		return err
	}

	ok, err := cli.Confirm(title, fmt.Sprintf(messageFormat, root))
	if err != nil {
		return err
	}
	if !ok {
		cli.PrintInfo("Cancelled")
		return nil
	}

	svc, err := cmdCtx.Backend()
	if err != nil {
		return err
	}

	summary, err := run(context.Background(), svc, root)
	if err != nil {
		return err
	}
	cli.PrintSuccess("%s", summary)
	return nil
}
