package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fstophq/fstop-cli/internal/cli"
)

var (
	libraryRoot         string
	libraryOutputFormat string
)

// NewLibraryCommand creates the library command group
func NewLibraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect and index the photo library",
	}

	cmd.PersistentFlags().StringVar(&libraryRoot, "root", "", "Library root (default: the studio's last open folder)")

	cmd.AddCommand(newLibraryScanCommand())
	cmd.AddCommand(newLibraryStatsCommand())

	return cmd
}

func newLibraryScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Index the photos under the library root into the catalog",
		Long: `Walks the library root and indexes every recognized image file into the
catalog. Tags found in existing .fsx sidecars are imported as user tags.
Re-scanning is safe: photos already indexed are left in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			defer cmdCtx.Close()

			root, err := cmdCtx.EffectiveRoot(libraryRoot)
			if err != nil {
				return err
			}
			if err := cli.ValidateRootDir(root); err != nil {
				return err
			}

			svc, err := cmdCtx.Backend()
			if err != nil {
				return err
			}

			result, err := svc.Scan(context.Background(), root)
			if err != nil {
				return err
			}
			cli.PrintSuccess("Indexed %d photo(s), imported %d sidecar tag(s)",
				result.Indexed, result.TagsImported)
			return nil
		},
	}
}

func newLibraryStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics for the library root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(libraryOutputFormat); err != nil {
				return err
			}

			cmdCtx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			defer cmdCtx.Close()

			root, err := cmdCtx.EffectiveRoot(libraryRoot)
			if err != nil {
				return err
			}

			svc, err := cmdCtx.Backend()
			if err != nil {
				return err
			}

			stats, err := svc.Stats(context.Background(), root)
			if err != nil {
				return err
			}

			if cli.OutputFormat(libraryOutputFormat) != cli.FormatText {
				return cli.OutputResults(os.Stdout, libraryOutputFormat, stats)
			}

			table := cli.NewTableFormatter(os.Stdout)
			table.Header("METRIC", "VALUE")
			table.Row("Photos", fmt.Sprintf("%d", stats.Photos))
			table.Row("Tagged photos", fmt.Sprintf("%d", stats.TaggedPhotos))
			table.Row("User tags", fmt.Sprintf("%d", stats.UserTags))
			table.Row("AI tags", fmt.Sprintf("%d", stats.AITags))
			table.Row("Sidecars", fmt.Sprintf("%d", stats.Sidecars))
			table.Row("Thumbnails", fmt.Sprintf("%d (%s)", stats.ThumbnailCount, cli.FormatBytes(stats.ThumbnailBytes)))
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryOutputFormat, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}
