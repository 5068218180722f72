package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fstophq/fstop-cli/internal/cli"
)

var logsReveal bool

// NewLogsCommand creates the logs command group
func NewLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Locate the log file",
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the log file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			defer cmdCtx.Close()

			svc, err := cmdCtx.Backend()
			if err != nil {
				return err
			}

			logPath := svc.LogFilePath()
			fmt.Println(logPath)

			if logsReveal {
				if err := svc.Reveal(logPath); err != nil {
					return fmt.Errorf("failed to open file manager: %w", err)
				}
			}
			return nil
		},
	}
	path.Flags().BoolVar(&logsReveal, "reveal", false, "Open the log's folder in the file manager")

	cmd.AddCommand(path)
	return cmd
}
