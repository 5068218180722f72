package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fstophq/fstop-cli/internal/cli"
	"github.com/fstophq/fstop-cli/pkg/connector"
)

// NewAICommand creates the ai command group
func NewAICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Probe the studio's AI auto-tagging connector",
	}

	cmd.AddCommand(newAITestCommand())
	cmd.AddCommand(newAIModelsCommand())

	return cmd
}

func newAITestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test [address]",
		Short: "Test connectivity to an AI connector address",
		Long: `Probes an AI connector endpoint by listing its models. With no argument
the configured ai.connector_address is probed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			defer cmdCtx.Close()

			address := cmdCtx.Settings.ConnectorAddress()
			if len(args) == 1 {
				address = args[0]
			}
			if address == "" {
				return fmt.Errorf("no connector address: pass one or set %s", "ai.connector_address")
			}

			svc, err := cmdCtx.Backend()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), connector.DefaultTimeout)
			defer cancel()
			if err := svc.TestConnection(ctx, address, cmdCtx.Settings.APIKey()); err != nil {
				return fmt.Errorf("connection failed: %w", err)
			}
			cli.PrintSuccess("Connected to %s", address)
			return nil
		},
	}
}

func newAIModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models the configured AI provider offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			defer cmdCtx.Close()

			settings := cmdCtx.Settings
			svc, err := cmdCtx.Backend()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), connector.DefaultTimeout)
			defer cancel()
			ids, err := svc.ListModels(ctx, connector.Config{
				Provider: settings.AIProvider(),
				Address:  settings.ConnectorAddress(),
				APIKey:   settings.APIKey(),
			})
			if err != nil {
				return err
			}

			for _, id := range ids {
				marker := "  "
				if id == settings.AIModel() {
					marker = "* "
				}
				fmt.Printf("%s%s\n", marker, id)
			}
			return nil
		},
	}
}
