package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fstophq/fstop-cli/internal/cli"
	"github.com/fstophq/fstop-cli/pkg/files"
	"github.com/fstophq/fstop-cli/pkg/models"
)

var configOutputFormat string

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write the studio's shared settings",
		Long: `Read and write the settings file shared with the F/Stop desktop studio.

Changes to most keys take effect in the studio immediately. The processing
keys (processing.engine, processing.prefer_discrete_gpu) only take effect
after the studio restarts; setting one of them prints a reminder.

Examples:
  fstop config list
  fstop config get general.theme
  fstop config set general.theme light
  fstop config set processing.engine gpu
  fstop config set interface.adjustment_visibility.grain false`,
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting's effective value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			value, err := resolveSetting(ctx.Settings, args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatSettingValue(value))
			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]

			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}

			// Tagging shortcuts go through their own normalization; the
			// comma-separated value is split, trimmed, sorted, and deduped.
			if key == models.KeyTaggingShortcuts {
				list := models.NormalizeShortcuts(strings.Split(raw, ","))
				if err := ctx.SaveSettings(ctx.Settings.With(key, list)); err != nil {
					return err
				}
				cli.PrintSuccess("%s = %s", key, strings.Join(list, ", "))
				return nil
			}

			value, err := models.ParseValue(key, raw)
			if err != nil {
				return err
			}

			var next models.Settings
			if group, ok := strings.CutPrefix(key, models.KeyAdjustmentVisibility+"."); ok {
				next = ctx.Settings.WithGroupVisible(group, value.(bool))
			} else {
				next = ctx.Settings.With(key, value)
			}

			if err := ctx.SaveSettings(next); err != nil {
				return err
			}

			cli.PrintSuccess("%s = %s", key, formatSettingValue(value))
			if models.RestartRequired(key) {
				cli.PrintWarning("This change takes effect after the studio restarts")
			}
			return nil
		},
	}
}

func newConfigListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every known setting with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(configOutputFormat); err != nil {
				return err
			}

			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			settings := ctx.Settings

			values := map[string]any{}
			for _, key := range models.KnownKeys() {
				v, _ := resolveSetting(settings, key)
				values[key] = v
			}
			values[models.KeyTaggingShortcuts] = models.NormalizeShortcuts(settings.TaggingShortcuts())
			values[models.KeyAdjustmentVisibility] = settings.AdjustmentVisibility()

			if cli.OutputFormat(configOutputFormat) != cli.FormatText {
				return cli.OutputResults(os.Stdout, configOutputFormat, values)
			}

			table := cli.NewTableFormatter(os.Stdout)
			table.Header("KEY", "VALUE", "NOTES")
			for _, key := range models.KnownKeys() {
				note := ""
				if models.RestartRequired(key) {
					note = "restart-gated"
				}
				v, _ := resolveSetting(settings, key)
				table.Row(key, formatSettingValue(v), note)
			}
			table.Row(models.KeyTaggingShortcuts,
				strings.Join(models.NormalizeShortcuts(settings.TaggingShortcuts()), ", "), "")
			for _, group := range models.AdjustmentGroups {
				table.Row(models.KeyAdjustmentVisibility+"."+group,
					fmt.Sprintf("%v", settings.GroupVisible(group)), "")
			}
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configOutputFormat, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := files.SettingsPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

// resolveSetting reads one key through its typed resolver, so absent keys
// come back as their documented defaults.
func resolveSetting(s models.Settings, key string) (any, error) {
	if group, ok := strings.CutPrefix(key, models.KeyAdjustmentVisibility+"."); ok {
		if !models.KnownGroup(group) {
			return nil, fmt.Errorf("unknown adjustment group: %s", group)
		}
		return s.GroupVisible(group), nil
	}

	switch key {
	case models.KeyTheme:
		return s.Theme(), nil
	case models.KeyLanguage:
		return s.Language(), nil
	case models.KeyCheckUpdates:
		return s.CheckUpdates(), nil
	case models.KeyLastRootPath:
		return s.LastRootPath(), nil
	case models.KeyTaggingShortcuts:
		return models.NormalizeShortcuts(s.TaggingShortcuts()), nil
	case models.KeyAdjustmentVisibility:
		return s.AdjustmentVisibility(), nil
	case models.KeyProcessingEngine:
		return s.ProcessingEngine(), nil
	case models.KeyPreferDiscreteGPU:
		return s.PreferDiscreteGPU(), nil
	case models.KeyAIProvider:
		return s.AIProvider(), nil
	case models.KeyConnectorAddress:
		return s.ConnectorAddress(), nil
	case models.KeyAPIKey:
		return s.APIKey(), nil
	case models.KeyAIModel:
		return s.AIModel(), nil
	case models.KeyAutoTag:
		return s.AutoTag(), nil
	default:
		return nil, fmt.Errorf("unknown settings key: %s", key)
	}
}

func formatSettingValue(v any) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ", ")
	case string:
		if t == "" {
			return `""`
		}
		return t
	default:
		return fmt.Sprintf("%v", v)
	}
}
