package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fstophq/fstop-cli/cmd/commands"
	"github.com/fstophq/fstop-cli/internal/cli"
	"github.com/fstophq/fstop-cli/internal/logging"
	"github.com/fstophq/fstop-cli/pkg/backend"
	"github.com/fstophq/fstop-cli/pkg/catalog"
	"github.com/fstophq/fstop-cli/pkg/files"
	"github.com/fstophq/fstop-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagQuiet   bool
	flagNoColor bool
	flagYes     bool
	flagRoot    string
)

var rootCmd = &cobra.Command{
	Use:   "fstop",
	Short: "Terminal settings console for the F/Stop photo studio",
	Long: `fstop manages the settings file shared with the F/Stop desktop studio,
runs library maintenance against its catalog and edit sidecars, tests the
AI connector, and shows the studio's keyboard-shortcut reference.

Run without arguments to open the interactive console.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(flagQuiet, flagNoColor, flagYes)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fstop",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fstop version %s\n", version)
	},
}

func runTUI() error {
	if _, err := files.EnsureAppHome(); err != nil {
		return err
	}

	logPath, err := files.LogPath()
	if err != nil {
		return err
	}
	logger, err := logging.NewFileLogger(logPath, os.Getenv("FSTOP_DEBUG") != "")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logging.Sync(logger)

	catalogPath, err := files.CatalogPath()
	if err != nil {
		return err
	}
	store, err := catalog.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	svc := backend.New(store, logPath, logger)
	app := tui.NewApp(svc, tui.FileSettingsIO{}, logger, flagRoot)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.Flags().StringVar(&flagRoot, "root", "", "Library root for maintenance actions")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewMaintenanceCommand())
	rootCmd.AddCommand(commands.NewLibraryCommand())
	rootCmd.AddCommand(commands.NewAICommand())
	rootCmd.AddCommand(commands.NewShortcutsCommand())
	rootCmd.AddCommand(commands.NewLogsCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
