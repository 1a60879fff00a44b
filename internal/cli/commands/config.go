package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	cliconfig "github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/config"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/ui"
)

// configCmd manages the saved CLI configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "manage saved CLI settings",
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "save the default server address",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetServer,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "show the saved configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.SilenceUsage = true
	configCmd.AddCommand(configSetServerCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigSetServer(cmd *cobra.Command, args []string) error {
	cfg, err := cliconfig.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	cfg.Server = args[0]
	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	ui.PrintSuccess("default server set to %s", cfg.Server)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := cliconfig.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	path, _ := cliconfig.GetConfigPath()
	ui.PrintBold("Configuration (%s)", path)
	if cfg.Server == "" {
		fmt.Println("  server: (not set, using http://localhost:8080)")
	} else {
		fmt.Printf("  server: %s\n", cfg.Server)
	}
	return nil
}
