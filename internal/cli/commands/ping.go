package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/client"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/ui"
)

// pingCmd checks server reachability
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "check server reachability",
	RunE:  runPing,
}

func init() {
	pingCmd.SilenceUsage = true
}

func runPing(cmd *cobra.Command, args []string) error {
	apiClient, err := client.NewAPIClient(serverAddr)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	if err := apiClient.Ping(ctx); err != nil {
		ui.PrintError("server unreachable: %v", err)
		return fmt.Errorf("ping failed")
	}

	ui.PrintSuccess("server is up at %s", serverAddr)
	return nil
}
