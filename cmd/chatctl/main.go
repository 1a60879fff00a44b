package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/commands"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError("%s", errMsg)
			fmt.Println("\nRun 'chatctl --help' for usage.")
		}
		os.Exit(1)
	}
}
