// Package commands defines the chatctl command tree.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	cliconfig "github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/config"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/ui"
)

const version = "0.1.0"

var serverAddr string

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "chatctl",
	Short:   "TV show chatbot CLI",
	Version: version,
	Long: `A command-line client for the TV show chatbot API. Streams answers in
real time and keeps the conversation history for follow-up questions.`,
	Example: `  # Start an interactive chat against a local server
  $ chatctl chat

  # Point at a remote server
  $ chatctl chat -s http://chatbot.example.com:8080

  # Check server reachability
  $ chatctl ping`,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// A saved server address takes over as the flag default.
	defaultServer := "http://localhost:8080"
	if cfg, err := cliconfig.Load(); err == nil && cfg.Server != "" {
		defaultServer = cfg.Server
	}
	rootCmd.PersistentFlags().StringVarP(&serverAddr, "server", "s", defaultServer, "chatbot server address")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// formatVersion formats the version output
func formatVersion() string {
	return fmt.Sprintf("chatctl version %s\n", version)
}
