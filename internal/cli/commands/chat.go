package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/client"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/types"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/ui"
)

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "start an interactive chat session",
	Long: `Start an interactive chat session with the TV show chatbot.

Answers stream in token by token. The conversation history is kept for
the duration of the session so follow-up questions have context.`,
	Example: `  # Start interactive chat
  $ chatctl chat

  # Session controls:
  • Type a message and press Enter to send
  • Type /exit or press Ctrl+D to quit`,
	RunE: runChat,
}

func init() {
	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Println("\nRun 'chatctl chat' to start an interactive session.")
		return fmt.Errorf("invalid arguments")
	}

	apiClient, err := client.NewAPIClient(serverAddr)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintChatWelcomeBanner()
	ui.PrintInfo("connected to %s, type /exit to quit", serverAddr)
	fmt.Println()

	var history []types.ChatMessage
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(ui.Styles.Bold.Render("you> ") + " ")

		if !scanner.Scan() {
			fmt.Println()
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" || input == "/quit" {
			break
		}

		history = append(history, types.ChatMessage{Role: "user", Text: input})

		answer, err := streamAnswer(cmd.Context(), apiClient, history)
		if err != nil {
			ui.PrintError("%v", err)
			// Drop the failed turn so a retry does not double it.
			history = history[:len(history)-1]
			continue
		}

		history = append(history, types.ChatMessage{Role: "ai", Text: answer})
	}

	ui.PrintInfo("chat session ended")
	return nil
}

// streamAnswer sends the conversation and prints the reply as it streams,
// returning the full answer text for the history.
func streamAnswer(ctx context.Context, apiClient *client.APIClient, history []types.ChatMessage) (string, error) {
	chunkCh, errCh, err := apiClient.ChatStreaming(ctx, history)
	if err != nil {
		return "", err
	}

	fmt.Print(ui.Styles.Bold.Render("bot> ") + " ")

	var answer strings.Builder
	for chunk := range chunkCh {
		if chunk.Error != "" {
			fmt.Println()
			return "", fmt.Errorf("%s", chunk.Error)
		}
		ui.PrintAssistantChunk(chunk.Text)
		answer.WriteString(chunk.Text)
	}
	fmt.Println()
	fmt.Println()

	if err := <-errCh; err != nil {
		return "", err
	}

	return answer.String(), nil
}
