// Package usecase implements the chat business logic: input validation,
// context retrieval, prompt assembly, and opening the generation stream.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

type chatUsecase struct {
	retriever domain.ContextRetriever
	generator domain.StreamGenerator
	apiKeySet bool
	logger    *slog.Logger
}

// NewChatUsecase creates the chat usecase. apiKeySet reflects whether the
// generator credential is present; when false every request fails fast with
// a configuration error instead of reaching the upstream.
func NewChatUsecase(retriever domain.ContextRetriever, generator domain.StreamGenerator, apiKeySet bool, logger *slog.Logger) domain.ChatUsecase {
	return &chatUsecase{
		retriever: retriever,
		generator: generator,
		apiKeySet: apiKeySet,
		logger:    logger,
	}
}

// StreamChat validates the conversation, retrieves and formats context for
// the latest message, assembles the prompt, and opens the upstream stream.
// The caller owns the returned stream and must close it.
func (uc *chatUsecase) StreamChat(ctx context.Context, messages []entity.ChatMessage) (io.ReadCloser, error) {
	if len(messages) == 0 {
		return nil, domain.NewInvalidInput("No messages provided")
	}

	userMessage := messages[len(messages)-1].Text
	if userMessage == "" {
		return nil, domain.NewInvalidInput("Empty message")
	}

	if !uc.apiKeySet {
		return nil, domain.NewNotConfigured("API key not configured")
	}

	// Retrieval failure degrades the prompt, it never fails the request.
	// The model is told why the context is missing.
	contextText := uc.retrieveContext(ctx, userMessage)

	history := BuildHistory(messages)
	genReq := AssemblePrompt(contextText, history, userMessage)

	uc.logger.Info("opening generation stream",
		"messages", len(messages),
		"history", len(history),
	)

	stream, err := uc.generator.Open(ctx, genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to open generation stream: %w", err)
	}

	return stream, nil
}

func (uc *chatUsecase) retrieveContext(ctx context.Context, query string) string {
	docs, err := uc.retriever.Retrieve(ctx, query)
	if err != nil {
		uc.logger.Warn("context retrieval failed",
			"kind", domain.RetrievalKindOf(err),
			"error", err,
		)
		return "Database context could not be retrieved: " + err.Error()
	}
	return FormatContext(docs)
}
