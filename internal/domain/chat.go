package domain

import (
	"context"
	"io"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

// ContextRetriever fetches ranked context documents for a query from the
// vector-search backend. Failures are reported as *RetrievalError so callers
// can decide between hard and soft failure per kind.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) ([]entity.ContextDocument, error)
}

// StreamGenerator opens a streaming generation call upstream. The returned
// reader yields the raw upstream byte stream (concatenated, partial JSON
// objects); Close releases the underlying connection and is safe to call
// exactly once on every path.
type StreamGenerator interface {
	Open(ctx context.Context, req *entity.GenerationRequest) (io.ReadCloser, error)
}

// ChatUsecase prepares one chat turn: retrieves context, assembles the
// augmented prompt, and opens the upstream stream. The caller owns relaying
// the returned stream to the client and closing it.
type ChatUsecase interface {
	StreamChat(ctx context.Context, messages []entity.ChatMessage) (io.ReadCloser, error)
}
