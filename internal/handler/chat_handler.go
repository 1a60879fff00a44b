// Package handler implements the HTTP handlers. The chat handler speaks SSE:
// every outcome, including failures, is delivered as event frames on a 200
// response so the browser client has a single protocol to parse.
package handler

import (
	"context"
	"log/slog"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/protocol/sse"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/handler/dto"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/relay"
)

// ChatHandler serves the streaming chat endpoint.
type ChatHandler struct {
	usecase domain.ChatUsecase
	logger  *slog.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(usecase domain.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// StreamChat handles POST /ai-chatbot/v1/chat. The response is always an SSE
// stream terminated by a [DONE] frame; validation and upstream failures are
// reported as {"error": ...} frames rather than HTTP error statuses.
func (h *ChatHandler) StreamChat(ctx context.Context, c *app.RequestContext) {
	var req dto.ChatRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("failed to bind chat request", "error", err)
		req.Messages = nil
	}

	messages := make([]entity.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, entity.ChatMessage{Role: m.Role, Text: m.Text})
	}

	// Status and headers must be set before the first write.
	c.SetStatusCode(consts.StatusOK)
	c.Response.Header.Set("Cache-Control", "no-cache")
	c.Response.Header.Set("Connection", "keep-alive")
	c.Response.Header.Set("X-Accel-Buffering", "no")

	writer := sse.NewWriter(c)
	defer writer.Close()
	sink := &sseSink{writer: writer}

	h.logger.Info("chat request received", "messages", len(messages))

	upstream, err := h.usecase.StreamChat(ctx, messages)
	if err != nil {
		h.writeFailure(sink, err)
		return
	}

	session := relay.NewSession(h.logger)
	session.Run(upstream, sink)
}

// writeFailure emits one error frame followed by the terminal sentinel.
func (h *ChatHandler) writeFailure(sink relay.FrameSink, err error) {
	var message string
	switch {
	case domain.IsInvalidInput(err), domain.IsNotConfigured(err):
		message = err.Error()
	default:
		h.logger.Error("failed to open chat stream", "error", err)
		message = "Connection error: " + err.Error()
	}

	payload, merr := sonic.Marshal(relay.ErrorEvent{Error: message})
	if merr == nil {
		if werr := sink.WriteFrame(payload); werr != nil {
			h.logger.Debug("failed to write error frame", "error", werr)
		}
	}
	if werr := sink.WriteFrame([]byte(relay.DoneMarker)); werr != nil {
		h.logger.Debug("failed to write done marker", "error", werr)
	}
}

// sseSink adapts the Hertz SSE writer to the relay's frame interface.
// WriteEvent adds the "data: " prefix and blank line and flushes per frame.
type sseSink struct {
	writer *sse.Writer
}

func (s *sseSink) WriteFrame(data []byte) error {
	return s.writer.WriteEvent("", "", data)
}
