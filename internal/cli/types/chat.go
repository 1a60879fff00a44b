// Package types defines the wire shapes the CLI exchanges with the server.
package types

// ChatMessage is one conversation turn.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the chat endpoint request body.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// StreamChunk is one decoded SSE frame. Exactly one of Text or Error is set.
type StreamChunk struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}
