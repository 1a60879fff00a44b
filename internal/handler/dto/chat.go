// Package dto defines the HTTP request shapes for the chat API.
package dto

// ChatMessage is one conversation turn as sent by the web client.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the body of POST /ai-chatbot/v1/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}
