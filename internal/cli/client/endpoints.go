package client

// API endpoint paths.
const (
	endpointChat = "/ai-chatbot/v1/chat"
	endpointPing = "/ping"
)
