package usecase

import (
	"strings"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

var defaultGenerationConfig = entity.GenerationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 2048,
}

var defaultSafetySettings = []entity.SafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// BuildHistory converts prior chat turns to generator content entries. The
// final message is excluded; it is appended separately as the live question.
// Empty-text turns are skipped, "ai" and "assistant" roles map to "model",
// anything else maps to "user".
func BuildHistory(messages []entity.ChatMessage) []entity.Content {
	if len(messages) <= 1 {
		return nil
	}

	var history []entity.Content
	for _, msg := range messages[:len(messages)-1] {
		if msg.Text == "" {
			continue
		}

		role := roleUser
		if msg.Role == "ai" || msg.Role == "assistant" {
			role = roleModel
		}

		history = append(history, entity.Content{
			Role:  role,
			Parts: []entity.Part{{Text: msg.Text}},
		})
	}

	return history
}

// AssemblePrompt builds the full generation request: instruction preamble
// with the retrieved context embedded, prior turns, then the live user
// message. Defaults for sampling and safety are fixed.
func AssemblePrompt(contextText string, history []entity.Content, userMessage string) *entity.GenerationRequest {
	rule := strings.Repeat("=", 80)

	systemPrompt := "You are a helpful AI assistant that specializes in answering questions about TV shows. " +
		"You have access to a comprehensive TV show database through vector search. " +
		"Below is the most relevant information from the database based on the user's query.\n\n" +
		"IMPORTANT INSTRUCTIONS:\n" +
		"- Use the context data below as your PRIMARY source of information\n" +
		"- The context contains actual TV show data from the database with similarity scores\n" +
		"- Higher similarity scores (closer to 1.0) indicate more relevant matches\n" +
		"- If you find relevant information in the context, use it to provide detailed, accurate answers\n" +
		"- If the context doesn't contain sufficient information for the query, you may supplement with general knowledge but clearly indicate what comes from the database vs general knowledge\n" +
		"- When listing shows or providing specific details, prioritize information from the database context\n\n" +
		"DATABASE CONTEXT:\n" +
		rule + "\n" +
		contextText + "\n" +
		rule + "\n\n" +
		"Based on the above database context and your knowledge, please provide a helpful and informative response to the user's question.\n" +
		"Do not refer the database or mention how you retrieved the information, just answer the user's question."

	contents := make([]entity.Content, 0, len(history)+2)
	contents = append(contents, entity.Content{
		Role:  roleUser,
		Parts: []entity.Part{{Text: systemPrompt}},
	})
	contents = append(contents, history...)
	contents = append(contents, entity.Content{
		Role:  roleUser,
		Parts: []entity.Part{{Text: userMessage}},
	})

	return &entity.GenerationRequest{
		Contents:         contents,
		GenerationConfig: defaultGenerationConfig,
		SafetySettings:   defaultSafetySettings,
	}
}
