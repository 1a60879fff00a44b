package entity

// ChatMessage is one turn of the client-supplied conversation history.
// The last message in a request is the active turn.
type ChatMessage struct {
	Role string // "user" or "assistant" ("ai" accepted as an alias)
	Text string
}

// ContextDocument is a ranked snippet returned by the vector-search backend.
// Data may be a plain string, a key/value mapping, or a nested structure.
type ContextDocument struct {
	ID    string      `json:"id"`
	Data  interface{} `json:"data"`
	Score float64     `json:"score"`
}

// Part is a single text fragment inside a generation turn.
type Part struct {
	Text string `json:"text"`
}

// Content is one role-attributed turn in the upstream generator format.
// Roles are "user" and "model".
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// GenerationConfig holds the sampling parameters sent with every request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// SafetySetting is one content-safety policy entry.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// GenerationRequest is the complete payload for one upstream generation
// call. It is built once per chat request and never mutated after send.
type GenerationRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
	SafetySettings   []SafetySetting  `json:"safetySettings"`
}
