package usecase

import (
	"strings"
	"testing"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

func TestBuildHistory(t *testing.T) {
	tests := []struct {
		name     string
		messages []entity.ChatMessage
		want     []entity.Content
	}{
		{
			name:     "single message has no history",
			messages: []entity.ChatMessage{{Role: "user", Text: "hi"}},
			want:     nil,
		},
		{
			name: "ai and assistant roles map to model",
			messages: []entity.ChatMessage{
				{Role: "user", Text: "first"},
				{Role: "ai", Text: "second"},
				{Role: "assistant", Text: "third"},
				{Role: "user", Text: "current"},
			},
			want: []entity.Content{
				{Role: "user", Parts: []entity.Part{{Text: "first"}}},
				{Role: "model", Parts: []entity.Part{{Text: "second"}}},
				{Role: "model", Parts: []entity.Part{{Text: "third"}}},
			},
		},
		{
			name: "unknown roles default to user",
			messages: []entity.ChatMessage{
				{Role: "system", Text: "something"},
				{Role: "", Text: "another"},
				{Role: "user", Text: "current"},
			},
			want: []entity.Content{
				{Role: "user", Parts: []entity.Part{{Text: "something"}}},
				{Role: "user", Parts: []entity.Part{{Text: "another"}}},
			},
		},
		{
			name: "empty turns are skipped",
			messages: []entity.ChatMessage{
				{Role: "user", Text: "kept"},
				{Role: "ai", Text: ""},
				{Role: "user", Text: "current"},
			},
			want: []entity.Content{
				{Role: "user", Parts: []entity.Part{{Text: "kept"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildHistory(tt.messages)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].Role != tt.want[i].Role {
					t.Errorf("entry %d role = %q, want %q", i, got[i].Role, tt.want[i].Role)
				}
				if len(got[i].Parts) != 1 || got[i].Parts[0].Text != tt.want[i].Parts[0].Text {
					t.Errorf("entry %d parts = %v, want %v", i, got[i].Parts, tt.want[i].Parts)
				}
			}
		})
	}
}

func TestAssemblePrompt(t *testing.T) {
	history := []entity.Content{
		{Role: "user", Parts: []entity.Part{{Text: "earlier question"}}},
		{Role: "model", Parts: []entity.Part{{Text: "earlier answer"}}},
	}

	req := AssemblePrompt("CONTEXT GOES HERE", history, "what about season two?")

	if len(req.Contents) != 4 {
		t.Fatalf("got %d contents, want 4", len(req.Contents))
	}

	system := req.Contents[0]
	if system.Role != "user" {
		t.Errorf("system turn role = %q, want user", system.Role)
	}
	prompt := system.Parts[0].Text
	if !strings.Contains(prompt, "IMPORTANT INSTRUCTIONS:") {
		t.Error("instruction preamble missing")
	}
	rule := strings.Repeat("=", 80)
	if !strings.Contains(prompt, "DATABASE CONTEXT:\n"+rule+"\nCONTEXT GOES HERE\n"+rule) {
		t.Error("context not embedded between the rules")
	}

	if req.Contents[1].Parts[0].Text != "earlier question" || req.Contents[2].Parts[0].Text != "earlier answer" {
		t.Error("history not carried in order")
	}

	last := req.Contents[3]
	if last.Role != "user" || last.Parts[0].Text != "what about season two?" {
		t.Errorf("live message = %+v", last)
	}
}

func TestAssemblePromptDefaults(t *testing.T) {
	req := AssemblePrompt("ctx", nil, "q")

	gc := req.GenerationConfig
	if gc.Temperature != 0.7 || gc.TopK != 40 || gc.TopP != 0.95 || gc.MaxOutputTokens != 2048 {
		t.Errorf("generation config = %+v", gc)
	}

	if len(req.SafetySettings) != 4 {
		t.Fatalf("got %d safety settings, want 4", len(req.SafetySettings))
	}
	for _, s := range req.SafetySettings {
		if s.Threshold != "BLOCK_MEDIUM_AND_ABOVE" {
			t.Errorf("safety %s threshold = %q", s.Category, s.Threshold)
		}
	}
}
