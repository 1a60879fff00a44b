package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

func longText(n int) string {
	return strings.Repeat("a", n)
}

func TestFormatContextSentinels(t *testing.T) {
	if got := FormatContext(nil); got != "No specific TV show information found in the database." {
		t.Errorf("empty input = %q", got)
	}

	// Documents exist but none are usable.
	docs := []entity.ContextDocument{
		{ID: "1", Data: nil, Score: 0.9},
		{ID: "2", Data: "too short", Score: 0.8},
	}
	if got := FormatContext(docs); got != "No TV show information could be extracted from the database results." {
		t.Errorf("unusable input = %q", got)
	}
}

func TestFormatContextSummaryAndSeparator(t *testing.T) {
	docs := []entity.ContextDocument{
		{ID: "1", Data: "A drama about a chemistry teacher turned kingpin.", Score: 0.95},
		{ID: "2", Data: "A mockumentary set in a paper company office.", Score: 0.81},
	}

	got := FormatContext(docs)

	if !strings.HasPrefix(got, "Retrieved 2 relevant documents out of 2 total results from the TV show database:\n\n") {
		t.Errorf("missing summary header:\n%s", got)
	}
	if !strings.Contains(got, "Document 1 (Similarity Score: 0.95):") {
		t.Errorf("missing document 1 header:\n%s", got)
	}
	if !strings.Contains(got, "Document 2 (Similarity Score: 0.81):") {
		t.Errorf("missing document 2 header:\n%s", got)
	}
	if !strings.Contains(got, strings.Repeat("-", 60)) {
		t.Errorf("missing separator rule:\n%s", got)
	}
}

func TestFormatContextCapsAtFiveDocuments(t *testing.T) {
	var docs []entity.ContextDocument
	for i := 0; i < 10; i++ {
		docs = append(docs, entity.ContextDocument{
			ID:    fmt.Sprintf("%d", i),
			Data:  fmt.Sprintf("Show number %d with a reasonably long synopsis.", i),
			Score: 0.9,
		})
	}

	got := FormatContext(docs)

	if !strings.Contains(got, "Retrieved 5 relevant documents out of 10 total results") {
		t.Errorf("summary does not reflect the cap:\n%s", got)
	}
	if strings.Contains(got, "Document 6") {
		t.Error("more than five documents were included")
	}
}

func TestFormatContextNumbersBySourcePosition(t *testing.T) {
	// The second document is skipped; numbering must keep the gap.
	docs := []entity.ContextDocument{
		{ID: "1", Data: "First usable document about a space western.", Score: 0.9},
		{ID: "2", Data: "short", Score: 0.85},
		{ID: "3", Data: "Third document about a political thriller series.", Score: 0.8},
	}

	got := FormatContext(docs)

	if !strings.Contains(got, "Document 1 (") {
		t.Errorf("missing document 1:\n%s", got)
	}
	if strings.Contains(got, "Document 2 (") {
		t.Errorf("skipped document still numbered:\n%s", got)
	}
	if !strings.Contains(got, "Document 3 (") {
		t.Errorf("source position numbering lost:\n%s", got)
	}
	if !strings.Contains(got, "Retrieved 2 relevant documents out of 3 total results") {
		t.Errorf("summary counts wrong:\n%s", got)
	}
}

func TestFormatContextTruncatesLongContent(t *testing.T) {
	docs := []entity.ContextDocument{
		{ID: "1", Data: longText(2000), Score: 0.7},
	}

	got := FormatContext(docs)

	if !strings.Contains(got, longText(1500)+"...") {
		t.Error("content not truncated with ellipsis at the cap")
	}
	if strings.Contains(got, longText(1501)) {
		t.Error("content exceeds the cap")
	}
}

func TestFormatContextStripsMarkupAndWhitespace(t *testing.T) {
	docs := []entity.ContextDocument{
		{ID: "1", Data: "<p>A  show   about\n\n<b>nothing</b> in particular.</p>", Score: 0.88},
	}

	got := FormatContext(docs)

	if strings.Contains(got, "<p>") || strings.Contains(got, "<b>") {
		t.Errorf("markup survived:\n%s", got)
	}
	if !strings.Contains(got, "A show about nothing in particular.") {
		t.Errorf("whitespace not collapsed:\n%s", got)
	}
}

func TestFormatContextFlattensMappings(t *testing.T) {
	docs := []entity.ContextDocument{
		{
			ID: "1",
			Data: map[string]interface{}{
				"post_title":   "The Wire",
				"post_content": "A Baltimore crime drama told season by season.",
			},
			Score: 0.92,
		},
	}

	got := FormatContext(docs)

	if !strings.Contains(got, "Post title: The Wire") {
		t.Errorf("key not humanized:\n%s", got)
	}
	if !strings.Contains(got, "Post content: A Baltimore crime drama") {
		t.Errorf("mapping value missing:\n%s", got)
	}
	// Keys render in sorted order so output is deterministic.
	if strings.Index(got, "Post content:") > strings.Index(got, "Post title:") {
		t.Errorf("keys not sorted:\n%s", got)
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.9, "0.9"},
		{0.891234, "0.891"},
		{0.8995, "0.9"},
		{1, "1"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := formatScore(tt.score); got != tt.want {
			t.Errorf("formatScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
