package usecase

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/bytedance/sonic"
	"github.com/microcosm-cc/bluemonday"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

// Prompt-size bounds. These are fixed policy, not runtime configuration:
// they cap the injected context regardless of how many documents the
// backend returns.
const (
	maxContextDocs = 5
	maxDocChars    = 1500
	minDocChars    = 20
)

const (
	noDocsText    = "No specific TV show information found in the database."
	noUsableText  = "No TV show information could be extracted from the database results."
	docSeparator  = "\n\n------------------------------------------------------------\n\n"
	summaryFormat = "Retrieved %d relevant documents out of %d total results from the TV show database:\n\n"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	stripPolicy  = bluemonday.StrictPolicy()
)

// FormatContext renders retrieved documents into one bounded text block for
// prompt injection. Documents are processed in backend order (not re-ranked
// by score); at most maxContextDocs survive. Never fails: with no usable
// input it returns a sentinel string.
func FormatContext(docs []entity.ContextDocument) string {
	if len(docs) == 0 {
		return noDocsText
	}

	var parts []string
	for i, doc := range docs {
		if doc.Data == nil {
			continue
		}

		content := flattenDocData(doc.Data)
		content = stripPolicy.Sanitize(content)
		content = strings.TrimSpace(whitespaceRE.ReplaceAllString(content, " "))

		// Very short fragments are noise, not context.
		if len([]rune(content)) < minDocChars {
			continue
		}

		if runes := []rune(content); len(runes) > maxDocChars {
			content = string(runes[:maxDocChars]) + "..."
		}

		parts = append(parts, fmt.Sprintf("Document %d (Similarity Score: %s):\n%s",
			i+1, formatScore(doc.Score), content))

		if len(parts) >= maxContextDocs {
			break
		}
	}

	if len(parts) == 0 {
		return noUsableText
	}

	summary := fmt.Sprintf(summaryFormat, len(parts), len(docs))
	return summary + strings.Join(parts, docSeparator)
}

// flattenDocData turns an arbitrary document payload into readable text.
// Mappings become "Key: value" lines; nested values are pretty-printed JSON.
func flattenDocData(data interface{}) string {
	switch v := data.(type) {
	case string:
		return v
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, humanizeKey(k)+": "+stringifyValue(v[k]))
		}
		return strings.Join(lines, "\n")
	default:
		return stringifyValue(v)
	}
}

func stringifyValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64, int, int64, bool:
		return fmt.Sprintf("%v", val)
	default:
		encoded, err := sonic.MarshalIndent(val, "", "    ")
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}

// humanizeKey converts snake_case field names to a readable label, e.g.
// "post_title" -> "Post title".
func humanizeKey(key string) string {
	label := strings.ReplaceAll(key, "_", " ")
	runes := []rune(label)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// formatScore rounds to three decimals without trailing zeros, so 0.9 stays
// "0.9" and 0.89123 becomes "0.891".
func formatScore(score float64) string {
	return strconv.FormatFloat(math.Round(score*1000)/1000, 'f', -1, 64)
}
