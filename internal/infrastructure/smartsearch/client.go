// Package smartsearch implements context retrieval against the Smart Search
// vector database, a GraphQL similarity-search endpoint.
package smartsearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/config"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

// searchField is the document field similarity search runs against.
const searchField = "post_content"

// contextQuery requests a similarity search keyed by the literal user message.
const contextQuery = `query GetContext($message: String!, $field: String!) {
	similarity(
		input: {
			nearest: {
				text: $message,
				field: $field
			}
		}) {
		total
		docs {
			id
			data
			score
		}
	}
}`

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		Similarity struct {
			Total int                      `json:"total"`
			Docs  []entity.ContextDocument `json:"docs"`
		} `json:"similarity"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client is the Smart Search retriever.
type Client struct {
	cli    *client.Client
	cfg    config.SmartSearchConfig
	logger *slog.Logger
}

// NewClient creates a Smart Search retriever. Credentials may be absent; in
// that case every Retrieve call fails with a not-configured retrieval error.
func NewClient(cfg config.SmartSearchConfig, logger *slog.Logger) (domain.ContextRetriever, error) {
	c, err := client.NewClient(
		client.WithDialTimeout(10 * time.Second),
		client.WithMaxIdleConnDuration(60 * time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smart search client: %w", err)
	}

	return &Client{
		cli:    c,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Retrieve runs one similarity query and returns ranked documents in backend
// order. All failure modes map to a typed *domain.RetrievalError.
func (c *Client) Retrieve(ctx context.Context, query string) ([]entity.ContextDocument, error) {
	if c.cfg.URL == "" || c.cfg.AccessToken == "" {
		return nil, domain.NewRetrievalError(domain.RetrievalNotConfigured,
			"Smart Search URL or access token not configured", domain.ErrNotConfigured)
	}

	body, err := sonic.Marshal(graphqlRequest{
		Query: contextQuery,
		Variables: map[string]string{
			"message": query,
			"field":   searchField,
		},
	})
	if err != nil {
		return nil, domain.NewRetrievalError(domain.RetrievalDecode,
			"failed to encode context query", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.cfg.URL)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.SetBody(body)

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.cli.Do(reqCtx, req, resp); err != nil {
		return nil, domain.NewRetrievalError(domain.RetrievalTransport,
			"Failed to fetch context: "+err.Error(), err)
	}

	if resp.StatusCode() != consts.StatusOK {
		re := domain.NewRetrievalError(domain.RetrievalUpstreamStatus,
			fmt.Sprintf("Vector DB API returned status %d: %s", resp.StatusCode(), resp.Body()), nil)
		re.Status = resp.StatusCode()
		return nil, re
	}

	var parsed graphqlResponse
	if err := sonic.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, domain.NewRetrievalError(domain.RetrievalDecode,
			"Invalid JSON response from Smart Search API: "+err.Error(), err)
	}

	if len(parsed.Errors) > 0 {
		messages := make([]string, 0, len(parsed.Errors))
		for _, ge := range parsed.Errors {
			msg := ge.Message
			if msg == "" {
				msg = "Unknown GraphQL error"
			}
			messages = append(messages, msg)
		}
		return nil, domain.NewRetrievalError(domain.RetrievalBackend,
			"GraphQL errors: "+strings.Join(messages, ", "), nil)
	}

	c.logger.Debug("context retrieved",
		"total", parsed.Data.Similarity.Total,
		"docs", len(parsed.Data.Similarity.Docs),
	)

	return parsed.Data.Similarity.Docs, nil
}
