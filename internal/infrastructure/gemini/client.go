// Package gemini implements the upstream LLM streaming generator client.
// The upstream responds with a raw byte stream of concatenated, partial JSON
// objects; this package only opens the stream, framing belongs to the relay.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/config"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

// Client opens streaming generation calls against the generator endpoint.
type Client struct {
	cli    *client.Client
	cfg    config.GeneratorConfig
	logger *slog.Logger
}

// NewClient creates the generator client. The netpoll transport does not
// support response body streaming, so the standard dialer is used.
func NewClient(cfg config.GeneratorConfig, logger *slog.Logger) (domain.StreamGenerator, error) {
	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithClientReadTimeout(cfg.Timeout),
		client.WithResponseBodyStream(true),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator client: %w", err)
	}

	return &Client{
		cli:    c,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Open sends one generation request and returns the raw response stream.
// The caller must Close the returned stream on every path; Close releases
// the underlying connection exactly once.
func (c *Client) Open(ctx context.Context, genReq *entity.GenerationRequest) (io.ReadCloser, error) {
	body, err := sonic.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	release := func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.endpoint())
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(body)

	if err := c.cli.Do(ctx, req, resp); err != nil {
		release()
		return nil, fmt.Errorf("generator request failed: %w", err)
	}

	if resp.StatusCode() != consts.StatusOK {
		status := resp.StatusCode()
		detail := string(resp.Body())
		release()
		return nil, fmt.Errorf("generator returned status %d: %s", status, detail)
	}

	stream := resp.BodyStream()
	if stream == nil {
		release()
		return nil, errors.New("generator response has no body stream")
	}

	c.logger.Debug("generator stream opened", "model", c.cfg.Model)

	return &streamBody{reader: stream, release: release}, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?key=%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"),
		c.cfg.Model,
		url.QueryEscape(c.cfg.APIKey),
	)
}

// streamBody adapts a Hertz body stream to io.ReadCloser. Close releases the
// pooled request/response pair; calling it more than once is a no-op.
type streamBody struct {
	reader  io.Reader
	once    sync.Once
	release func()
}

func (b *streamBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *streamBody) Close() error {
	b.once.Do(b.release)
	return nil
}
