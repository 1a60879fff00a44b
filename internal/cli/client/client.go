// Package client implements the HTTP client the CLI uses to talk to the chat
// server, including real-time SSE stream parsing.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/cli/types"
)

// APIClient wraps a Hertz client for talking to the chat server.
type APIClient struct {
	client *client.Client
	server string
}

// NewAPIClient creates a chat API client. The standard dialer is required:
// netpoll does not support streaming response bodies.
func NewAPIClient(server string) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithResponseBodyStream(true),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
	}, nil
}

// normalizeServerURL ensures the server URL has a scheme and no path.
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// Ping checks server reachability.
func (c *APIClient) Ping(ctx context.Context) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + endpointPing)

	if err := c.client.Do(ctx, req, resp); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("ping failed with HTTP status: %d", resp.StatusCode())
	}
	return nil
}

// ChatStreaming sends the conversation and returns a channel of decoded
// frames. The channel closes on the [DONE] marker or stream end; transport
// failures arrive on the error channel.
func (c *APIClient) ChatStreaming(ctx context.Context, messages []types.ChatMessage) (<-chan types.StreamChunk, <-chan error, error) {
	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("chat request requires at least one message")
	}

	// Copy so the caller may keep appending to its history slice.
	safeMessages := make([]types.ChatMessage, len(messages))
	copy(safeMessages, messages)

	bodyBytes, err := sonic.Marshal(types.ChatRequest{Messages: safeMessages})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointChat)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("Accept", "text/event-stream")
	req.SetBody(bodyBytes)

	if err := c.client.Do(ctx, req, resp); err != nil {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		statusCode := resp.StatusCode()
		body := resp.Body()
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
		return nil, nil, fmt.Errorf("chat failed with HTTP status: %d, body: %s", statusCode, string(body))
	}

	chunkCh := make(chan types.StreamChunk, 10)
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			close(chunkCh)
			close(errCh)
			protocol.ReleaseRequest(req)
			protocol.ReleaseResponse(resp)
		}()

		bodyStream := resp.BodyStream()
		if bodyStream == nil {
			errCh <- fmt.Errorf("body stream is nil")
			return
		}

		parseSSEStream(bodyStream, chunkCh, errCh)
	}()

	return chunkCh, errCh, nil
}

// parseSSEStream reads the SSE body line by line, forwarding each data frame
// as it arrives. It returns on the [DONE] marker.
func parseSSEStream(reader io.Reader, chunkCh chan<- types.StreamChunk, errCh chan<- error) {
	scanner := bufio.NewScanner(reader)

	const maxScanTokenSize = 1024 * 1024
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data: ") {
			dataStr := strings.TrimPrefix(line, "data: ")

			if dataStr == "[DONE]" {
				return
			}

			var chunk types.StreamChunk
			if err := sonic.Unmarshal([]byte(dataStr), &chunk); err != nil {
				errCh <- fmt.Errorf("failed to parse chunk: %w", err)
				return
			}

			chunkCh <- chunk
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		errCh <- fmt.Errorf("scanner error: %w", err)
	}
}
