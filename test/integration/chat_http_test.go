//go:build integration
// +build integration

package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/config"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/handler"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/infrastructure/gemini"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/infrastructure/smartsearch"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/router"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/usecase"
)

// sseFrame is one decoded data frame from the stream.
type sseFrame struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// readSSE collects all data frames until [DONE] or EOF. The returned bool
// reports whether the done marker arrived.
func readSSE(t *testing.T, body io.Reader) ([]sseFrame, bool) {
	t.Helper()
	var frames []sseFrame
	reader := bufio.NewReader(body)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return frames, false
			}
			t.Fatalf("failed to read stream: %v", err)
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			return frames, true
		}

		var frame sseFrame
		if err := json.Unmarshal([]byte(data), &frame); err != nil {
			t.Fatalf("failed to unmarshal frame %q: %v", data, err)
		}
		frames = append(frames, frame)
	}
}

// startMockGemini streams three content objects in the upstream's
// comma-and-bracket framing, flushing between writes to force chunking.
func startMockGemini(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		chunk := func(text string) string {
			return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
		}

		io.WriteString(w, "["+chunk("The "))
		flusher.Flush()
		time.Sleep(10 * time.Millisecond)
		io.WriteString(w, ",\n"+chunk("Wire "))
		flusher.Flush()
		time.Sleep(10 * time.Millisecond)
		io.WriteString(w, ",\n"+chunk("(2002).")+"]")
		flusher.Flush()
	}))
}

func startMockSmartSearch(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"data": {"similarity": {"total": 1, "docs": [
				{"id": "1", "data": "The Wire is a Baltimore crime drama that aired on HBO.", "score": 0.93}
			]}}
		}`)
	}))
}

func startServer(t *testing.T, cfg *config.Config) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	retriever, err := smartsearch.NewClient(cfg.SmartSearch, logger)
	if err != nil {
		t.Fatalf("failed to create smart search client: %v", err)
	}
	generator, err := gemini.NewClient(cfg.Generator, logger)
	if err != nil {
		t.Fatalf("failed to create generator client: %v", err)
	}

	chatUC := usecase.NewChatUsecase(retriever, generator, cfg.Generator.APIKey != "", logger)
	chatHandler := handler.NewChatHandler(chatUC, logger)
	healthHandler := handler.NewHealthHandler(cfg)

	h := server.New(server.WithHostPorts(cfg.GetServerAddr()))
	router.Setup(h, chatHandler, healthHandler)

	go func() {
		if err := h.Run(); err != nil {
			logger.Error("server failed", "error", err)
		}
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Shutdown(ctx)
	})

	// Wait for the server to come up.
	baseURL := "http://" + cfg.GetServerAddr()
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/ping")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return baseURL
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("server did not start")
	return ""
}

func postChat(t *testing.T, baseURL, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("POST", baseURL+"/ai-chatbot/v1/chat", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestChatHTTP_SSE(t *testing.T) {
	mockGemini := startMockGemini(t)
	defer mockGemini.Close()
	mockSearch := startMockSmartSearch(t)
	defer mockSearch.Close()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:               "127.0.0.1",
			Port:               18080,
			Mode:               "release",
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       30 * time.Second,
			MaxRequestBodySize: 4,
		},
		Generator: config.GeneratorConfig{
			APIKey:  "test-key",
			Model:   "gemini-1.5-flash",
			BaseURL: mockGemini.URL,
			Timeout: 30 * time.Second,
		},
		SmartSearch: config.SmartSearchConfig{
			URL:         mockSearch.URL,
			AccessToken: "test-token",
			Timeout:     10 * time.Second,
		},
	}

	baseURL := startServer(t, cfg)

	t.Run("streams text frames in order", func(t *testing.T) {
		resp := postChat(t, baseURL, `{"messages":[{"role":"user","text":"what is The Wire?"}]}`)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
			t.Errorf("Content-Type = %q, want text/event-stream", ct)
		}

		frames, done := readSSE(t, resp.Body)
		if !done {
			t.Error("expected [DONE] marker")
		}

		var answer strings.Builder
		for _, f := range frames {
			if f.Error != "" {
				t.Fatalf("unexpected error frame: %s", f.Error)
			}
			answer.WriteString(f.Text)
		}
		if got := answer.String(); got != "The Wire (2002)." {
			t.Errorf("reassembled answer = %q", got)
		}
		if len(frames) != 3 {
			t.Errorf("got %d frames, want 3", len(frames))
		}
	})

	t.Run("empty conversation gets error frame", func(t *testing.T) {
		resp := postChat(t, baseURL, `{"messages":[]}`)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}

		frames, done := readSSE(t, resp.Body)
		if !done {
			t.Error("expected [DONE] marker")
		}
		if len(frames) != 1 || frames[0].Error != "No messages provided" {
			t.Errorf("frames = %+v, want single 'No messages provided' error", frames)
		}
	})

	t.Run("empty message gets error frame", func(t *testing.T) {
		resp := postChat(t, baseURL, `{"messages":[{"role":"user","text":""}]}`)
		defer resp.Body.Close()

		frames, done := readSSE(t, resp.Body)
		if !done {
			t.Error("expected [DONE] marker")
		}
		if len(frames) != 1 || frames[0].Error != "Empty message" {
			t.Errorf("frames = %+v, want single 'Empty message' error", frames)
		}
	})
}

func TestChatHTTP_MissingAPIKey(t *testing.T) {
	mockSearch := startMockSmartSearch(t)
	defer mockSearch.Close()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:               "127.0.0.1",
			Port:               18081,
			Mode:               "release",
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       30 * time.Second,
			MaxRequestBodySize: 4,
		},
		Generator: config.GeneratorConfig{
			Model:   "gemini-1.5-flash",
			BaseURL: "http://127.0.0.1:1",
			Timeout: 5 * time.Second,
		},
		SmartSearch: config.SmartSearchConfig{
			URL:         mockSearch.URL,
			AccessToken: "test-token",
			Timeout:     10 * time.Second,
		},
	}

	baseURL := startServer(t, cfg)

	resp := postChat(t, baseURL, `{"messages":[{"role":"user","text":"hello"}]}`)
	defer resp.Body.Close()

	frames, done := readSSE(t, resp.Body)
	if !done {
		t.Error("expected [DONE] marker")
	}
	if len(frames) != 1 || frames[0].Error != "API key not configured" {
		t.Errorf("frames = %+v, want single 'API key not configured' error", frames)
	}
}
