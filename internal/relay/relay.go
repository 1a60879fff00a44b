// Package relay turns the upstream generator's raw byte stream into ordered
// SSE frames for the downstream client. It owns the session's parse buffer,
// the forwarding loop, and terminal cleanup.
package relay

import (
	"io"
	"log/slog"

	"github.com/bytedance/sonic"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/pkg/jsonframe"
)

// DoneMarker is the terminal sentinel sent as the final frame of every
// session, on every exit path.
const DoneMarker = "[DONE]"

// FrameSink receives one SSE frame payload per call. Implementations must
// flush each frame to the client before returning; a write error means the
// client is gone.
type FrameSink interface {
	WriteFrame(data []byte) error
}

// TextEvent is the frame payload for one recognized content chunk.
type TextEvent struct {
	Text string `json:"text"`
}

// ErrorEvent is the frame payload for a user-visible failure.
type ErrorEvent struct {
	Error string `json:"error"`
}

// generateChunk mirrors the part of the upstream response shape the relay
// cares about: candidates[0].content.parts[0].text.
type generateChunk struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Session relays one upstream stream to one client. State is session-local;
// a new Session is created per request and discarded afterwards.
type Session struct {
	extractor *jsonframe.Extractor
	logger    *slog.Logger
	dropped   int
}

// NewSession creates a relay session with an empty parse buffer.
func NewSession(logger *slog.Logger) *Session {
	return &Session{
		extractor: jsonframe.New(),
		logger:    logger,
	}
}

// Run consumes upstream until it is exhausted or fails, emitting one frame
// per recognized content chunk, in completion order. On upstream failure it
// emits a single error frame. On sink write failure (client disconnect) it
// stops consuming immediately. In all cases it closes upstream and emits the
// terminal sentinel before returning.
func (s *Session) Run(upstream io.ReadCloser, sink FrameSink) {
	defer func() {
		if err := upstream.Close(); err != nil {
			s.logger.Warn("failed to close upstream stream", "error", err)
		}
		if err := sink.WriteFrame([]byte(DoneMarker)); err != nil {
			s.logger.Debug("failed to write done marker", "error", err)
		}
		if s.dropped > 0 {
			s.logger.Warn("dropped malformed upstream fragments", "count", s.dropped)
		}
	}()

	buf := make([]byte, 4096)
	for {
		n, err := upstream.Read(buf)
		if n > 0 {
			s.extractor.Feed(buf[:n])
			if !s.forward(sink) {
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				s.logger.Error("upstream stream failed", "error", err)
				s.writeError(sink, "Connection error: "+err.Error())
			}
			return
		}
	}
}

// forward drains every complete object currently in the buffer. It returns
// false when the sink rejects a write and the session must unwind.
func (s *Session) forward(sink FrameSink) bool {
	for {
		obj, ok := s.extractor.Next()
		if !ok {
			return true
		}

		text, ok := extractText(obj)
		if !ok {
			// Malformed or structurally unexpected fragments are
			// counted and skipped; a single bad fragment must not
			// end the session.
			s.dropped++
			s.logger.Debug("skipping unrecognized upstream fragment", "bytes", len(obj))
			continue
		}

		payload, err := sonic.Marshal(TextEvent{Text: text})
		if err != nil {
			s.dropped++
			continue
		}
		if err := sink.WriteFrame(payload); err != nil {
			s.logger.Info("client write failed, aborting relay", "error", err)
			return false
		}
	}
}

func (s *Session) writeError(sink FrameSink, message string) {
	payload, err := sonic.Marshal(ErrorEvent{Error: message})
	if err != nil {
		return
	}
	if err := sink.WriteFrame(payload); err != nil {
		s.logger.Debug("failed to write error frame", "error", err)
	}
}

// extractText pulls the content text out of one upstream object. It returns
// false for objects that do not parse or lack the expected path.
func extractText(obj []byte) (string, bool) {
	var chunk generateChunk
	if err := sonic.Unmarshal(obj, &chunk); err != nil {
		return "", false
	}
	if len(chunk.Candidates) == 0 || len(chunk.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	return chunk.Candidates[0].Content.Parts[0].Text, true
}
