// Package mocks provides hand-written mocks for the domain interfaces.
package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/domain/entity"
)

// MockContextRetriever is a mock implementation of domain.ContextRetriever
type MockContextRetriever struct {
	RetrieveFunc func(ctx context.Context, query string) ([]entity.ContextDocument, error)
}

// Retrieve mocks the Retrieve method
func (m *MockContextRetriever) Retrieve(ctx context.Context, query string) ([]entity.ContextDocument, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, query)
	}
	return []entity.ContextDocument{}, nil
}

// MockStreamGenerator is a mock implementation of domain.StreamGenerator
type MockStreamGenerator struct {
	OpenFunc func(ctx context.Context, req *entity.GenerationRequest) (io.ReadCloser, error)

	// LastRequest records the request of the most recent Open call.
	LastRequest *entity.GenerationRequest
}

// Open mocks the Open method
func (m *MockStreamGenerator) Open(ctx context.Context, req *entity.GenerationRequest) (io.ReadCloser, error) {
	m.LastRequest = req
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, req)
	}
	return io.NopCloser(strings.NewReader("")), nil
}
