package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"commitgen.dev/commitgen/internal/engine"
)

// MockClient is a mock implementation of engine.Generator for testing
// purposes. It allows setting predefined responses and errors without
// reaching a real backend, and is safe for concurrent use so timed-out
// calls can still be inspected.
type MockClient struct {
	mu            sync.Mutex
	mockResponse  string
	mockLoadErr   error
	mockGenErr    error
	responseDelay time.Duration
	loadCalls     int
	generateCalls int
	lastPrompt    string
	lastParams    engine.GenerateParams
}

// NewMockClient creates a new MockClient instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Load implements engine.Generator. It returns the mock load error if one
// is set.
func (m *MockClient) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls++
	return m.mockLoadErr
}

// Generate implements engine.Generator. It honors the configured delay,
// then returns the mock response or error.
func (m *MockClient) Generate(ctx context.Context, prompt string, params engine.GenerateParams) (string, error) {
	m.mu.Lock()
	m.generateCalls++
	m.lastPrompt = prompt
	m.lastParams = params
	response := m.mockResponse
	genErr := m.mockGenErr
	delay := m.responseDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if genErr != nil {
		return "", genErr
	}
	if response == "" {
		return "", fmt.Errorf("no mock response set, use SetMockResponse()")
	}
	return response, nil
}

// SetMockResponse sets the text Generate returns.
func (m *MockClient) SetMockResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mockResponse = text
	m.mockGenErr = nil
}

// SetMockError sets the error Generate returns.
func (m *MockClient) SetMockError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mockGenErr = err
	m.mockResponse = ""
}

// SetMockLoadError sets the error Load returns.
func (m *MockClient) SetMockLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mockLoadErr = err
}

// SetResponseDelay makes Generate wait before answering, for timeout
// tests.
func (m *MockClient) SetResponseDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseDelay = d
}

// Reset clears all mock state.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mockResponse = ""
	m.mockLoadErr = nil
	m.mockGenErr = nil
	m.responseDelay = 0
	m.loadCalls = 0
	m.generateCalls = 0
	m.lastPrompt = ""
	m.lastParams = engine.GenerateParams{}
}

// LoadCallCount returns the number of times Load has been called.
func (m *MockClient) LoadCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// GenerateCallCount returns the number of times Generate has been called.
func (m *MockClient) GenerateCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

// LastPrompt returns the last prompt passed to Generate.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// LastParams returns the last sampling parameters passed to Generate.
func (m *MockClient) LastParams() engine.GenerateParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastParams
}
