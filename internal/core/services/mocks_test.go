package services

import (
	"context"
	"sync"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
)

// mockDiscoverer implements driven.Discoverer.
type mockDiscoverer struct {
	endpoint *domain.Endpoint
	err      error
	calls    int
}

func (m *mockDiscoverer) Discover(_ context.Context, _ string) (*domain.Endpoint, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.endpoint != nil {
		return m.endpoint, nil
	}
	return &domain.Endpoint{
		Protocols: []string{domain.ProtocolVersion},
		BaseURL:   "https://api.test.example",
	}, nil
}

// mockAPI implements driven.PublishAPI with per-method function hooks and
// call accounting. Nil hooks return permissive defaults.
type mockAPI struct {
	mu sync.Mutex

	suggestFn  func(scope driven.RequestScope, hash []byte) (*driven.SuggestResponse, error)
	bundleFn   func(scope driven.RequestScope, encoded []byte) (*driven.BundleUploadResponse, error)
	missingFn  func(scope driven.RequestScope, blobs [][]byte) error
	finalizeFn func(scope driven.RequestScope, id []byte) (*driven.FinalizeResponse, error)
	teamsFn    func(scope driven.RequestScope) (*domain.TeamList, error)

	suggestCalls  int
	bundleCalls   int
	missingCalls  int
	finalizeCalls int
	teamsCalls    int

	suggestScopes  []driven.RequestScope
	missingBatches [][][]byte
}

func (m *mockAPI) Suggest(
	_ context.Context, scope driven.RequestScope, hash []byte,
) (*driven.SuggestResponse, error) {
	m.mu.Lock()
	m.suggestCalls++
	m.suggestScopes = append(m.suggestScopes, scope)
	m.mu.Unlock()
	if m.suggestFn != nil {
		return m.suggestFn(scope, hash)
	}
	return &driven.SuggestResponse{Present: true}, nil
}

func (m *mockAPI) UploadBundle(
	_ context.Context, scope driven.RequestScope, encoded []byte,
) (*driven.BundleUploadResponse, error) {
	m.mu.Lock()
	m.bundleCalls++
	m.mu.Unlock()
	if m.bundleFn != nil {
		return m.bundleFn(scope, encoded)
	}
	return &driven.BundleUploadResponse{}, nil
}

func (m *mockAPI) UploadMissing(_ context.Context, scope driven.RequestScope, blobs [][]byte) error {
	m.mu.Lock()
	m.missingCalls++
	m.missingBatches = append(m.missingBatches, blobs)
	m.mu.Unlock()
	if m.missingFn != nil {
		return m.missingFn(scope, blobs)
	}
	return nil
}

func (m *mockAPI) Finalize(
	_ context.Context, scope driven.RequestScope, id []byte,
) (*driven.FinalizeResponse, error) {
	m.mu.Lock()
	m.finalizeCalls++
	m.mu.Unlock()
	if m.finalizeFn != nil {
		return m.finalizeFn(scope, id)
	}
	return &driven.FinalizeResponse{Committed: true}, nil
}

func (m *mockAPI) Teams(_ context.Context, scope driven.RequestScope) (*domain.TeamList, error) {
	m.mu.Lock()
	m.teamsCalls++
	m.mu.Unlock()
	if m.teamsFn != nil {
		return m.teamsFn(scope)
	}
	return &domain.TeamList{}, nil
}

// mockFactory implements driven.ClientFactory, returning a fixed API.
type mockFactory struct {
	api driven.PublishAPI
}

func (m *mockFactory) New(_ *domain.Endpoint) driven.PublishAPI {
	return m.api
}

// mockRunner implements driven.TaskRunner.
type mockRunner struct {
	result *driven.TaskResult
	err    error
	calls  int
}

func (m *mockRunner) Run(_ context.Context, _, _ string) (*driven.TaskResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &driven.TaskResult{ExitCode: 0}, nil
}

// mockResolver implements driven.TeamResolver, returning scripted
// selections in order.
type mockResolver struct {
	selections []domain.TeamSelection
	err        error
	calls      int
}

func (m *mockResolver) Resolve(_ context.Context, _ domain.TeamList) (domain.TeamSelection, error) {
	i := m.calls
	m.calls++
	if m.err != nil {
		return domain.TeamSelection{}, m.err
	}
	if i < len(m.selections) {
		return m.selections[i], nil
	}
	return domain.CancelTeamSelection(), nil
}
