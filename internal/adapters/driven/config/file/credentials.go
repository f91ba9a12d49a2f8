package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore is a TOML-file implementation of driven.CredentialsStore.
// Tokens are stored per hosting-service identity in the pagelift config
// directory, readable only by the owner.
type CredentialsStore struct {
	mu       sync.RWMutex
	filePath string
	creds    map[string]domain.Credentials
}

// credentialsFile is the TOML shape of the credentials file.
type credentialsFile struct {
	Services []domain.Credentials `toml:"services"`
}

// NewCredentialsStore creates a credentials store. If configDir is empty,
// defaults to ~/.pagelift.
func NewCredentialsStore(configDir string) (*CredentialsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".pagelift")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &CredentialsStore{
		filePath: filepath.Join(configDir, "credentials.toml"),
		creds:    make(map[string]domain.Credentials),
	}
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Save stores credentials. Creates if new, updates if exists.
func (s *CredentialsStore) Save(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[creds.Service] = creds
	return s.persist()
}

// Get retrieves credentials for a hosting service.
func (s *CredentialsStore) Get(_ context.Context, service string) (*domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.creds[service]
	if !ok {
		return nil, fmt.Errorf("%w: no credentials for service %q", domain.ErrNotFound, service)
	}
	return &creds, nil
}

// Delete removes credentials for a hosting service.
func (s *CredentialsStore) Delete(_ context.Context, service string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, service)
	return s.persist()
}

// List returns all stored credentials sorted by service.
func (s *CredentialsStore) List(_ context.Context) ([]domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Credentials, 0, len(s.creds))
	for _, creds := range s.creds {
		out = append(out, creds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Service < out[j].Service })
	return out, nil
}

// load reads the credentials file into memory.
func (s *CredentialsStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	var cf credentialsFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	for _, creds := range cf.Services {
		s.creds[creds.Service] = creds
	}
	return nil
}

// persist writes the in-memory credentials back to disk. Tokens are
// secrets; the file stays owner-only.
func (s *CredentialsStore) persist() error {
	cf := credentialsFile{Services: make([]domain.Credentials, 0, len(s.creds))}
	for _, creds := range s.creds {
		cf.Services = append(cf.Services, creds)
	}
	sort.Slice(cf.Services, func(i, j int) bool { return cf.Services[i].Service < cf.Services[j].Service })

	data, err := toml.Marshal(cf)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
