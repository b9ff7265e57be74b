package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const (
	// DefaultFileName is the base name of the configuration document.
	DefaultFileName = "config.json"

	HomeWorkspace = "home"
	AppsWorkspace = "apps"
)

// ErrReadOnly is returned by Write on a store opened WithReadOnly.
var ErrReadOnly = errors.New("config store is read-only")

// Store caches the configuration document of one apps directory.
type Store struct {
	appsDir  string
	appsURL  string
	fileName string
	homeDir  func() (string, error)
	logger   *zap.Logger
	readOnly bool

	mu     sync.Mutex
	cached *Document
}

// Option configures a Store.
type Option func(*Store)

// WithFileName overrides the document base name.
func WithFileName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.fileName = name
		}
	}
}

// WithHomeDir overrides how the home directory is discovered.
func WithHomeDir(fn func() (string, error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.homeDir = fn
		}
	}
}

// WithReadOnly makes the store observe the document without ever writing it.
// Runtime values are still applied to the in-memory copy.
func WithReadOnly() Option {
	return func(s *Store) {
		s.readOnly = true
	}
}

// NewStore creates a store for the document under appsDir.
func NewStore(appsDir, appsURL string, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		appsDir:  appsDir,
		appsURL:  appsURL,
		fileName: DefaultFileName,
		homeDir:  os.UserHomeDir,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the absolute location of the document.
func (s *Store) Path() string {
	return filepath.Join(s.appsDir, s.fileName)
}

// ConfigBase returns the base name of the document.
func (s *Store) ConfigBase() string {
	return s.fileName
}

// AppsDir returns the apps directory.
func (s *Store) AppsDir() string {
	return s.appsDir
}

// Get returns a copy of the current document, loading it on a cache miss.
func (s *Store) Get() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		s.cached = s.load()
	}
	return s.cached.Clone(), nil
}

// Workspaces returns a snapshot of the workspace table.
func (s *Store) Workspaces() *Table {
	doc, _ := s.Get()
	return doc.Workspaces
}

// Invalidate drops the cached document.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Write persists doc and drops the cache so the next Get re-applies the
// runtime values.
func (s *Store) Write(doc *Document) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if doc == nil {
		doc = NewDocument()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(doc); err != nil {
		return err
	}
	s.cached = nil
	return nil
}

func (s *Store) load() *Document {
	doc := NewDocument()
	fromDisk := false

	data, err := os.ReadFile(s.Path())
	switch {
	case err != nil:
		s.logger.Debug("Config document not readable, using defaults",
			zap.String("path", s.Path()), zap.Error(err))
	default:
		parsed := NewDocument()
		if err := json.Unmarshal(data, parsed); err != nil {
			s.logger.Warn("Config document is malformed, using defaults",
				zap.String("path", s.Path()), zap.Error(err))
		} else {
			doc = parsed
			fromDisk = true
		}
	}

	if changed := s.applyRuntime(doc); changed && fromDisk && !s.readOnly {
		if err := s.persist(doc); err != nil {
			s.logger.Warn("Failed to write back config document",
				zap.String("path", s.Path()), zap.Error(err))
		}
	}
	return doc
}

// applyRuntime overwrites the values owned by the running bridge and reports
// whether any of them changed.
func (s *Store) applyRuntime(doc *Document) bool {
	changed := false

	if doc.AppsURL != s.appsURL {
		doc.AppsURL = s.appsURL
		changed = true
	}

	home, err := s.homeDir()
	if err != nil {
		s.logger.Warn("Home directory unavailable", zap.Error(err))
		home, _ = doc.Workspaces.Lookup(HomeWorkspace)
	}

	for _, e := range []Entry{{HomeWorkspace, home}, {AppsWorkspace, s.appsDir}} {
		if cur, ok := doc.Workspaces.Lookup(e.Name); !ok || cur != e.Target {
			doc.Workspaces.Set(e.Name, e.Target)
			changed = true
		}
	}
	return changed
}

func (s *Store) persist(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
