// Package testutil provides testing utilities and helpers for bridge tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/hostbridge/internal/platform"
)

// MockPlatform uses the real POSIX tools for trees and shells and mocks the
// desktop and drive capabilities.
type MockPlatform struct {
	*platform.Posix
	mock.Mock

	// Root is returned by DriveRoot. Empty disables drive listing.
	Root string
}

// NewMockPlatform creates a mock platform with no drive root.
func NewMockPlatform() *MockPlatform {
	return &MockPlatform{Posix: platform.NewPosix()}
}

// DriveRoot mocks the DriveRoot method.
func (m *MockPlatform) DriveRoot() string { return m.Root }

// ListDrives mocks the ListDrives method.
func (m *MockPlatform) ListDrives(ctx context.Context) ([]string, platform.Output, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Get(1).(platform.Output), args.Error(2)
}

// OpenFile mocks the OpenFile method.
func (m *MockPlatform) OpenFile(ctx context.Context, path string) error {
	return m.Called(path).Error(0)
}

// OpenURL mocks the OpenURL method.
func (m *MockPlatform) OpenURL(ctx context.Context, url string) error {
	return m.Called(url).Error(0)
}

// Workspace is a temporary home and apps directory pair.
type Workspace struct {
	Root string
	Home string
	Apps string
}

// NewWorkspace creates home and apps under a fresh temp dir.
func NewWorkspace(t *testing.T) Workspace {
	t.Helper()
	root := t.TempDir()
	w := Workspace{
		Root: root,
		Home: filepath.Join(root, "home"),
		Apps: filepath.Join(root, "apps"),
	}
	require.NoError(t, os.MkdirAll(w.Home, 0o755))
	require.NoError(t, os.MkdirAll(w.Apps, 0o755))
	return w
}

// HomeDir returns a home directory lookup for the workspace.
func (w Workspace) HomeDir() func() (string, error) {
	return func() (string, error) { return w.Home, nil }
}

// WriteFile writes content to path, creating parents.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
