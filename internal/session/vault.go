// Package session holds the client's authentication state: a single
// Store constructed at startup and handed to every consumer, backed by
// a small token vault for persistence between runs.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mnajar/platebook/internal/domain"
)

// Compile-time interface checks.
var (
	_ domain.Vault = (*FileVault)(nil)
	_ domain.Vault = (*MemVault)(nil)
)

// FileVault stores the token in a single file with user-only
// permissions. A missing file means "no token", not an error.
type FileVault struct {
	path string
}

// NewFileVault creates a vault at the given path. The parent directory
// is created on the first Set.
func NewFileVault(path string) *FileVault {
	return &FileVault{path: path}
}

// Get reads the persisted token. Returns "" when none is stored.
func (v *FileVault) Get() (string, error) {
	data, err := os.ReadFile(v.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes the token, replacing any previous value.
func (v *FileVault) Set(token string) error {
	dir := filepath.Dir(v.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: create token dir: %w", err)
		}
	}
	if err := os.WriteFile(v.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	return nil
}

// Remove deletes the persisted token. Removing an absent token is fine.
func (v *FileVault) Remove() error {
	err := os.Remove(v.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove token: %w", err)
	}
	return nil
}

// MemVault is an in-memory vault used in tests. Safe for concurrent use.
type MemVault struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemVault creates an empty in-memory vault.
func NewMemVault() *MemVault { return &MemVault{} }

// Get returns the stored token, or "" when none was set.
func (v *MemVault) Get() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.token, nil
}

// Set stores the token.
func (v *MemVault) Set(token string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.token = token
	v.set = true
	return nil
}

// Remove clears the stored token.
func (v *MemVault) Remove() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.token = ""
	v.set = false
	return nil
}

// Present reports whether a token is currently stored. Test helper.
func (v *MemVault) Present() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.set
}
