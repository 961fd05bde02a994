package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mnajar/platebook/internal/domain"
	"github.com/mnajar/platebook/internal/logger"
)

func newTestStore(t *testing.T) (*Store, *MemVault) {
	t.Helper()
	vault := NewMemVault()
	store := NewStore(vault, logger.New(logger.LevelOff, nil))
	if err := store.Hydrate(); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	return store, vault
}

func TestStoreLoginLogout(t *testing.T) {
	store, vault := newTestStore(t)

	if store.Current().Authenticated {
		t.Fatal("fresh store should be logged out")
	}

	if err := store.Login("tok-123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	cur := store.Current()
	if !cur.Authenticated || cur.Token != "tok-123" {
		t.Fatalf("after login: got %+v", cur)
	}
	if !vault.Present() {
		t.Fatal("token should be persisted after login")
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	cur = store.Current()
	if cur.Authenticated || cur.Token != "" {
		t.Fatalf("after logout: got %+v", cur)
	}
	if vault.Present() {
		t.Fatal("token should be removed after logout")
	}
}

func TestStoreLogoutIdempotent(t *testing.T) {
	store, vault := newTestStore(t)

	if err := store.Login("tok"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	first := store.Current()

	if err := store.Logout(); err != nil {
		t.Fatalf("second logout should be a no-op, got %v", err)
	}
	if second := store.Current(); second != first {
		t.Fatalf("state changed between logouts: %+v vs %+v", first, second)
	}
	if vault.Present() {
		t.Fatal("vault should stay empty")
	}
}

func TestStoreLoginEmptyToken(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Login("")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.Current().Authenticated {
		t.Fatal("failed login must not authenticate")
	}
}

func TestStoreHydrate(t *testing.T) {
	vault := NewMemVault()
	if err := vault.Set("restored-token"); err != nil {
		t.Fatalf("seed vault: %v", err)
	}

	store := NewStore(vault, logger.New(logger.LevelOff, nil))
	if store.Current().Authenticated {
		t.Fatal("store must start logged out before hydration")
	}
	if err := store.Hydrate(); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	cur := store.Current()
	if !cur.Authenticated || cur.Token != "restored-token" {
		t.Fatalf("after hydrate: got %+v", cur)
	}
}

func TestFileVaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	vault := NewFileVault(path)

	// Absent file reads as empty, not an error.
	tok, err := vault.Get()
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if tok != "" {
		t.Fatalf("expected empty token, got %q", tok)
	}

	if err := vault.Set("abc.def.ghi"); err != nil {
		t.Fatalf("set: %v", err)
	}
	tok, err = vault.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tok != "abc.def.ghi" {
		t.Fatalf("expected stored token, got %q", tok)
	}

	if err := vault.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := vault.Remove(); err != nil {
		t.Fatalf("remove absent should be a no-op, got %v", err)
	}
	tok, _ = vault.Get()
	if tok != "" {
		t.Fatalf("expected empty token after remove, got %q", tok)
	}
}
