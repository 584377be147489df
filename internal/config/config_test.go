package config

import (
	"os"
	"path/filepath"
	"testing"

	client "github.com/taskmesh/taskmesh-cli"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "config"))
}

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	s := tempStore(t)

	if err := s.Set(client.KeyAPIKey, "tm_test_123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := s.Get(client.KeyAPIKey); got != "tm_test_123" {
		t.Errorf("expected tm_test_123, got %q", got)
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	t.Parallel()

	s := tempStore(t)

	if got := s.Get("nonexistent"); got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestStore_SetValidation(t *testing.T) {
	t.Parallel()

	s := tempStore(t)

	if err := s.Set("", "value"); err == nil {
		t.Error("expected error for empty key")
	}

	if err := s.Set("key", "a\nb"); err == nil {
		t.Error("expected error for value with newline")
	}
}

func TestStore_Unset(t *testing.T) {
	t.Parallel()

	s := tempStore(t)

	if err := s.Set(client.KeyTenant, "acme"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := s.Unset(client.KeyTenant); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}

	if got := s.Get(client.KeyTenant); got != "" {
		t.Errorf("expected empty after unset, got %q", got)
	}

	// Unsetting an absent key is fine.
	if err := s.Unset("never-set"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStore_PreservesOtherKeys(t *testing.T) {
	t.Parallel()

	s := tempStore(t)

	if err := s.Set(client.KeyAPIKey, "key1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(client.KeyTenant, "acme"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(client.KeyAPIKey, "key2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := s.Get(client.KeyTenant); got != "acme" {
		t.Errorf("tenant lost on rewrite, got %q", got)
	}
	if got := s.Get(client.KeyAPIKey); got != "key2" {
		t.Errorf("expected key2, got %q", got)
	}
}

func TestStore_ParsesCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config")
	content := "# taskmesh config\n\napi-key = spaced \ntenant=acme\nnot a pair\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	s := NewStoreAt(path)

	if got := s.Get(client.KeyAPIKey); got != "spaced" {
		t.Errorf("expected trimmed value, got %q", got)
	}
	if got := s.Get(client.KeyTenant); got != "acme" {
		t.Errorf("expected acme, got %q", got)
	}
}

func TestStore_EnvFallback(t *testing.T) {
	t.Setenv("TASKMESH_API_KEY", "env-key")

	s := tempStore(t)

	if got := s.Get(client.KeyAPIKey); got != "env-key" {
		t.Errorf("expected env fallback, got %q", got)
	}
}

func TestStore_FileWinsOverEnv(t *testing.T) {
	t.Setenv("TASKMESH_API_KEY", "env-key")

	s := tempStore(t)
	if err := s.Set(client.KeyAPIKey, "file-key"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := s.Get(client.KeyAPIKey); got != "file-key" {
		t.Errorf("expected file value to win, got %q", got)
	}
}

func TestStore_APIConfig(t *testing.T) {
	t.Parallel()

	s := tempStore(t)
	if err := s.Set(client.KeyAPIKey, "k"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(client.KeyTenant, "acme"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cfg := s.APIConfig()

	if cfg.APIKey != "k" {
		t.Errorf("expected APIKey=k, got %q", cfg.APIKey)
	}
	if cfg.Tenant != "acme" {
		t.Errorf("expected Tenant=acme, got %q", cfg.Tenant)
	}
	if cfg.APIURL != "" {
		t.Errorf("expected empty APIURL (client applies the default), got %q", cfg.APIURL)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	t.Parallel()

	s := tempStore(t)
	if err := s.Set(client.KeyAPIKey, "secret"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}

// Store must satisfy the client's credential contract.
var _ client.CredentialSource = (*Store)(nil)
