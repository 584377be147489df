// Package config implements the on-disk configuration store for taskmesh.
//
// Configuration lives in a key=value file at $XDG_CONFIG_HOME/taskmesh/config
// (falling back to ~/.config/taskmesh/config). Every read goes back to the
// file, so external edits and `taskmesh config set` take effect on the next
// API call without restarting anything. Environment variables act as
// fallbacks for keys absent from the file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	client "github.com/taskmesh/taskmesh-cli"
)

// Environment variable fallbacks, consulted when the file has no value.
var envFallbacks = map[string]string{
	client.KeyAPIKey: "TASKMESH_API_KEY",
	client.KeyAPIURL: "TASKMESH_API_URL",
	client.KeyTenant: "TASKMESH_TENANT",
}

// Store reads and writes the configuration file. It keeps no in-memory
// state beyond the file path; it implements [client.CredentialSource].
type Store struct {
	path string
}

// NewStore returns a Store bound to the default configuration path.
func NewStore() (*Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(dir, "config")}, nil
}

// NewStoreAt returns a Store bound to an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// configDir returns the configuration directory path. Uses XDG_CONFIG_HOME
// if set, otherwise ~/.config/taskmesh.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskmesh"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "taskmesh"), nil
}

// Get returns the value for key: the file value when present, otherwise the
// environment fallback, otherwise "".
func (s *Store) Get(key string) string {
	values, err := s.load()
	if err == nil {
		if v, ok := values[key]; ok && v != "" {
			return v
		}
	}

	if env, ok := envFallbacks[key]; ok {
		return os.Getenv(env)
	}
	return ""
}

// Set writes key=value to the file, creating it (and its directory) on
// first use. The file is written with 0600 permissions since it holds the
// API key.
func (s *Store) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("config key must not be empty")
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("config value must not contain newlines")
	}

	values, err := s.load()
	if err != nil {
		return err
	}

	values[key] = value
	return s.save(values)
}

// Unset removes key from the file. Removing an absent key is not an error.
func (s *Store) Unset(key string) error {
	values, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)
	return s.save(values)
}

// All returns every key=value pair stored in the file.
func (s *Store) All() (map[string]string, error) {
	return s.load()
}

// APIConfig assembles the credentials for a request. Part of the
// [client.CredentialSource] contract.
func (s *Store) APIConfig() client.APIConfig {
	return client.APIConfig{
		APIKey: s.Get(client.KeyAPIKey),
		APIURL: s.Get(client.KeyAPIURL),
		Tenant: s.Get(client.KeyTenant),
	}
}

// load parses the key=value file. A missing file yields an empty map.
func (s *Store) load() (map[string]string, error) {
	values := make(map[string]string)

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return values, nil
}

// save rewrites the whole file with sorted keys for stable diffs.
func (s *Store) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, values[k])
	}

	if err := os.WriteFile(s.path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
