// Package credentials stores provider API keys in credentials.toml under
// the .embedviz/ directory. A stored key takes precedence over the
// provider's environment variable.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/embedviz/embedviz/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0
)

// providerEnvVars maps each provider to the environment variable its
// client falls back to when no key is stored.
var providerEnvVars = map[string]string{
	"openai": "OPENAI_API_KEY",
}

// Manager reads and writes one credentials.toml file.
type Manager struct {
	path string
}

// NewManager resolves the .embedviz/ directory (override first, then the
// standard dotdir search) and binds the manager to its credentials.toml.
// When no directory exists anywhere, ~/.embedviz/ is created.
func NewManager(override string) (*Manager, error) {
	target, err := dotdir.NewManager().Target(override)
	if err != nil {
		return nil, err
	}

	if target == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home dir: %w", err)
		}
		target = filepath.Join(home, ".embedviz")
		if err := os.MkdirAll(target, 0o755); err != nil {
			return nil, fmt.Errorf("creating embedviz dir: %w", err)
		}
	}

	return &Manager{path: filepath.Join(target, credentialsFile)}, nil
}

// Load parses credentials.toml, or returns an empty store when the file
// does not exist yet.
func (m *Manager) Load() (*Credentials, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return newCredentials(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds := newCredentials()
	if err := toml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	return creds, nil
}

// Save writes the store back to disk. Keys are secrets, so the file mode
// is 0600.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(m.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}

// SetKey stores an API key for the given provider, replacing any existing
// one.
func (m *Manager) SetKey(provider, key string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Providers[provider] = ProviderCredential{APIKey: key}

	return m.Save(creds)
}

// GetKey returns the stored API key for the given provider, or an empty
// string when none is stored. It never consults the environment; the
// provider clients do their own env fallback.
func (m *Manager) GetKey(provider string) (string, error) {
	creds, err := m.Load()
	if err != nil {
		return "", err
	}

	return creds.Providers[provider].APIKey, nil
}

// RemoveKey deletes the stored credential for a provider. Removing a
// provider that has no stored key is a no-op.
func (m *Manager) RemoveKey(provider string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	delete(creds.Providers, provider)

	return m.Save(creds)
}

// ListProviders returns the providers with a stored credential, sorted.
func (m *Manager) ListProviders() ([]string, error) {
	creds, err := m.Load()
	if err != nil {
		return nil, err
	}

	return slices.Sorted(maps.Keys(creds.Providers)), nil
}

// GetTarget returns the resolved path to the credentials file.
func (m *Manager) GetTarget() string {
	return m.path
}

// EnvVarForProvider returns the environment variable name for a given
// provider, or an empty string for unknown providers.
func EnvVarForProvider(provider string) string {
	return providerEnvVars[provider]
}

// SupportedProviders returns the providers that take an API key. Ollama
// talks to a local daemon and needs none.
func SupportedProviders() []string {
	return []string{"openai"}
}

// IsSupportedProvider reports whether auth can store a key for provider.
func IsSupportedProvider(provider string) bool {
	return slices.Contains(SupportedProviders(), provider)
}
