package credentials

// Credentials is the on-disk shape of credentials.toml.
type Credentials struct {
	Version   int                           `toml:"version"`
	Providers map[string]ProviderCredential `toml:"providers"`
}

// ProviderCredential is one provider's stored secret.
type ProviderCredential struct {
	APIKey string `toml:"api_key"`
}

// newCredentials returns an empty store at the current schema version.
func newCredentials() *Credentials {
	return &Credentials{
		Version:   currentVersion,
		Providers: make(map[string]ProviderCredential),
	}
}
