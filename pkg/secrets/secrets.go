package secrets

// SecretStore defines the interface for retrieving API keys kept outside the
// environment.
type SecretStore interface {
	// GetSecret retrieves a secret by path and key.
	// If the secret store is unavailable, it returns the fallback value.
	GetSecret(path, key, fallback string) string

	// Close cleans up any active connections to the secret store.
	Close() error
}

// StoreSource exposes one path of a SecretStore as a key lookup, so keys held
// in the store can be chained in front of the environment.
type StoreSource struct {
	Store SecretStore
	Path  string
}

// Lookup reports a missing or empty secret as absent.
func (s StoreSource) Lookup(key string) (string, bool) {
	if s.Store == nil {
		return "", false
	}
	v := s.Store.GetSecret(s.Path, key, "")
	return v, v != ""
}
