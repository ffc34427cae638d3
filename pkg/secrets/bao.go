package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/vault/api"
)

const (
	kvMount     = "secret"
	readTimeout = 5 * time.Second
)

// vaultKVv2 is the subset of the KV v2 client used to read secrets.
type vaultKVv2 interface {
	Get(ctx context.Context, path string) (*api.KVSecret, error)
}

// Settings is a read-only key/value configuration.
type Settings interface {
	Lookup(key string) (string, bool)
}

// BaoProvider implements the SecretStore interface for OpenBao.
type BaoProvider struct {
	client *api.Client
	kv     vaultKVv2
}

// NewBaoProvider initializes a new OpenBao client from BAO_ADDR and BAO_TOKEN
// in settings. Unset values fall back to the SDK's VAULT_* handling.
func NewBaoProvider(settings Settings) (*BaoProvider, error) {
	config := api.DefaultConfig()
	if config.Error != nil {
		return nil, fmt.Errorf("failed to read openbao config: %w", config.Error)
	}

	if addr, ok := settings.Lookup("BAO_ADDR"); ok && addr != "" {
		config.Address = addr
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create openbao client: %w", err)
	}

	if token, ok := settings.Lookup("BAO_TOKEN"); ok && token != "" {
		client.SetToken(token)
	}

	return &BaoProvider{client: client, kv: client.KVv2(kvMount)}, nil
}

// GetSecret retrieves a secret from OpenBao at the given path and key.
// It follows the KV V2 secret engine format (secret/data/...).
// If the secret is missing or the client fails, it returns the fallback value.
func (b *BaoProvider) GetSecret(path, key, fallback string) string {
	if b.kv == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	secret, err := b.kv.Get(ctx, path)
	if err != nil || secret == nil {
		return fallback
	}

	if val, ok := secret.Data[key].(string); ok {
		return val
	}

	return fallback
}

// Close is a placeholder for cleaning up resources if needed.
func (b *BaoProvider) Close() error {
	return nil
}
