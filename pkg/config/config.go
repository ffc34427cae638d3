// Package config holds an immutable snapshot of key/value settings built once
// at startup and handed to the code that needs it.
package config

import (
	"os"
	"sort"
	"strings"

	"llmkeys/pkg/env"
)

// Config is safe for concurrent reads.
type Config struct {
	values map[string]string
}

// New copies values into a Config.
func New(values map[string]string) *Config {
	c := &Config{values: make(map[string]string, len(values))}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

// FromEnvironment loads the local .env file and snapshots the resulting
// process environment.
func FromEnvironment() *Config {
	env.Load()
	return fromEnviron(os.Environ())
}

func fromEnviron(environ []string) *Config {
	c := &Config{values: make(map[string]string, len(environ))}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		c.values[k] = v
	}
	return c
}

func (c *Config) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.values[key]
	return v, ok
}

// Get returns the value for key, or "" when it is not set.
func (c *Config) Get(key string) string {
	v, _ := c.Lookup(key)
	return v
}

// Keys returns the configured keys in sorted order.
func (c *Config) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
