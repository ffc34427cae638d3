// Package manifest describes which service keys a project needs and reports
// which of them are configured.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"llmkeys/pkg/keys"
)

// Manifest lists required and optional services. A service may appear in
// only one of the lists.
type Manifest struct {
	Required []keys.Service
	Optional []keys.Service
}

type rawManifest struct {
	Required []string `yaml:"required"`
	Optional []string `yaml:"optional"`
}

// Default treats every known service as optional.
func Default() *Manifest {
	return &Manifest{Optional: keys.Services()}
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML manifest. Entries may be service names or their
// environment keys.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	seen := make(map[keys.Service]string)
	required, err := parseList(raw.Required, "required", seen)
	if err != nil {
		return nil, err
	}
	optional, err := parseList(raw.Optional, "optional", seen)
	if err != nil {
		return nil, err
	}

	return &Manifest{Required: required, Optional: optional}, nil
}

func parseList(names []string, list string, seen map[keys.Service]string) ([]keys.Service, error) {
	out := make([]keys.Service, 0, len(names))
	for _, name := range names {
		s, err := keys.ParseService(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", list, err)
		}
		if prev, ok := seen[s]; ok {
			return nil, fmt.Errorf("%s: service %q already listed in %s", list, s, prev)
		}
		seen[s] = list
		out = append(out, s)
	}
	return out, nil
}
