package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"llmkeys/pkg/keys"
)

func TestNew_CopiesValues(t *testing.T) {
	values := map[string]string{"OPENAI_API_KEY": "abc123"}
	cfg := New(values)
	values["OPENAI_API_KEY"] = "changed"

	if got := cfg.Get("OPENAI_API_KEY"); got != "abc123" {
		t.Errorf("Get() = %q, want %q", got, "abc123")
	}
}

func TestFromEnviron(t *testing.T) {
	cfg := fromEnviron([]string{
		"OPENAI_API_KEY=abc123",
		"EMPTY=",
		"WITH_EQUALS=a=b",
		"=ignored",
		"malformed",
	})

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"OPENAI_API_KEY", "abc123", true},
		{"EMPTY", "", true},
		{"WITH_EQUALS", "a=b", true},
		{"malformed", "", false},
		{"COHERE_API_KEY", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := cfg.Lookup(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	want := []string{"EMPTY", "OPENAI_API_KEY", "WITH_EQUALS"}
	if got := cfg.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ELEVEN_API_KEY=from-file"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("ELEVEN_API_KEY", "")
	os.Unsetenv("ELEVEN_API_KEY")
	t.Setenv("OPENAI_API_KEY", "abc123")

	cfg := FromEnvironment()

	// The snapshot does not follow later changes to the process environment.
	os.Setenv("OPENAI_API_KEY", "changed")

	acc := keys.New(cfg)
	if got := acc.OpenAIAPIKey(); got != "abc123" {
		t.Errorf("OpenAIAPIKey() = %q, want %q", got, "abc123")
	}
	if got := acc.ElevenAPIKey(); got != "from-file" {
		t.Errorf("ElevenAPIKey() = %q, want %q", got, "from-file")
	}
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	if _, ok := cfg.Lookup("X"); ok {
		t.Error("nil Config Lookup() ok = true")
	}
	if cfg.Keys() != nil {
		t.Error("nil Config Keys() != nil")
	}
}
