// Package keys exposes the API keys of the third-party services used by the
// notebooks, looked up by a fixed logical name.
package keys

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"llmkeys/pkg/env"
)

// Service identifies an external service whose API key is kept in the
// environment.
type Service string

const (
	OpenAI     Service = "openai"
	Gemini     Service = "gemini"
	Activeloop Service = "activeloop"
	Cohere     Service = "cohere"
	Eleven     Service = "eleven"
)

var ErrUnknownService = errors.New("unknown service")

var services = []Service{OpenAI, Gemini, Activeloop, Cohere, Eleven}

var envKeys = map[Service]string{
	OpenAI:     "OPENAI_API_KEY",
	Gemini:     "GEMINI_API_KEY",
	Activeloop: "ACTIVELOOP_API_KEY",
	Cohere:     "COHERE_API_KEY",
	Eleven:     "ELEVEN_API_KEY",
}

// Services returns every known service in a stable order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// EnvKey returns the environment variable holding the service's key, or ""
// for an unknown service.
func (s Service) EnvKey() string {
	return envKeys[s]
}

func (s Service) String() string {
	return string(s)
}

// ParseService accepts a service name ("cohere") or its environment key
// ("COHERE_API_KEY"), case-insensitively.
func ParseService(name string) (Service, error) {
	name = strings.TrimSpace(name)
	for _, s := range services {
		if strings.EqualFold(name, string(s)) || strings.EqualFold(name, s.EnvKey()) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownService, name)
}

// Get loads the local .env file and returns the key for s from the process
// environment. An unset key yields "".
func Get(s Service) string {
	env.Load()
	return os.Getenv(s.EnvKey())
}

func OpenAIAPIKey() string     { return Get(OpenAI) }
func GeminiAPIKey() string     { return Get(Gemini) }
func ActiveloopAPIKey() string { return Get(Activeloop) }
func CohereAPIKey() string     { return Get(Cohere) }
func ElevenAPIKey() string     { return Get(Eleven) }

// Mask hides all but the last four characters of a key. Short keys are
// hidden entirely.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	return "****" + string(runes[len(runes)-4:])
}
