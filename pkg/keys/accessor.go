package keys

// Source is a read-only key/value configuration.
type Source interface {
	Lookup(key string) (string, bool)
}

// Accessor reads service keys from an injected Source instead of the process
// environment.
type Accessor struct {
	src Source
}

func New(src Source) *Accessor {
	return &Accessor{src: src}
}

// Lookup reports the key for s and whether it is set to a non-empty value.
func (a *Accessor) Lookup(s Service) (string, bool) {
	if a == nil || a.src == nil {
		return "", false
	}
	key := s.EnvKey()
	if key == "" {
		return "", false
	}
	v, ok := a.src.Lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Get returns the key for s, or "" when unset.
func (a *Accessor) Get(s Service) string {
	v, _ := a.Lookup(s)
	return v
}

func (a *Accessor) OpenAIAPIKey() string     { return a.Get(OpenAI) }
func (a *Accessor) GeminiAPIKey() string     { return a.Get(Gemini) }
func (a *Accessor) ActiveloopAPIKey() string { return a.Get(Activeloop) }
func (a *Accessor) CohereAPIKey() string     { return a.Get(Cohere) }
func (a *Accessor) ElevenAPIKey() string     { return a.Get(Eleven) }

type chain []Source

// Chain combines sources; the first one holding a non-empty value wins.
func Chain(sources ...Source) Source {
	return chain(sources)
}

func (c chain) Lookup(key string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// MapSource is a Source over a plain map.
type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
