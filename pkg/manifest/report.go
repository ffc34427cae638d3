package manifest

import (
	"fmt"
	"strings"

	"llmkeys/pkg/keys"
)

type Status string

const (
	StatusSet     Status = "set"
	StatusMissing Status = "missing"
	StatusUnset   Status = "unset"
)

// Entry is the state of one service's key. Value is masked.
type Entry struct {
	Service  keys.Service
	EnvKey   string
	Required bool
	Status   Status
	Value    string
}

type Report struct {
	Entries []Entry
}

// Check looks up every service named in the manifest. Required services
// without a key are reported as missing, optional ones as unset.
func (m *Manifest) Check(acc *keys.Accessor) Report {
	var r Report
	add := func(s keys.Service, required bool) {
		e := Entry{Service: s, EnvKey: s.EnvKey(), Required: required}
		if v, ok := acc.Lookup(s); ok {
			e.Status = StatusSet
			e.Value = keys.Mask(v)
		} else if required {
			e.Status = StatusMissing
		} else {
			e.Status = StatusUnset
		}
		r.Entries = append(r.Entries, e)
	}

	for _, s := range m.Required {
		add(s, true)
	}
	for _, s := range m.Optional {
		add(s, false)
	}
	return r
}

// Missing returns the required services without a key.
func (r Report) Missing() []keys.Service {
	var out []keys.Service
	for _, e := range r.Entries {
		if e.Status == StatusMissing {
			out = append(out, e.Service)
		}
	}
	return out
}

// OK reports whether every required key is set.
func (r Report) OK() bool {
	return len(r.Missing()) == 0
}

// Markdown renders the report as a table.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("## API keys\n\n")
	b.WriteString("| Service | Variable | Required | Status | Value |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, e := range r.Entries {
		required := "no"
		if e.Required {
			required = "yes"
		}
		value := "-"
		if e.Value != "" {
			value = "`" + e.Value + "`"
		}
		fmt.Fprintf(&b, "| %s | `%s` | %s | %s | %s |\n", e.Service, e.EnvKey, required, e.Status, value)
	}

	if missing := r.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, s := range missing {
			names[i] = s.EnvKey()
		}
		fmt.Fprintf(&b, "\n**Missing required keys:** %s\n", strings.Join(names, ", "))
	}
	return b.String()
}
