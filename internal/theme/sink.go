package theme

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// StyleSink receives CSS custom property assignments.
type StyleSink interface {
	SetVariable(name, value string) error
}

// Stylesheet is an in-memory StyleSink that can render itself as a :root
// rule. It is safe for concurrent use.
type Stylesheet struct {
	mu   sync.RWMutex
	vars map[string]string
}

// Compile-time interface guard.
var _ StyleSink = (*Stylesheet)(nil)

// NewStylesheet returns an empty stylesheet.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{vars: make(map[string]string)}
}

func (s *Stylesheet) SetVariable(name, value string) error {
	if !strings.HasPrefix(name, "--") {
		return errors.New("custom property name must start with --")
	}
	s.mu.Lock()
	s.vars[name] = value
	s.mu.Unlock()
	return nil
}

// Variables returns a copy of the current assignments.
func (s *Stylesheet) Variables() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// CSS renders the variables as a single :root block sorted by name.
func (s *Stylesheet) CSS() string {
	vars := s.Variables()
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, n := range names {
		b.WriteString("  ")
		b.WriteString(n)
		b.WriteString(": ")
		b.WriteString(vars[n])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// MultiSink forwards every assignment to each sink in order.
type MultiSink []StyleSink

func (m MultiSink) SetVariable(name, value string) error {
	var errs []error
	for _, s := range m {
		if err := s.SetVariable(name, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
