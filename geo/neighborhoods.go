// Package geo holds the static neighborhood encoding used by the model.
package geo

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultNeighborhoods matches the encoding the classifier was trained with.
// Codes must not be reassigned without retraining the model.
var DefaultNeighborhoods = map[string]int{
	"Boa Viagem":       0,
	"Piedade":          1,
	"Imbiribeira":      2,
	"Jardim São Paulo": 3,
	"Prado":            4,
}

// UnknownError reports a neighborhood absent from the mapping.
type UnknownError struct {
	Name      string
	Available []string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("bairro '%s' não encontrado. Bairros disponíveis: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// Mapping is an immutable neighborhood → feature code table.
type Mapping struct {
	codes  map[string]int
	folded map[string]string
	names  []string
}

// NewMapping builds a Mapping from name → code pairs. The input map is copied;
// the Mapping never mutates after construction.
func NewMapping(codes map[string]int) *Mapping {
	m := &Mapping{
		codes:  make(map[string]int, len(codes)),
		folded: make(map[string]string, len(codes)),
		names:  make([]string, 0, len(codes)),
	}
	for name, code := range codes {
		m.codes[name] = code
		m.folded[foldName(name)] = name
		m.names = append(m.names, name)
	}
	sort.Strings(m.names)
	return m
}

// Code resolves a neighborhood name to its feature code. Lookup is exact
// first, then tolerant of case and missing accents ("jardim sao paulo").
func (m *Mapping) Code(name string) (int, error) {
	if code, ok := m.codes[name]; ok {
		return code, nil
	}
	if canonical, ok := m.folded[foldName(name)]; ok {
		return m.codes[canonical], nil
	}
	return 0, &UnknownError{Name: name, Available: m.names}
}

// Canonical returns the mapping's spelling for a name, so responses echo the
// trained form even when the caller omitted accents.
func (m *Mapping) Canonical(name string) (string, bool) {
	if _, ok := m.codes[name]; ok {
		return name, true
	}
	canonical, ok := m.folded[foldName(name)]
	return canonical, ok
}

// Names lists all neighborhoods in sorted order.
func (m *Mapping) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of neighborhoods.
func (m *Mapping) Len() int {
	return len(m.names)
}

func foldName(name string) string {
	// Transformers carry state, so build the chain per call; lookups may run
	// concurrently.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(fold, name)
	if err != nil {
		stripped = name
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}
