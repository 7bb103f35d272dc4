package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlfront/pkg/core"
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// ErrUnknownDialect is returned by Lookup for names nobody registered.
var ErrUnknownDialect = errors.New("unknown dialect")

// Registry is a name -> Dialect table that becomes read-only on first read.
// Registration is an init-time activity; registering after the first lookup panics.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]*Dialect
	frozen   bool
	freeze   sync.Once
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialects: make(map[string]*Dialect)}
}

// Register adds a dialect. It panics on duplicates and after the registry froze.
func (r *Registry) Register(d *Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("dialect: Register(%q) after registry was read", d.Name))
	}
	name := strings.ToLower(d.Name)
	if _, dup := r.dialects[name]; dup {
		panic(fmt.Sprintf("dialect: Register called twice for %q", d.Name))
	}
	r.dialects[name] = d
}

func (r *Registry) read() {
	r.freeze.Do(func() {
		r.mu.Lock()
		r.frozen = true
		r.mu.Unlock()
	})
}

// Get returns a dialect by name (case-insensitive).
func (r *Registry) Get(name string) (*Dialect, bool) {
	r.read()
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dialects[strings.ToLower(name)]
	return d, ok
}

// Lookup is Get with an error naming the known dialects.
func (r *Registry) Lookup(name string) (*Dialect, error) {
	if name == "" {
		return nil, ErrDialectRequired
	}
	if d, ok := r.Get(name); ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownDialect, name, strings.Join(r.List(), ", "))
}

// List returns all registered dialect names (sorted).
func (r *Registry) List() []string {
	r.read()
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) { defaultRegistry.Register(d) }

// Get returns a dialect from the global registry.
func Get(name string) (*Dialect, bool) { return defaultRegistry.Get(name) }

// Lookup returns a dialect from the global registry or a descriptive error.
func Lookup(name string) (*Dialect, error) { return defaultRegistry.Lookup(name) }

// MustGet returns a dialect from the global registry and panics if it is missing.
func MustGet(name string) *Dialect {
	d, err := defaultRegistry.Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// List returns the names in the global registry.
func List() []string { return defaultRegistry.List() }

// Global clause registry - tracks every clause name used by ANY built dialect.
// Used purely for generating helpful error messages.
var (
	knownClauses = make(map[string]string)
	clausesMu    sync.RWMutex
)

// recordClause registers a clause's leading keyword.
func recordClause(def core.ClauseDef) {
	clausesMu.Lock()
	defer clausesMu.Unlock()
	knownClauses[strings.ToUpper(def.Token.String())] = def.Name()
}

// IsKnownClause returns the clause name if ANY dialect uses word as a clause keyword.
func IsKnownClause(word string) (string, bool) {
	clausesMu.RLock()
	defer clausesMu.RUnlock()
	name, ok := knownClauses[strings.ToUpper(word)]
	return name, ok
}

// AllKnownClauses returns a copy of the clause registry, keyed by leading keyword.
func AllKnownClauses() map[string]string {
	clausesMu.RLock()
	defer clausesMu.RUnlock()
	result := make(map[string]string, len(knownClauses))
	for k, v := range knownClauses {
		result[k] = v
	}
	return result
}
