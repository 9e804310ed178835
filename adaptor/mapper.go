package adaptor

import (
	"fmt"
	"maps"
	"sync"
)

// ParameterMapper converts a rule's neutral parameters into the value the
// target plugin expects for that rule.
type ParameterMapper func(Rule) (any, error)

type entryKind uint8

const (
	entryDirect entryKind = iota + 1
	entryAlias
)

// MapperEntry is either a mapper function or an alias naming another entry of
// the same table.
type MapperEntry struct {
	kind  entryKind
	fn    ParameterMapper
	alias string
}

// Direct creates an entry holding fn. A nil fn maps to Passthrough.
func Direct(fn ParameterMapper) MapperEntry {
	if fn == nil {
		fn = Passthrough
	}
	return MapperEntry{kind: entryDirect, fn: fn}
}

// Alias creates an entry delegating to the entry registered under name.
func Alias(name string) MapperEntry {
	return MapperEntry{kind: entryAlias, alias: name}
}

// IsAlias reports whether the entry delegates to another entry.
func (e MapperEntry) IsAlias() bool {
	return e.kind == entryAlias
}

// Target returns the aliased entry name, empty for direct entries.
func (e MapperEntry) Target() string {
	return e.alias
}

// MapperTable maps rule names to mapper entries.
//
// Resolution follows at most one alias. A missing rule or a missing alias
// target falls back to the entry registered under the table's fallback name.
type MapperTable struct {
	mu       sync.RWMutex
	entries  map[string]MapperEntry
	fallback string
}

// NewMapperTable creates a table whose unresolved lookups use the entry named fallback.
func NewMapperTable(fallback string, entries map[string]MapperEntry) *MapperTable {
	t := &MapperTable{
		entries:  make(map[string]MapperEntry, len(entries)),
		fallback: fallback,
	}
	maps.Copy(t.entries, entries)
	return t
}

// Set inserts or replaces the entry for name.
func (t *MapperTable) Set(name string, e MapperEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = e
}

// Lookup returns the raw entry for name without resolving aliases.
func (t *MapperTable) Lookup(name string) (MapperEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[name]
	return e, ok
}

// Resolve returns the mapper function for rule name.
func (t *MapperTable) Resolve(name string) (ParameterMapper, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[name]
	if !ok {
		return t.resolveFallback(name)
	}
	if !e.IsAlias() {
		return e.fn, nil
	}

	target, ok := t.entries[e.alias]
	if !ok {
		return t.resolveFallback(name)
	}
	if target.IsAlias() {
		return nil, fmt.Errorf("%w: %q -> %q -> %q", ErrAliasChain, name, e.alias, target.alias)
	}
	return target.fn, nil
}

func (t *MapperTable) resolveFallback(name string) (ParameterMapper, error) {
	e, ok := t.entries[t.fallback]
	if !ok || e.IsAlias() {
		return nil, fmt.Errorf("%w: rule %q and fallback %q", ErrUnknownMapper, name, t.fallback)
	}
	return e.fn, nil
}

// NameTable renames neutral rules to a plugin's vocabulary.
// Unmapped rules keep their name.
type NameTable struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewNameTable creates a table from rule -> plugin rule name pairs.
func NewNameTable(names map[string]string) *NameTable {
	t := &NameTable{names: make(map[string]string, len(names))}
	maps.Copy(t.names, names)
	return t
}

// Name returns the plugin name of rule.
func (t *NameTable) Name(rule string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n, ok := t.names[rule]; ok {
		return n
	}
	return rule
}

// Set maps rule to pluginName.
func (t *NameTable) Set(rule, pluginName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.names[rule] = pluginName
}
