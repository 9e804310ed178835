package uval

import (
	"sync"

	"github.com/dmitrymomot/uval/adaptor"
)

// Namespace holds the adaptor registered under one identifier together with
// free-form values adaptors may keep between setup runs.
type Namespace struct {
	mu      sync.RWMutex
	adaptor adaptor.Adaptor
	values  map[string]any
}

func newNamespace() *Namespace {
	return &Namespace{values: make(map[string]any)}
}

// Attach sets the adaptor of the namespace, replacing any previous one.
func (n *Namespace) Attach(a adaptor.Adaptor) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.adaptor = a
}

// Adaptor returns the attached adaptor, or nil.
func (n *Namespace) Adaptor() adaptor.Adaptor {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.adaptor
}

// Set stores value under key.
func (n *Namespace) Set(key string, value any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.values[key] = value
}

// Get returns the value stored under key.
func (n *Namespace) Get(key string) (any, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.values[key]
	return v, ok
}
