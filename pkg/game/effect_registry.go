// Package game provides the collaborators around the simulation core:
// the effect-asset registry and persisted tool settings.
package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gonewx/ember/internal/effect"
)

// EffectRegistry stores shared effect definitions by handle. It is the
// effect-asset provider consumed by the bind system: spawners reference
// definitions by ID and receive a private copy once the ID resolves.
//
// Registered definitions are treated as immutable templates.
type EffectRegistry struct {
	mu      sync.RWMutex
	effects map[string]*effect.Definition
}

// NewEffectRegistry creates an empty registry.
func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{effects: make(map[string]*effect.Definition)}
}

// Register stores a definition under the given handle, replacing any
// previous definition with that handle.
func (r *EffectRegistry) Register(id string, def *effect.Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects[id] = def
}

// Effect resolves a handle to its shared template.
func (r *EffectRegistry) Effect(id string) (*effect.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.effects[id]
	return def, ok
}

// Names returns all registered handles in sorted order.
func (r *EffectRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.effects))
	for id := range r.effects {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// LoadDir registers every *.yaml effect file in dir, keyed by file name
// without extension. A malformed file is logged and skipped so one bad
// asset cannot take down the rest of the set; the error returned is only
// for an unreadable directory.
func (r *EffectRegistry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("effect registry: read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		def, err := effect.ParseFile(path)
		if err != nil {
			log.Printf("[EffectRegistry] skipping %s: %v", path, err)
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		r.Register(id, def)
	}
	return nil
}
