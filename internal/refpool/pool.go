// Package refpool implements Component B, the Reference Pool
// (SPEC_FULL §4.B): a per-entity append-only store of emitted records,
// indexed by ID, supporting sampled ID selection under a named
// distribution and a recency-biased window. It is the single mutable
// structure shared across the Correlation Orchestrator's per-entity tasks
// (SPEC_FULL §5) — appends and reads of *different* entities must never
// block one another, so each entity gets its own lock rather than one
// pool-wide lock.
package refpool

import (
	"sync"

	"go-corrgen/internal/model"
)

// DefaultRecencyWindow is the recency ring's capacity. The spec leaves the
// exact size implementation-defined (spec.md §9 Open Questions); 256 is
// comfortably above the "recent" window any of the example configs imply
// and keeps per-entity memory bounded.
const DefaultRecencyWindow = 256

type entityPool struct {
	mu      sync.RWMutex
	order   []string      // insertion-ordered IDs
	records map[string]*model.Record
	ring    *recencyRing // only populated when trackRecent is true
}

func newEntityPool(trackRecent bool) *entityPool {
	ep := &entityPool{records: make(map[string]*model.Record)}
	if trackRecent {
		ep.ring = newRecencyRing(DefaultRecencyWindow)
	}
	return ep
}

// Pool holds one entityPool per entity name.
type Pool struct {
	mu       sync.RWMutex // guards the entities map itself, not its contents
	entities map[string]*entityPool
	track    map[string]bool
}

// NewPool constructs an empty pool. track names the entities that should
// maintain a recency ring (EntityConfig.TrackRecent), since maintaining a
// ring costs a copy on every append and only entities that are actually
// sampled with recency_bias need to pay for it.
func NewPool(track map[string]bool) *Pool {
	return &Pool{entities: make(map[string]*entityPool), track: track}
}

func (p *Pool) entityFor(entity string) *entityPool {
	p.mu.RLock()
	ep, ok := p.entities[entity]
	p.mu.RUnlock()
	if ok {
		return ep
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if ep, ok := p.entities[entity]; ok {
		return ep
	}
	ep = newEntityPool(p.track[entity])
	p.entities[entity] = ep
	return ep
}

// Append inserts a fully built record into entity's pool, indexed by the
// value bound to idField. It is O(1) and safe for concurrent use alongside
// appends to other entities and reads of any entity (SPEC_FULL §4.B, §5).
func (p *Pool) Append(entity, idField string, record *model.Record) error {
	idVal, ok := record.Get(idField)
	if !ok {
		return &model.ConfigError{Entity: entity, Field: idField, Msg: "record has no id field bound"}
	}
	id := idVal.AsString()

	ep := p.entityFor(entity)
	ep.mu.Lock()
	defer ep.mu.Unlock()

	if _, exists := ep.records[id]; exists {
		return &model.ConfigError{Entity: entity, Field: idField, Msg: "duplicate id " + id}
	}
	clone := record.Clone()
	ep.records[id] = clone
	ep.order = append(ep.order, id)
	if ep.ring != nil {
		ep.ring.push(id)
	}
	return nil
}

// Count returns the number of records currently held for entity.
func (p *Pool) Count(entity string) int {
	ep := p.entityFor(entity)
	ep.mu.RLock()
	defer ep.mu.RUnlock()
	return len(ep.order)
}

// Lookup returns the full parent record for id, satisfying
// fieldgen.ReferenceLookup.
func (p *Pool) Lookup(entity, id string) (*model.Record, bool) {
	ep := p.entityFor(entity)
	ep.mu.RLock()
	defer ep.mu.RUnlock()
	rec, ok := ep.records[id]
	return rec, ok
}
