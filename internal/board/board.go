package board

import (
	"fmt"
	"sync"
	"time"

	"github.com/muralboard/mural/internal/domain"
)

// Board is the in-memory reminder collection and the single source of
// truth for reads. Persistence is written through best-effort; on startup
// the board is hydrated from the store.
//
// Reminder order is user data (cards are drag-reorderable), so the board
// keeps an explicit order slice next to the lookup map.
type Board struct {
	mu         sync.RWMutex
	reminders  map[string]*domain.Reminder
	order      []string
	categories map[string]*domain.Category
	name       string    // project name, carried through export bundles
	lastSync   time.Time // timestamp of last store hydration
}

// New creates an empty board.
func New() *Board {
	return &Board{
		reminders:  make(map[string]*domain.Reminder),
		categories: make(map[string]*domain.Category),
	}
}

// Hydrate replaces the whole board content. Reminders not mentioned in
// order are appended in input order, so a missing or stale order list
// degrades gracefully instead of dropping cards.
func (b *Board) Hydrate(reminders []*domain.Reminder, categories []*domain.Category, order []string, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reminders = make(map[string]*domain.Reminder, len(reminders))
	for _, r := range reminders {
		b.reminders[r.ID] = r.Clone()
	}

	b.order = b.order[:0]
	seen := make(map[string]bool, len(reminders))
	for _, id := range order {
		if _, ok := b.reminders[id]; ok && !seen[id] {
			b.order = append(b.order, id)
			seen[id] = true
		}
	}
	for _, r := range reminders {
		if !seen[r.ID] {
			b.order = append(b.order, r.ID)
			seen[r.ID] = true
		}
	}

	b.categories = make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		cc := *c
		b.categories[c.ID] = &cc
	}

	b.name = name
	b.lastSync = time.Now()
}

// Put adds or replaces a reminder. New reminders go to the end of the
// board order.
func (b *Board) Put(r *domain.Reminder) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.reminders[r.ID]; !exists {
		b.order = append(b.order, r.ID)
	}
	b.reminders[r.ID] = r.Clone()
}

// Get retrieves a reminder by ID. The returned value is a clone; callers
// mutate it freely and write back through Put.
func (b *Board) Get(id string) (*domain.Reminder, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.reminders[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// All returns every reminder in board order, as clones.
func (b *Board) All() []*domain.Reminder {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*domain.Reminder, 0, len(b.order))
	for _, id := range b.order {
		if r, ok := b.reminders[id]; ok {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Delete removes a reminder from the board.
func (b *Board) Delete(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.reminders[id]; !ok {
		return false
	}
	delete(b.reminders, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Reorder replaces the board order. The new order must be a permutation
// of the current reminder IDs.
func (b *Board) Reorder(ids []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(ids) != len(b.reminders) {
		return fmt.Errorf("order has %d ids, board has %d reminders", len(ids), len(b.reminders))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := b.reminders[id]; !ok {
			return fmt.Errorf("unknown reminder id in order: %s", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate reminder id in order: %s", id)
		}
		seen[id] = true
	}

	b.order = append(b.order[:0], ids...)
	return nil
}

// Order returns the current board order.
func (b *Board) Order() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Merge adds reminders that do not exist yet, preserving their input
// order. Existing IDs are left untouched (the recurrence scheduler relies
// on this: merging generated occurrences never clobbers user edits).
func (b *Board) Merge(reminders []*domain.Reminder) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	added := 0
	for _, r := range reminders {
		if _, exists := b.reminders[r.ID]; exists {
			continue
		}
		b.reminders[r.ID] = r.Clone()
		b.order = append(b.order, r.ID)
		added++
	}
	return added
}

// Count returns the number of reminders on the board.
func (b *Board) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.reminders)
}

// ─────────────────────────────────────────────────────────────────
// Category methods
// ─────────────────────────────────────────────────────────────────

// PutCategory adds or replaces a category.
func (b *Board) PutCategory(c *domain.Category) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cc := *c
	b.categories[c.ID] = &cc
}

// GetCategory retrieves a category by ID.
func (b *Board) GetCategory(id string) (*domain.Category, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.categories[id]
	if !ok {
		return nil, false
	}
	cc := *c
	return &cc, true
}

// Categories returns all categories.
func (b *Board) Categories() []*domain.Category {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*domain.Category, 0, len(b.categories))
	for _, c := range b.categories {
		cc := *c
		out = append(out, &cc)
	}
	return out
}

// DeleteCategory removes a category and unsets the reference on every
// reminder pointing at it. Reminders themselves are never deleted here.
// Returns the detached reminder IDs.
func (b *Board) DeleteCategory(id string) ([]string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.categories[id]; !ok {
		return nil, false
	}
	delete(b.categories, id)

	var detached []string
	for _, r := range b.reminders {
		if r.CategoryID == id {
			r.CategoryID = ""
			detached = append(detached, r.ID)
		}
	}
	return detached, true
}

// ─────────────────────────────────────────────────────────────────
// Project metadata
// ─────────────────────────────────────────────────────────────────

// Name returns the project name.
func (b *Board) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.name
}

// SetName sets the project name.
func (b *Board) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.name = name
}

// LastSync returns the timestamp of the last store hydration.
func (b *Board) LastSync() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lastSync
}
