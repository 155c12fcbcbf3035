package cascade

import (
	"time"

	"github.com/mwhitford/planline/internal/domain"
)

// Update is one pending mutation produced by a cascade. The EntityType tag
// tells the persistence layer which table the id belongs to.
type Update struct {
	EntityType domain.EntityType
	ID         string
	NewStart   time.Time
	NewEnd     time.Time
}

type updateKey struct {
	entityType domain.EntityType
	id         string
}

// batch collects pending updates, deduplicated by (entityType, id) with
// last write wins, preserving first-touch order.
type batch struct {
	order []updateKey
	items map[updateKey]Update
}

func newBatch() *batch {
	return &batch{items: make(map[updateKey]Update)}
}

func (b *batch) add(u Update) {
	key := updateKey{u.EntityType, u.ID}
	if _, seen := b.items[key]; !seen {
		b.order = append(b.order, key)
	}
	b.items[key] = u
}

func (b *batch) updates() []Update {
	out := make([]Update, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.items[key])
	}
	return out
}
