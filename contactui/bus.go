package contactui

import (
	"context"
	"sync"

	"contactsui/contact"
)

type MutationKind string

const (
	Uploaded MutationKind = "uploaded"
	Created  MutationKind = "created"
	Deleted  MutationKind = "deleted"
	Updated  MutationKind = "updated"
)

// Mutation is the completion signal of a write. Err is set when the write
// failed; subscribers decide whether a failed write still needs a refresh.
type Mutation struct {
	Kind MutationKind
	ID   contact.ID
	Err  error
}

// Bus delivers mutations to subscribers synchronously, in subscription order.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(context.Context, Mutation)
	order  []int
}

func NewBus() *Bus {
	return &Bus{subs: map[int]func(context.Context, Mutation){}}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(context.Context, Mutation)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (b *Bus) Publish(ctx context.Context, m Mutation) {
	b.mu.Lock()
	fns := make([]func(context.Context, Mutation), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ctx, m)
	}
}
