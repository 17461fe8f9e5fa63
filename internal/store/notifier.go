// Package store holds the client-side commerce state: session, cart,
// address book, favorites, and the derived account stats. Each store owns
// its backing state; callers mutate only through the store's methods and
// observe changes through Subscribe.
package store

import "sync"

// Notifier is a minimal pub-sub used by every store to signal state changes.
// Callbacks run outside the notifier's lock and must not assume any ordering
// between subscribers.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// Subscribe registers fn and returns an unsubscribe func. Unsubscribing
// twice is a no-op.
func (n *Notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

func (n *Notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
