package repository

import "sync"

// Hub fans a collection's current snapshot out to its subscribers.
// Both store variants publish here after every local mutation, which
// is what makes the websocket feed see its own writes; the document
// variant is the one meant to serve multiple clients.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func([]Document)
}

func NewHub() *Hub {
	return &Hub{subs: map[string]map[int]func([]Document){}}
}

// Subscribe registers fn for a collection. The caller must invoke the
// returned func when the consumer goes away, or the callback keeps
// firing against released state.
func (h *Hub) Subscribe(col Collection, fn func([]Document)) func() {
	h.mu.Lock()
	if h.subs[col.Name] == nil {
		h.subs[col.Name] = map[int]func([]Document){}
	}
	id := h.next
	h.next++
	h.subs[col.Name][id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs[col.Name], id)
		h.mu.Unlock()
	}
}

// Publish delivers docs to every subscriber of the collection.
// Callbacks run on the publishing goroutine, outside the lock.
func (h *Hub) Publish(col Collection, docs []Document) {
	h.mu.Lock()
	fns := make([]func([]Document), 0, len(h.subs[col.Name]))
	for _, fn := range h.subs[col.Name] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(docs)
	}
}
