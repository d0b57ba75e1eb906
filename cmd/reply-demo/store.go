package main

import (
	"iter"
	"slices"
	"sync"
)

type order struct {
	ID   int    `json:"id" xml:"id"`
	Item string `json:"item" xml:"item"`
}

// orderStore keeps orders in memory, ordered by ID.
type orderStore struct {
	mu     sync.RWMutex
	next   int
	orders []order
}

func newOrderStore(items ...string) *orderStore {
	s := new(orderStore)
	for _, item := range items {
		s.Add(item)
	}

	return s
}

// Add stores a new order for item.
func (s *orderStore) Add(item string) order {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	o := order{ID: s.next, Item: item}
	s.orders = append(s.orders, o)
	return o
}

// All yields a snapshot of the stored orders.
func (s *orderStore) All() iter.Seq[order] {
	s.mu.RLock()
	snap := slices.Clone(s.orders)
	s.mu.RUnlock()

	return slices.Values(snap)
}

// Delete removes the order with id, reporting whether it existed.
func (s *orderStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.orders, func(o order) bool { return o.ID == id })
	if i < 0 {
		return false
	}

	s.orders = slices.Delete(s.orders, i, i+1)
	return true
}

// Get finds the order with id.
func (s *orderStore) Get(id int) (order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.orders, func(o order) bool { return o.ID == id })
	if i < 0 {
		return order{}, false
	}

	return s.orders[i], true
}

// Stream sends a snapshot of the stored orders on the returned channel, closed after the last.
func (s *orderStore) Stream() <-chan order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch := make(chan order, len(s.orders))
	for _, o := range s.orders {
		ch <- o
	}
	close(ch)

	return ch
}
