package server

import (
	"sync"

	"vcrc/deque"
	"vcrc/model"
)

// History keeps the last computed cycle results, shared by all connections.
type History struct {
	mu    sync.Mutex
	items *deque.ArrDeque[model.CycleResult]
}

func NewHistory(limit int) *History {
	return &History{items: deque.NewArrDeque[model.CycleResult](limit)}
}

// Add appends res and drops the oldest result beyond the limit.
func (h *History) Add(res model.CycleResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items.Push(res)
}

// Results returns the kept results, oldest first.
func (h *History) Results() []model.CycleResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.items.Items()
}
