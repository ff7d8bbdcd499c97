package routing

// openSet is a concrete-typed min-heap for the A* open set, avoiding
// the interface-boxing cost of container/heap.
//
// Ordering is (priority, connID) so that ties in priority break on
// lexicographic connector id, matching the search's tie-break rule.
type openSet struct {
	items []openItem
}

type openItem struct {
	priority int64
	connID   string
}

func less(a, b openItem) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.connID < b.connID
}

func (h *openSet) Len() int { return len(h.items) }

func (h *openSet) Push(priority int64, connID string) {
	h.items = append(h.items, openItem{priority, connID})
	h.siftUp(len(h.items) - 1)
}

func (h *openSet) Pop() openItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *openSet) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *openSet) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
