package load

// Queue is a FIFO of document sources that drops repeats.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues source if it hasn't been seen before.
func (q *Queue) Add(source string) {
	if q.seen[source] {
		return
	}
	q.seen[source] = true
	q.items = append(q.items, source)
}

// HasNext returns true if there are unprocessed sources.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed source and advances the pointer.
func (q *Queue) Next() string {
	source := q.items[q.idx]
	q.idx++
	return source
}

// Len returns the total number of unique sources seen.
func (q *Queue) Len() int {
	return len(q.seen)
}

// All returns every queued source in insertion order.
func (q *Queue) All() []string {
	return q.items
}
