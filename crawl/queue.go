// Package crawl — bounded BFS frontier with deduplication.
package crawl

// Queue is a FIFO of URLs that admits each URL once and at most limit URLs
// in total. A limit of 0 or less means unbounded.
type Queue struct {
	items []string
	seen  map[string]struct{}
	next  int
	limit int
}

// NewQueue creates an empty Queue admitting at most limit URLs.
func NewQueue(limit int) *Queue {
	return &Queue{
		seen:  make(map[string]struct{}),
		limit: limit,
	}
}

// Add enqueues a URL unless it was seen before or the queue is full.
// It reports whether the URL was admitted.
func (q *Queue) Add(url string) bool {
	if _, ok := q.seen[url]; ok || q.Full() {
		return false
	}
	q.seen[url] = struct{}{}
	q.items = append(q.items, url)
	return true
}

// Full reports whether the queue has admitted its limit of URLs.
func (q *Queue) Full() bool {
	return q.limit > 0 && len(q.items) >= q.limit
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.next < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	url := q.items[q.next]
	q.next++
	return url
}

// Len returns the number of admitted URLs.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns every admitted URL in discovery order.
func (q *Queue) All() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}
