package carousel

import "sync"

// ScrollTopThreshold is the vertical offset past which the scroll-to-top
// control is shown.
const ScrollTopThreshold = 400

// ShowScrollTop reports whether the scroll-to-top control is visible at offset.
func ShowScrollTop(offset float64) bool {
	return offset > ScrollTopThreshold
}

// Signal is an observable numeric value such as a viewport scroll offset.
type Signal interface {
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn func(float64)) (unsubscribe func())
}

// Feed is an in-process Signal. Publish delivers synchronously to every
// current subscriber.
type Feed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(float64)
	last   float64
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[int]func(float64))}
}

// Subscribe implements Signal.
func (f *Feed) Subscribe(fn func(float64)) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
}

// Publish records v and pushes it to all subscribers.
func (f *Feed) Publish(v float64) {
	f.mu.Lock()
	f.last = v
	fns := make([]func(float64), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Last returns the most recently published value.
func (f *Feed) Last() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Subscribers returns the number of live subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
