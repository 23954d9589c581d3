// Package carousel implements the archive carousel: a one-shot archive
// loader, the derived newest-first day sequence, and a bounded cursor over it.
package carousel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/model"
)

// Component is one mounted archive carousel for a single game.
// It is safe for concurrent use.
type Component struct {
	provider Provider
	gameKey  string
	logger   *zap.Logger
	signal   Signal

	mu        sync.Mutex
	structure model.ArchiveStructure
	mounted   bool
	live      bool
	done      bool
	loading   bool
	nav       Navigator
	scrollTop bool

	cancel      context.CancelFunc
	unsubscribe func()
	settled     chan struct{}
	teardown    sync.Once
}

// Option configures a Component.
type Option func(*Component)

// WithLogger sets the sink for load failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Component) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSignal attaches a scroll signal observed while mounted.
func WithSignal(s Signal) Option {
	return func(c *Component) { c.signal = s }
}

// New returns an unmounted component for gameKey.
func New(p Provider, gameKey string, opts ...Option) *Component {
	c := &Component{
		provider: p,
		gameKey:  gameKey,
		logger:   zap.NewNop(),
		settled:  make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Mount starts the archive fetch and subscribes to the scroll signal.
// A signal that remembers its last value seeds the scroll-to-top state.
// Only the first call has an effect.
func (c *Component) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted || c.done {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.live = true
	c.loading = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	if c.signal != nil {
		if l, ok := c.signal.(interface{ Last() float64 }); ok {
			c.onScroll(l.Last())
		}
		unsubscribe := c.signal.Subscribe(c.onScroll)
		c.mu.Lock()
		if c.live {
			c.unsubscribe, unsubscribe = unsubscribe, nil
		}
		c.mu.Unlock()
		if unsubscribe != nil {
			// torn down while subscribing
			unsubscribe()
		}
	}

	go c.load(ctx)
}

// Teardown releases the scroll subscription and abandons a pending fetch.
// It is idempotent and never blocks on the fetch. A torn-down component
// cannot be mounted again.
func (c *Component) Teardown() {
	c.teardown.Do(func() {
		c.mu.Lock()
		c.live = false
		c.done = true
		cancel, unsubscribe := c.cancel, c.unsubscribe
		c.unsubscribe = nil
		c.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		if cancel != nil {
			cancel()
		}
	})
}

// Settled is closed once the fetch has finished, successfully or not.
func (c *Component) Settled() <-chan struct{} { return c.settled }

// Wait blocks until the fetch settles or ctx ends and reports which happened.
func (c *Component) Wait(ctx context.Context) bool {
	select {
	case <-c.settled:
		return true
	case <-ctx.Done():
		return false
	}
}

// Loading reports whether the fetch is still outstanding.
func (c *Component) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.mounted || c.loading
}

// State returns the current render state.
func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked(c.datesLocked())
}

// Dates returns the newest-first day sequence derived from the loaded archive.
func (c *Component) Dates() []model.DateKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.datesLocked()
}

// Prev moves the cursor one day newer and returns the new index.
func (c *Component) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.datesLocked()
	c.nav.Prev()
	return c.nav.Index()
}

// Next moves the cursor one day older and returns the new index.
func (c *Component) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.datesLocked()
	c.nav.Next()
	return c.nav.Index()
}

// Index returns the cursor position.
func (c *Component) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.datesLocked()
	return c.nav.Index()
}

// ScrollTop reports whether the scroll-to-top control should be visible.
func (c *Component) ScrollTop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrollTop
}

// Snapshot is a consistent read of everything a render needs.
type Snapshot struct {
	GameKey   string
	State     State
	Dates     []model.DateKey
	Index     int
	CanPrev   bool
	CanNext   bool
	ScrollTop bool
}

// Snapshot captures the component state under a single lock.
func (c *Component) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	dates := c.datesLocked()
	return Snapshot{
		GameKey:   c.gameKey,
		State:     c.stateLocked(dates),
		Dates:     dates,
		Index:     c.nav.Index(),
		CanPrev:   c.nav.CanPrev(),
		CanNext:   c.nav.CanNext(),
		ScrollTop: c.scrollTop,
	}
}

// datesLocked recomputes the sequence and clamps the cursor to it.
func (c *Component) datesLocked() []model.DateKey {
	dates := archive.Flatten(c.structure)
	c.nav.Resize(len(dates))
	return dates
}

func (c *Component) stateLocked(dates []model.DateKey) State {
	switch {
	case !c.mounted || c.loading:
		return Loading
	case len(c.structure.Years) == 0 || len(dates) == 0:
		return Empty
	default:
		return Populated
	}
}

func (c *Component) onScroll(offset float64) {
	c.mu.Lock()
	c.scrollTop = ShowScrollTop(offset)
	c.mu.Unlock()
}
