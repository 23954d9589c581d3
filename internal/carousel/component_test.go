package carousel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/claes/quizweb/internal/model"
)

var sample = model.ArchiveStructure{Years: []model.Year{
	{Year: "2023", Months: []model.Month{{Month: "12", Dates: []model.DateKey{"2023-12-31"}}}},
	{Year: "2024", Months: []model.Month{{Month: "01", Dates: []model.DateKey{"2024-01-01", "2024-03-05"}}}},
}}

// gatedProvider blocks until release is closed.
type gatedProvider struct {
	release chan struct{}
	result  model.ArchiveStructure
	err     error
	calls   int
}

func newGated(result model.ArchiveStructure, err error) *gatedProvider {
	return &gatedProvider{release: make(chan struct{}), result: result, err: err}
}

func (p *gatedProvider) ArchiveStructure(ctx context.Context, gameKey string) (model.ArchiveStructure, error) {
	p.calls++
	<-p.release
	return p.result, p.err
}

func waitSettled(t *testing.T, c *Component) {
	t.Helper()
	select {
	case <-c.Settled():
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not settle")
	}
}

func TestComponent_LoadingThenPopulated(t *testing.T) {
	p := newGated(sample, nil)
	c := New(p, "SIGNAL_DECODING")
	defer c.Teardown()

	assert.Equal(t, Loading, c.State())
	c.Mount(context.Background())
	assert.True(t, c.Loading())
	assert.Equal(t, Loading, c.State())

	close(p.release)
	waitSettled(t, c)

	assert.False(t, c.Loading())
	assert.Equal(t, Populated, c.State())
	assert.Equal(t, []model.DateKey{"2024-03-05", "2024-01-01", "2023-12-31"}, c.Dates())
	assert.Equal(t, 0, c.Index())
}

func TestComponent_FailureIsLoggedAndEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	p := newGated(model.ArchiveStructure{}, errors.New("boom"))
	c := New(p, "SIGNAL_DECODING", WithLogger(zap.New(core)))
	defer c.Teardown()

	c.Mount(context.Background())
	assert.True(t, c.Loading())
	close(p.release)
	waitSettled(t, c)

	assert.False(t, c.Loading())
	assert.Equal(t, Empty, c.State())
	assert.Empty(t, c.Dates())

	entries := logs.FilterMessage("failed to load archive").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "SIGNAL_DECODING", entries[0].ContextMap()["game"])
}

func TestComponent_ZeroYearsIsEmpty(t *testing.T) {
	c := New(ProviderFunc(func(context.Context, string) (model.ArchiveStructure, error) {
		return model.ArchiveStructure{}, nil
	}), "g")
	defer c.Teardown()
	c.Mount(context.Background())
	waitSettled(t, c)

	assert.Equal(t, Empty, c.State())
	// navigation on an empty archive must not panic or move
	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 0, c.Prev())
}

func TestComponent_YearsWithoutDatesIsEmpty(t *testing.T) {
	c := New(ProviderFunc(func(context.Context, string) (model.ArchiveStructure, error) {
		return model.ArchiveStructure{Years: []model.Year{{Year: "2024", Months: []model.Month{{Month: "01"}}}}}, nil
	}), "g")
	defer c.Teardown()
	c.Mount(context.Background())
	waitSettled(t, c)

	assert.Equal(t, Empty, c.State())
}

func TestComponent_FetchesOncePerLifetime(t *testing.T) {
	p := newGated(sample, nil)
	close(p.release)
	c := New(p, "g")
	defer c.Teardown()

	c.Mount(context.Background())
	c.Mount(context.Background())
	waitSettled(t, c)
	c.Snapshot()
	c.Dates()

	assert.Equal(t, 1, p.calls)
}

func TestComponent_NavigationBounds(t *testing.T) {
	p := newGated(sample, nil)
	close(p.release)
	c := New(p, "g")
	defer c.Teardown()
	c.Mount(context.Background())
	waitSettled(t, c)

	assert.Equal(t, 0, c.Prev())
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 2, c.Next())

	s := c.Snapshot()
	assert.Equal(t, 2, s.Index)
	assert.True(t, s.CanPrev)
	assert.False(t, s.CanNext)
	assert.Equal(t, Populated, s.State)
}

func TestComponent_LateResultDiscarded(t *testing.T) {
	p := newGated(sample, nil)
	c := New(p, "g")
	c.Mount(context.Background())
	c.Teardown()

	close(p.release)
	waitSettled(t, c)

	assert.Empty(t, c.Dates())
	assert.False(t, c.Loading())
}

func TestComponent_ScrollSubscriptionReleased(t *testing.T) {
	feed := NewFeed()
	p := newGated(sample, nil)
	close(p.release)
	c := New(p, "g", WithSignal(feed))
	c.Mount(context.Background())
	waitSettled(t, c)
	require.Equal(t, 1, feed.Subscribers())

	feed.Publish(120)
	assert.False(t, c.ScrollTop())
	feed.Publish(401)
	assert.True(t, c.ScrollTop())
	assert.Equal(t, Populated, c.State())

	c.Teardown()
	c.Teardown()
	assert.Equal(t, 0, feed.Subscribers())

	feed.Publish(0)
	assert.True(t, c.ScrollTop(), "torn-down component must not observe the signal")
}

func TestComponent_ScrollSeededFromFeed(t *testing.T) {
	feed := NewFeed()
	feed.Publish(800)
	p := newGated(sample, nil)
	close(p.release)
	c := New(p, "g", WithSignal(feed))
	defer c.Teardown()
	c.Mount(context.Background())

	assert.True(t, c.ScrollTop(), "a carousel mounted below the threshold line shows the control")
}

func TestComponent_TeardownBeforeMount(t *testing.T) {
	feed := NewFeed()
	c := New(newGated(sample, nil), "g", WithSignal(feed))
	c.Teardown()
	assert.Equal(t, 0, feed.Subscribers())
	assert.Equal(t, Loading, c.State())
}

func TestComponent_WaitHonoursContext(t *testing.T) {
	p := newGated(sample, nil)
	c := New(p, "g")
	c.Mount(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.False(t, c.Wait(ctx))

	close(p.release)
	assert.True(t, c.Wait(context.Background()))
	c.Teardown()
}
