package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/claes/quizweb/internal/carousel"
	"github.com/claes/quizweb/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingProvider struct{ calls atomic.Int32 }

func (p *countingProvider) ArchiveStructure(ctx context.Context, key string) (model.ArchiveStructure, error) {
	p.calls.Add(1)
	return model.ArchiveStructure{Years: []model.Year{{Year: "2024", Months: []model.Month{
		{Month: "01", Dates: []model.DateKey{"2024-01-01", "2024-01-02"}},
	}}}}, nil
}

func newTestManager(p carousel.Provider, ttl time.Duration) *Manager {
	return NewManager(func(key string, sig carousel.Signal) *carousel.Component {
		return carousel.New(p, key, carousel.WithSignal(sig))
	}, ttl, nil)
}

func TestManager_GetCreatesAndReuses(t *testing.T) {
	m := newTestManager(&countingProvider{}, time.Minute)
	defer m.Close()

	s := m.Get("")
	require.NotEmpty(t, s.ID)
	assert.Same(t, s, m.Get(s.ID))
	assert.NotSame(t, s, m.Get("unknown"))
	assert.Equal(t, 2, m.Len())
}

func TestManager_CarouselMountedOncePerGame(t *testing.T) {
	p := &countingProvider{}
	m := newTestManager(p, time.Minute)
	defer m.Close()
	s := m.Get("")

	ctx, cancel := context.WithCancel(context.Background())
	c := m.Carousel(ctx, s, "G")
	cancel()
	assert.Same(t, c, m.Carousel(context.Background(), s, "G"))
	require.True(t, c.Wait(context.Background()))

	assert.Equal(t, int32(1), p.calls.Load())
	assert.Equal(t, carousel.Populated, c.State(), "request cancellation must not abort the fetch")

	c.Next()
	assert.Equal(t, 1, m.Carousel(context.Background(), s, "G").Index())
}

func TestManager_SweepExpiresIdleSessions(t *testing.T) {
	m := newTestManager(&countingProvider{}, time.Minute)
	defer m.Close()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	old := m.Get("")
	c := m.Carousel(context.Background(), old, "G")
	require.True(t, c.Wait(context.Background()))
	require.Equal(t, 1, old.Scroll().Subscribers())

	now = now.Add(45 * time.Second)
	fresh := m.Get("")
	now = now.Add(30 * time.Second)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
	assert.Same(t, fresh, m.Get(fresh.ID))
	assert.Equal(t, 0, old.Scroll().Subscribers(), "teardown must release the scroll subscription")
}

func TestManager_RunStopsAndCloses(t *testing.T) {
	m := newTestManager(&countingProvider{}, time.Minute)
	s := m.Get("")
	c := m.Carousel(context.Background(), s, "G")
	require.True(t, c.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, s.Scroll().Subscribers())
}

func TestManager_CarouselOnDeadSessionIsInert(t *testing.T) {
	p := &countingProvider{}
	m := newTestManager(p, time.Minute)
	held := m.Get("")
	m.Close()

	c := m.Carousel(context.Background(), held, "G")
	assert.Equal(t, carousel.Loading, c.State())
	assert.Equal(t, 0, held.Scroll().Subscribers())

	late := m.Get("")
	c = m.Carousel(context.Background(), late, "G")
	c.Mount(context.Background())
	assert.Equal(t, 0, late.Scroll().Subscribers())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, int32(0), p.calls.Load())
}
