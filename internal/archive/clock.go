package archive

import (
	"fmt"
	"time"

	"github.com/claes/quizweb/internal/model"
)

// DefaultZone is the civil time zone the daily puzzles roll over in.
const DefaultZone = "Asia/Seoul"

// Clock reports the current archive day.
type Clock interface {
	Today() model.DateKey
}

// ZoneClock is a Clock bound to a fixed location.
type ZoneClock struct {
	loc *time.Location
	now func() time.Time
}

// NewZoneClock loads the named location. An empty name selects DefaultZone.
func NewZoneClock(name string) (*ZoneClock, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Seoul has no DST; fall back to a fixed offset when tzdata is missing.
		if name != DefaultZone {
			return nil, fmt.Errorf("load location %q: %w", name, err)
		}
		loc = time.FixedZone("KST", 9*60*60)
	}
	return &ZoneClock{loc: loc, now: time.Now}, nil
}

// Today returns the current day in the clock's location.
func (c *ZoneClock) Today() model.DateKey {
	return KeyOf(c.now().In(c.loc))
}

// FixedClock always reports the same day. Useful in tests and for replays.
type FixedClock model.DateKey

// Today implements Clock.
func (c FixedClock) Today() model.DateKey { return model.DateKey(c) }
