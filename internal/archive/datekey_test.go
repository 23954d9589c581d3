package archive

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claes/quizweb/internal/model"
)

func randomDay(r *rand.Rand) time.Time {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, r.Intn(2000))
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		in      string
		want    model.DateKey
		wantErr bool
	}{
		{in: "2024-01-15", want: "2024-01-15"},
		{in: " 2024-12-31 ", want: "2024-12-31"},
		{in: "2024-1-15", wantErr: true},
		{in: "2024-02-30", wantErr: true},
		{in: "20240115", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateKey(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDateKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompactRoundTrip(t *testing.T) {
	assert.Equal(t, "20240115", Compact("2024-01-15"))

	d, err := ParseCompact("20240115")
	require.NoError(t, err)
	assert.Equal(t, model.DateKey("2024-01-15"), d)

	_, err = ParseCompact("2024011")
	assert.ErrorIs(t, err, ErrInvalidDateKey)
	_, err = ParseCompact("20241301")
	assert.ErrorIs(t, err, ErrInvalidDateKey)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "2024년 1월 5일", Label("2024-01-05"))
	assert.Equal(t, "2023년 12월 31일", Label("2023-12-31"))
	assert.Equal(t, "junk", Label("junk"))
}

func TestZoneClock_UsesConfiguredZone(t *testing.T) {
	c, err := NewZoneClock("")
	require.NoError(t, err)
	// 2024-05-31 20:00 UTC is already June 1st in Seoul.
	c.now = func() time.Time { return time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC) }
	assert.Equal(t, model.DateKey("2024-06-01"), c.Today())

	_, err = NewZoneClock("Not/AZone")
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	assert.Equal(t, model.DateKey("2024-06-01"), FixedClock("2024-06-01").Today())
}
