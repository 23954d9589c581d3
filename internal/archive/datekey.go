// Package archive holds the date-key format and the derivation of the
// archive date sequence.
package archive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claes/quizweb/internal/model"
)

const (
	keyLayout     = "2006-01-02"
	compactLayout = "20060102"
)

// ErrInvalidDateKey is returned when a string is not a valid YYYY-MM-DD day.
var ErrInvalidDateKey = errors.New("invalid date key")

// ParseDateKey validates s as a zero-padded YYYY-MM-DD calendar day.
func ParseDateKey(s string) (model.DateKey, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(keyLayout) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	if _, err := time.Parse(keyLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return model.DateKey(s), nil
}

// ParseCompact converts a YYYYMMDD link segment back into a date key.
func ParseCompact(s string) (model.DateKey, error) {
	if len(s) != len(compactLayout) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	t, err := time.Parse(compactLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return model.DateKey(t.Format(keyLayout)), nil
}

// Compact strips the separators: "2024-01-15" becomes "20240115".
func Compact(d model.DateKey) string {
	return strings.ReplaceAll(string(d), "-", "")
}

// Label formats d for display, e.g. "2024년 1월 15일".
// Keys that do not parse are returned unchanged.
func Label(d model.DateKey) string {
	t, err := time.Parse(keyLayout, string(d))
	if err != nil {
		return string(d)
	}
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}

// KeyOf returns the date key of t in t's own location.
func KeyOf(t time.Time) model.DateKey {
	return model.DateKey(t.Format(keyLayout))
}
