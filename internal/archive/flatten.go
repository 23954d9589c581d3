package archive

import (
	"sort"

	"github.com/claes/quizweb/internal/model"
)

// Flatten concatenates every day of s in structure order and returns them
// newest first. The fixed-width key format makes descending string order
// the same as descending chronological order. Duplicates are kept.
func Flatten(s model.ArchiveStructure) []model.DateKey {
	n := 0
	for _, y := range s.Years {
		for _, m := range y.Months {
			n += len(m.Dates)
		}
	}
	out := make([]model.DateKey, 0, n)
	for _, y := range s.Years {
		for _, m := range y.Months {
			out = append(out, m.Dates...)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// Group builds a structure from a flat list of keys, years and months in
// ascending order. Invalid keys are skipped.
func Group(dates []model.DateKey) model.ArchiveStructure {
	sorted := make([]model.DateKey, 0, len(dates))
	for _, d := range dates {
		if k, err := ParseDateKey(string(d)); err == nil {
			sorted = append(sorted, k)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var s model.ArchiveStructure
	for _, d := range sorted {
		year, month := string(d[:4]), string(d[5:7])
		if n := len(s.Years); n == 0 || s.Years[n-1].Year != year {
			s.Years = append(s.Years, model.Year{Year: year})
		}
		y := &s.Years[len(s.Years)-1]
		if n := len(y.Months); n == 0 || y.Months[n-1].Month != month {
			y.Months = append(y.Months, model.Month{Month: month})
		}
		m := &y.Months[len(y.Months)-1]
		m.Dates = append(m.Dates, d)
	}
	return s
}
