package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/model"
)

// Seed is the portable archive file: game key to its days.
type Seed map[string][]model.DateKey

// LoadSeed reads a seed file. An empty file is an empty Seed. Game keys
// must be non-empty; days are validated later by Import.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	seed := Seed{}
	if len(bytes.TrimSpace(data)) == 0 {
		return seed, nil
	}
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	if _, ok := seed[""]; ok {
		return nil, fmt.Errorf("decode seed %s: empty game key", path)
	}
	return seed, nil
}

// SaveSeed writes s to path with each game's days sorted and deduplicated,
// so repeated exports of the same archive are byte-identical. The file is
// replaced atomically.
func SaveSeed(path string, s Seed) error {
	out := make(Seed, len(s))
	for game, dates := range s {
		days := slices.Clone(dates)
		slices.Sort(days)
		out[game] = slices.Compact(days)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create tmp: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write seed: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

// Import adds every day of seed and returns how many were new.
func (s *Store) Import(ctx context.Context, seed Seed) (int, error) {
	keys := make([]string, 0, len(seed))
	for k := range seed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := 0
	for _, k := range keys {
		n, err := s.AddDates(ctx, k, seed[k]...)
		if err != nil {
			return total, err
		}
		s.logger.Info("seeded archive", zap.String("game", k), zap.Int("added", n), zap.Int("given", len(seed[k])))
		total += n
	}
	return total, nil
}

// Export returns every stored day, grouped by game.
func (s *Store) Export(ctx context.Context) (Seed, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return nil, err
	}
	out := make(Seed, len(games))
	for _, g := range games {
		dates, err := s.Dates(ctx, g)
		if err != nil {
			return nil, err
		}
		out[g] = dates
	}
	return out, nil
}
