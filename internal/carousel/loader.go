package carousel

import (
	"context"

	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/model"
)

// Provider returns the archive structure of one game.
type Provider interface {
	ArchiveStructure(ctx context.Context, gameKey string) (model.ArchiveStructure, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, gameKey string) (model.ArchiveStructure, error)

// ArchiveStructure implements Provider.
func (f ProviderFunc) ArchiveStructure(ctx context.Context, gameKey string) (model.ArchiveStructure, error) {
	return f(ctx, gameKey)
}

// load runs once per mount. A failure is logged and leaves the structure
// empty. A result arriving after Teardown is dropped. The loading flag is
// cleared on every path.
func (c *Component) load(ctx context.Context) {
	s, err := c.provider.ArchiveStructure(ctx, c.gameKey)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(c.settled)
	c.loading = false

	if !c.live {
		c.logger.Debug("discarding archive result after teardown", zap.String("game", c.gameKey))
		return
	}
	if err != nil {
		c.logger.Error("failed to load archive", zap.String("game", c.gameKey), zap.Error(err))
		return
	}
	c.structure = s
	c.nav.Resize(len(archive.Flatten(s)))
	c.logger.Debug("archive loaded",
		zap.String("game", c.gameKey),
		zap.Int("years", len(s.Years)),
		zap.Int("dates", c.nav.Len()),
	)
}
