package browse

import (
	"strings"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/model"
)

// Links builds the outbound URLs of the game pages under a base path.
type Links struct {
	Base string // e.g. "/games"
}

func (l Links) base() string {
	return "/" + strings.Trim(l.Base, "/")
}

// Hub is the game hub URL.
func (l Links) Hub() string { return l.base() }

// Archive is the archive carousel URL of a game.
func (l Links) Archive(slug string) string {
	return l.base() + "/" + slug + "/archive"
}

// Item is the play URL of one archive day: {base}/{slug}/{YYYYMMDD}.
func (l Links) Item(slug string, d model.DateKey) string {
	return l.base() + "/" + slug + "/" + archive.Compact(d)
}

// Play is the hub's play link: the configured URL, or today's item.
func (l Links) Play(g model.Game, today model.DateKey) string {
	if g.PlayURL != "" {
		return g.PlayURL
	}
	return l.Item(g.Slug, today)
}
