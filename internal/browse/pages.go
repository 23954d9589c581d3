// Package browse derives the page view models from catalog and carousel state.
package browse

import (
	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/carousel"
	"github.com/claes/quizweb/internal/catalog"
	"github.com/claes/quizweb/internal/model"
)

// ArchiveOptions are the per-request inputs of BuildArchivePage.
type ArchiveOptions struct {
	Links         Links
	Today         model.DateKey
	QuestionCount int
}

// BuildArchivePage renders a carousel snapshot for game into a view model.
// Items and the current item are only set in the populated state.
func BuildArchivePage(game model.Game, snap carousel.Snapshot, opts ArchiveOptions) model.ArchivePage {
	page := model.ArchivePage{
		Game:      game,
		State:     snap.State.String(),
		TodayHref: opts.Links.Item(game.Slug, opts.Today),
		BackHref:  opts.Links.Hub(),
		ScrollTop: snap.ScrollTop,
		Threshold: carousel.ScrollTopThreshold,

		PrevAction:   opts.Links.Archive(game.Slug) + "/prev",
		NextAction:   opts.Links.Archive(game.Slug) + "/next",
		ScrollAction: opts.Links.Archive(game.Slug) + "/scroll",
	}
	if snap.State != carousel.Populated {
		return page
	}

	page.Items = Items(game.Slug, snap.Dates, opts)
	page.Total = len(page.Items)
	page.Index = snap.Index
	page.CanPrev = snap.CanPrev
	page.CanNext = snap.CanNext
	if page.Index >= 0 && page.Index < page.Total {
		page.Current = &page.Items[page.Index]
	}
	return page
}

// Items builds one archive card per day. IsToday compares the key with
// opts.Today only and does not depend on the cursor.
func Items(slug string, dates []model.DateKey, opts ArchiveOptions) []model.ArchiveItem {
	items := make([]model.ArchiveItem, 0, len(dates))
	for _, d := range dates {
		items = append(items, model.ArchiveItem{
			Date:          d,
			Label:         archive.Label(d),
			QuestionCount: opts.QuestionCount,
			IsToday:       d == opts.Today,
			Href:          opts.Links.Item(slug, d),
		})
	}
	return items
}

// BuildHub builds the hub landing page.
func BuildHub(cat *catalog.Catalog, links Links, today model.DateKey) model.HubPage {
	page := model.HubPage{
		Title:       cat.Title,
		Description: cat.Description,
		Heading:     cat.Heading,
		Tagline:     cat.Tagline,
		HeroImage:   cat.HeroImage,
	}
	for _, g := range cat.Games {
		page.Cards = append(page.Cards, model.GameCard{
			Game:        g,
			PlayHref:    links.Play(g, today),
			ArchiveHref: links.Archive(g.Slug),
		})
	}
	return page
}
