package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/browse"
	"github.com/claes/quizweb/internal/carousel"
	"github.com/claes/quizweb/internal/catalog"
	"github.com/claes/quizweb/internal/model"
	"github.com/claes/quizweb/internal/session"
)

const sessionCookie = "quizweb_session"

func (s *server) handleHub(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.render(w, "hub", browse.BuildHub(s.Catalog, s.links, s.Clock.Today()))
}

func (s *server) handleArchive(w nethttp.ResponseWriter, r *nethttp.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	c := s.Sessions.Carousel(r.Context(), s.session(w, r), game.Key)

	ctx, cancel := context.WithTimeout(r.Context(), s.RenderWait)
	defer cancel()
	c.Wait(ctx)

	s.render(w, "archive", browse.BuildArchivePage(game, c.Snapshot(), s.archiveOptions()))
}

func (s *server) handleNavigate(move func(*carousel.Component) int) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		game, ok := s.game(w, r)
		if !ok {
			return
		}
		c := s.Sessions.Carousel(r.Context(), s.session(w, r), game.Key)
		if c.State() == carousel.Populated {
			move(c)
		}
		nethttp.Redirect(w, r, s.links.Archive(game.Slug), nethttp.StatusSeeOther)
	}
}

func (s *server) handleScroll(w nethttp.ResponseWriter, r *nethttp.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	offset, err := strconv.ParseFloat(r.FormValue("offset"), 64)
	if err != nil {
		httpError(w, nethttp.StatusBadRequest, "offset must be a number")
		return
	}
	sess := s.session(w, r)
	c := s.Sessions.Carousel(r.Context(), sess, game.Key)
	sess.Scroll().Publish(offset)

	writeJSON(w, map[string]bool{"showScrollTop": c.ScrollTop()})
}

type entryPage struct {
	Game        model.Game
	Date        model.DateKey
	Label       string
	IsToday     bool
	ArchiveHref string
	HubHref     string
}

func (s *server) handleEntry(w nethttp.ResponseWriter, r *nethttp.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	d, err := archive.ParseCompact(chi.URLParam(r, "date"))
	if err != nil {
		httpError(w, nethttp.StatusNotFound, "unknown puzzle date")
		return
	}
	found, err := s.Store.HasDate(r.Context(), game.Key, d)
	if err != nil {
		s.Logger.Error("lookup archive entry", zap.String("game", game.Key), zap.String("date", string(d)), zap.Error(err))
		httpError(w, nethttp.StatusInternalServerError, "unable to read archive")
		return
	}
	if !found {
		httpError(w, nethttp.StatusNotFound, "unknown puzzle date")
		return
	}
	s.render(w, "entry", entryPage{
		Game:        game,
		Date:        d,
		Label:       archive.Label(d),
		IsToday:     d == s.Clock.Today(),
		ArchiveHref: s.links.Archive(game.Slug),
		HubHref:     s.links.Hub(),
	})
}

func (s *server) archiveOptions() browse.ArchiveOptions {
	return browse.ArchiveOptions{
		Links:         s.links,
		Today:         s.Clock.Today(),
		QuestionCount: s.QuestionCount,
	}
}

// game resolves the {game} URL parameter or writes a 404.
func (s *server) game(w nethttp.ResponseWriter, r *nethttp.Request) (model.Game, bool) {
	g, err := s.Catalog.Game(chi.URLParam(r, "game"))
	if errors.Is(err, catalog.ErrUnknownGame) {
		httpError(w, nethttp.StatusNotFound, "unknown game")
		return g, false
	}
	return g, err == nil
}

// session returns the visitor's session, issuing a cookie for new ones.
func (s *server) session(w nethttp.ResponseWriter, r *nethttp.Request) *session.Session {
	var id string
	if ck, err := r.Cookie(sessionCookie); err == nil {
		id = ck.Value
	}
	sess := s.Sessions.Get(id)
	if sess.ID != id {
		nethttp.SetCookie(w, &nethttp.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: nethttp.SameSiteLaxMode,
		})
	}
	return sess
}

func (s *server) render(w nethttp.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.Logger.Error("render page", zap.String("page", name), zap.Error(err))
		httpError(w, nethttp.StatusInternalServerError, "unable to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func writeJSON(w nethttp.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(nethttp.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
