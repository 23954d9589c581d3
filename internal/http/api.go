package http

import (
	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/model"
)

type datesResponse struct {
	Game  string          `json:"game"`
	Today model.DateKey   `json:"today"`
	Dates []model.DateKey `json:"dates"`
}

func (s *server) handleAPIArchive(w nethttp.ResponseWriter, r *nethttp.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	st, err := s.Store.ArchiveStructure(r.Context(), game.Key)
	if err != nil {
		s.Logger.Error("failed to load archive", zap.String("game", game.Key), zap.Error(err))
		httpError(w, nethttp.StatusInternalServerError, "unable to read archive")
		return
	}
	if st.Years == nil {
		st.Years = []model.Year{}
	}
	writeJSON(w, st)
}

func (s *server) handleAPIDates(w nethttp.ResponseWriter, r *nethttp.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	st, err := s.Store.ArchiveStructure(r.Context(), game.Key)
	if err != nil {
		s.Logger.Error("failed to load archive", zap.String("game", game.Key), zap.Error(err))
		httpError(w, nethttp.StatusInternalServerError, "unable to read archive")
		return
	}
	writeJSON(w, datesResponse{Game: game.Slug, Today: s.Clock.Today(), Dates: archive.Flatten(st)})
}
