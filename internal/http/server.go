package http

import (
	"context"
	"html/template"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/browse"
	"github.com/claes/quizweb/internal/carousel"
	"github.com/claes/quizweb/internal/catalog"
	"github.com/claes/quizweb/internal/model"
	"github.com/claes/quizweb/internal/session"
)

// ArchiveStore is the read side of the archive used by the pages and API.
type ArchiveStore interface {
	ArchiveStructure(ctx context.Context, gameKey string) (model.ArchiveStructure, error)
	HasDate(ctx context.Context, gameKey string, d model.DateKey) (bool, error)
}

// Options wires the server's collaborators.
type Options struct {
	Catalog       *catalog.Catalog
	Store         ArchiveStore
	Sessions      *session.Manager
	Clock         archive.Clock
	Logger        *zap.Logger
	BasePath      string
	StaticDir     string
	QuestionCount int
	RenderWait    time.Duration
}

type server struct {
	Options
	links browse.Links
	tpl   *template.Template
}

// NewServer creates the HTTP handler for the game hub, archives and API.
func NewServer(o Options) nethttp.Handler {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.QuestionCount <= 0 {
		o.QuestionCount = 4
	}
	s := &server{Options: o, links: browse.Links{Base: o.BasePath}}
	// css trusts catalog colours; catalog.Parse only admits hex and rgb()/rgba().
	s.tpl = template.Must(template.New("pages").Funcs(template.FuncMap{
		"inc":      func(i int) int { return i + 1 },
		"css":      func(v string) template.CSS { return template.CSS(v) },
		"safeHTML": func(v string) template.HTML { return template.HTML(v) },
		"tagColor": o.Catalog.TagColor,
	}).Parse(pageTpl))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(o.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)

	pinger, _ := o.Store.(Pinger)
	r.Method(nethttp.MethodGet, "/health", HealthHandler(pinger))
	r.Get("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.Redirect(w, r, s.links.Hub(), nethttp.StatusFound)
	})
	r.Get("/static/*", s.handleStatic)

	r.Route(s.links.Hub(), func(r chi.Router) {
		r.Get("/", s.handleHub)
		r.Get("/{game}/archive", s.handleArchive)
		r.Post("/{game}/archive/prev", s.handleNavigate((*carousel.Component).Prev))
		r.Post("/{game}/archive/next", s.handleNavigate((*carousel.Component).Next))
		r.Post("/{game}/archive/scroll", s.handleScroll)
		r.Get("/{game}/{date}", s.handleEntry)
	})
	r.Route("/api/games/{game}", func(r chi.Router) {
		r.Get("/archive", s.handleAPIArchive)
		r.Get("/dates", s.handleAPIDates)
	})
	return r
}

func requestLogger(l *zap.Logger) func(nethttp.Handler) nethttp.Handler {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func httpError(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
