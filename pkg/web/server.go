// Package web serves the browser dashboard and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-riskboard/pkg/present"
	"github.com/goliatone/go-riskboard/pkg/render/template"
	"github.com/goliatone/go-riskboard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-riskboard/pkg/schema"
	"github.com/goliatone/go-riskboard/pkg/scoring"
	"github.com/goliatone/go-riskboard/pkg/session"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// SessionCookie names the cookie that carries the session id.
const SessionCookie = "riskboard_session"

const (
	defaultAddr       = ":8080"
	defaultSessionTTL = 30 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

// TemplatesFS returns the embedded dashboard templates rooted at their
// directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option customises a Server.
type Option func(*Server)

// WithSchema overrides the field schema.
func WithSchema(s schema.Schema) Option {
	return func(srv *Server) {
		if !s.Empty() {
			srv.schema = s
		}
	}
}

// WithMeans overrides the population means shown next to applicant values.
func WithMeans(means map[string]float64) Option {
	return func(srv *Server) {
		if means != nil {
			srv.means = means
		}
	}
}

// WithPalette overrides the colours.
func WithPalette(palette present.Palette) Option {
	return func(srv *Server) {
		if len(palette.Tokens) > 0 {
			srv.palette = palette
		}
	}
}

// WithRenderer swaps the HTML template renderer. The renderer must provide a
// "dashboard" template.
func WithRenderer(renderer template.Renderer) Option {
	return func(srv *Server) {
		if renderer != nil {
			srv.renderer = renderer
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(srv *Server) {
		if logger != nil {
			srv.logger = logger
		}
	}
}

// WithAddr sets the listen address used by Run.
func WithAddr(addr string) Option {
	return func(srv *Server) {
		if addr != "" {
			srv.addr = addr
		}
	}
}

// WithSessionTTL sets how long an idle session is kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(srv *Server) {
		if ttl > 0 {
			srv.ttl = ttl
		}
	}
}

// Server is the dashboard HTTP server.
type Server struct {
	router   chi.Router
	store    *Store
	scorer   scoring.Scorer
	schema   schema.Schema
	means    map[string]float64
	palette  present.Palette
	renderer template.Renderer
	logger   *zap.Logger
	addr     string
	ttl      time.Duration
}

// New builds a server that scores through scorer.
func New(scorer scoring.Scorer, options ...Option) (*Server, error) {
	if scorer == nil {
		return nil, errors.New("web: scorer is required")
	}
	srv := &Server{
		scorer:  scorer,
		schema:  schema.Default(),
		means:   schema.DefaultMeans(),
		palette: present.DefaultPalette(),
		logger:  zap.NewNop(),
		addr:    defaultAddr,
		ttl:     defaultSessionTTL,
	}
	for _, opt := range options {
		if opt != nil {
			opt(srv)
		}
	}

	if srv.renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("web: template engine: %w", err)
		}
		srv.renderer = engine
	}

	srv.store = NewStore(srv.ttl, srv.newSession)
	srv.router = srv.routes()
	return srv, nil
}

func (s *Server) newSession() *session.Session {
	return session.New(s.scorer,
		session.WithSchema(s.schema),
		session.WithLogger(s.logger),
	)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Post("/", s.handleFormSubmit)
	r.Get("/healthz", s.handleHealth)

	r.Get("/history.csv", s.handleHistoryCSV)
	r.Get("/history.xlsx", s.handleHistoryXLSX)
	r.Get("/charts/{chart}.svg", s.handleChart)

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/score", s.handleScore)
		r.Get("/state", s.handleState)
	})
	return r
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store exposes the session store.
func (s *Server) Store() *Store {
	return s.store
}

// Run serves on the configured address until ctx is cancelled, sweeping idle
// sessions in the background.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("dashboard listening", zap.String("addr", listener.Addr().String()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.store.Run(gctx, s.sweepInterval())
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("dashboard shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) sweepInterval() time.Duration {
	interval := s.ttl / 4
	if interval < time.Second {
		return time.Second
	}
	return interval
}

// sessionFor returns the caller's session, creating one and setting the
// cookie when the request carries none or an expired id. The cookie lives
// as long as the browser session; idle expiry is enforced by the store.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.store.Get(cookie.Value); ok {
			return sess
		}
	}
	id, sess := s.store.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}
