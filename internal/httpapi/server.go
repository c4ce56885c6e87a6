// Package httpapi exposes the lineage service over JSON HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"mutt/internal/bloodline"
	"mutt/internal/graph"
	"mutt/internal/lineage"
	"mutt/internal/logger"
	"mutt/internal/store"
)

// Lineage is the service surface the handlers call.
type Lineage interface {
	Hatch(ctx context.Context, in lineage.HatchInput) (*store.Mutt, error)
	Breed(ctx context.Context, in lineage.BreedInput) (*store.Mutt, error)
	Rate(ctx context.Context, in lineage.RateInput) (*lineage.RateResult, error)
	Evaluate(ctx context.Context, tokenID int64) (bloodline.Decision, error)
	GetMutt(ctx context.Context, tokenID int64) (*store.Mutt, error)
	ListMutts(ctx context.Context, filter store.ListFilter) ([]store.MuttSummary, error)
	Lineage(ctx context.Context, tokenID int64) (*lineage.View, error)
	Leaderboard(ctx context.Context, limit int) ([]bloodline.House, error)
	SyncSacred(ctx context.Context, limit int) (store.SacredSync, error)
}

// Ancestry answers multi-generation queries from the graph projection.
type Ancestry interface {
	GetAncestors(ctx context.Context, tokenID int64, depth int) ([]graph.Ancestor, error)
}

type Config struct {
	Service          Lineage
	Ancestry         Ancestry // optional; the ancestors route answers 404 without it
	Addr             string
	LeaderboardLimit int
	Logger           *logger.Logger
}

type Server struct {
	svc      Lineage
	ancestry Ancestry
	addr     string
	limit    int
	log      *logger.Logger
}

func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	limit := cfg.LeaderboardLimit
	if limit <= 0 {
		limit = bloodline.SacredCount
	}
	return &Server{
		svc:      cfg.Service,
		ancestry: cfg.Ancestry,
		addr:     cfg.Addr,
		limit:    limit,
		log:      log,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(s.log),
		middleware.Recoverer,
	)

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/mutts", s.listMutts)
		r.Get("/mutts/{id}", s.getMutt)
		r.Get("/mutts/{id}/lineage", s.getLineage)
		r.Get("/mutts/{id}/ancestors", s.getAncestors)
		r.Post("/mutts/{id}/evaluate", s.evaluate)

		r.Post("/hatch", s.hatch)
		r.Post("/breed", s.breed)
		r.Post("/rate", s.rate)

		r.Get("/leaderboard", s.leaderboard)
		r.Post("/leaderboard/sync", s.syncLeaderboard)
	})

	return r
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		s.log.Info("http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
