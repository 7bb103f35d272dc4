// Package server exposes the parser, formatter and statement statistics over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlfront/internal/statestore"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/stat"
)

// DefaultFlushInterval is how often statistics are written to the store.
const DefaultFlushInterval = time.Minute

// Config holds configuration for the server.
type Config struct {
	Addr           string
	DefaultDialect string
	Capacity       int // fingerprints kept per dialect
	Store          *statestore.SQLiteStore
	FlushInterval  time.Duration
	Logger         *slog.Logger
}

// Server serves the HTTP API.
type Server struct {
	addr           string
	defaultDialect string
	capacity       int
	store          *statestore.SQLiteStore
	flushInterval  time.Duration
	logger         *slog.Logger

	mu         sync.Mutex
	registries map[string]*stat.Registry
	runs       map[string]string // dialect name -> run id in the store
}

// NewServer creates a new server instance.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DefaultDialect == "" {
		cfg.DefaultDialect = "ansi"
	}
	if _, err := dialect.Lookup(cfg.DefaultDialect); err != nil {
		return nil, fmt.Errorf("default dialect: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	return &Server{
		addr:           cfg.Addr,
		defaultDialect: cfg.DefaultDialect,
		capacity:       cfg.Capacity,
		store:          cfg.Store,
		flushInterval:  cfg.FlushInterval,
		logger:         cfg.Logger,
		registries:     make(map[string]*stat.Registry),
		runs:           make(map[string]string),
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
			NoColor: true,
		}),
		middleware.Recoverer,
		middleware.Compress(5),
	)
	SetupRoutes(r, s)
	return r
}

// Serve starts the server and blocks until the context is cancelled. Pending
// statistics are flushed to the store before it returns.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.addr, "dialect", s.defaultDialect)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	if s.store != nil {
		eg.Go(func() error {
			return s.flushLoop(egctx)
		})
	}

	return eg.Wait()
}

func (s *Server) flushLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return s.Flush(flushCtx)
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.Error("failed to flush statistics", "error", err)
			}
		}
	}
}

// Flush writes the statistics of every dialect to the store. Each dialect
// gets one run per server lifetime whose rows are replaced on every flush.
func (s *Server) Flush(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	for _, name := range s.dialectNames() {
		reg, _ := s.registry(name)
		snaps := reg.Snapshot()
		if len(snaps) == 0 {
			continue
		}
		runID, err := s.runFor(ctx, name)
		if err != nil {
			return err
		}
		if err := s.store.SaveSnapshots(ctx, runID, snaps); err != nil {
			return fmt.Errorf("save %s statistics: %w", name, err)
		}
		s.logger.Debug("flushed statistics", "dialect", name, "fingerprints", len(snaps))
	}
	return nil
}

func (s *Server) runFor(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.runs[name]; ok {
		return id, nil
	}
	run, err := s.store.CreateRun(ctx, "server", name)
	if err != nil {
		return "", err
	}
	s.runs[name] = run.ID
	return run.ID, nil
}

// resolve returns the dialect for name, or the default dialect when name is empty.
func (s *Server) resolve(name string) (*dialect.Dialect, error) {
	if name == "" {
		name = s.defaultDialect
	}
	return dialect.Lookup(name)
}

// registry returns the statistics registry of a dialect, creating it on first use.
func (s *Server) registry(name string) (*stat.Registry, error) {
	d, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.registries[d.Name]; ok {
		return reg, nil
	}
	reg, err := stat.NewRegistry(d, s.capacity)
	if err != nil {
		return nil, err
	}
	s.registries[d.Name] = reg
	return reg, nil
}

func (s *Server) dialectNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.registries))
	for name := range s.registries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
