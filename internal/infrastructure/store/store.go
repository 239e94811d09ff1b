// Package store selects and owns the persistence backend for the process.
// The handle is created once at startup and passed to the services that need
// it.
package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/classroom/scheduler/internal/core/ports"
	"github.com/classroom/scheduler/internal/infrastructure/db/memory"
	"github.com/classroom/scheduler/internal/infrastructure/db/mongo"
	"github.com/classroom/scheduler/internal/infrastructure/db/postgres"
)

// Backend names, also used as log fields.
const (
	BackendNone     = "none"
	BackendPostgres = "postgres"
	BackendMongo    = "mongodb"
	BackendMemory   = "memory"
)

type Config struct {
	// URL is the resolved database URL. Empty means no store.
	URL           string
	MongoDatabase string
}

// Store bundles the repositories of one backend together with its lifecycle.
type Store struct {
	Backend string
	Users   ports.UserRepository
	Classes ports.ClassRepository

	ping  func(context.Context) error
	close func(context.Context) error
}

// Open connects to the backend named by the URL scheme. An empty URL yields
// the storeless handle.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	if cfg.URL == "" {
		log.Warn().Msg("DATABASE_URL not set, running without a store")
		return Storeless(), nil
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	var s *Store
	switch scheme := strings.ToLower(u.Scheme); scheme {
	case "postgres", "postgresql":
		s, err = openPostgres(ctx, cfg.URL)
	case "mongodb", "mongodb+srv":
		s, err = openMongo(ctx, cfg)
	case "memory":
		s = openMemory()
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("backend", s.Backend).Str("host", u.Hostname()).Msg("store opened")
	return s, nil
}

func openPostgres(ctx context.Context, dsn string) (*Store, error) {
	db, err := postgres.Connect(ctx, postgres.Config{DSN: dsn})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		Backend: BackendPostgres,
		Users:   postgres.NewUserRepository(db),
		Classes: postgres.NewClassRepository(db),
		ping:    db.PingContext,
		close:   func(context.Context) error { return db.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg Config) (*Store, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.URL, Database: cfg.MongoDatabase})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{
		Backend: BackendMongo,
		Users:   mongo.NewUserRepository(db),
		Classes: mongo.NewClassRepository(db),
		ping:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:   client.Disconnect,
	}, nil
}

func openMemory() *Store {
	db := memory.New()
	return &Store{
		Backend: BackendMemory,
		Users:   memory.NewUserRepository(db),
		Classes: memory.NewClassRepository(db),
	}
}

// Configured reports whether a backend is present.
func (s *Store) Configured() bool {
	return s.Backend != BackendNone
}

// Ping checks backend connectivity. The storeless handle reports
// ErrStoreNotConfigured.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Configured() {
		return errStoreNotConfigured
	}
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend. Safe to call on any handle.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
