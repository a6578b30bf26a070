package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/vijay-prabhu/unimatch/internal/config"
	"github.com/vijay-prabhu/unimatch/internal/database"
	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/university"
)

// Backend names
const (
	BackendBuiltin = "builtin"
	BackendFile    = "file"
	BackendSQLite  = "sqlite"
	BackendRedis   = "redis"
)

// Source is the configured gateway plus the resources it owns
type Source struct {
	match.Gateway
	Backend string

	db     *database.DB
	health func(context.Context) error
	close  func() error
}

// Open builds the gateway selected by cfg.Source.Backend
func Open(cfg *config.Config) (*Source, error) {
	s := &Source{Backend: cfg.Source.Backend}

	var raw match.Gateway
	switch cfg.Source.Backend {
	case BackendBuiltin:
		raw = NewBuiltinGateway()
	case BackendFile:
		raw = NewFileGateway(cfg.Source.FilePath)
	case BackendSQLite:
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.health = db.Health
		s.close = db.Close
		raw = db
	case BackendRedis:
		rg, err := NewRedisGateway(cfg.Redis.URL, cfg.Redis.Key)
		if err != nil {
			return nil, err
		}
		s.health = rg.Health
		s.close = rg.Close
		raw = rg
	default:
		return nil, fmt.Errorf("unknown source backend %q", cfg.Source.Backend)
	}

	if cfg.Source.BreakerFailures > 0 || cfg.Source.TimeoutSeconds > 0 {
		s.Gateway = NewBreaker(raw, BreakerSettings{
			Name:     cfg.Source.Backend,
			Failures: uint32(cfg.Source.BreakerFailures),
			Timeout:  cfg.Source.Timeout(),
		})
	} else {
		s.Gateway = raw
	}

	return s, nil
}

// New wraps an existing gateway, for callers that build their own
func New(backend string, g match.Gateway) *Source {
	return &Source{Gateway: g, Backend: backend}
}

// Lookup finds a university by ID or exact name. It returns nil when
// nothing matches.
func (s *Source) Lookup(ctx context.Context, identifier string) (*university.University, error) {
	identifier = strings.TrimSpace(identifier)

	if s.db != nil {
		u, err := s.db.GetUniversity(ctx, identifier)
		if err != nil || u != nil {
			return u, err
		}
		return s.db.GetUniversityByName(ctx, identifier)
	}

	universities, err := s.FetchAllUniversities(ctx)
	if err != nil {
		return nil, err
	}
	return Find(universities, identifier), nil
}

// Stats reports dataset statistics for the backend
func (s *Source) Stats(ctx context.Context) (*database.Stats, error) {
	if s.db != nil {
		return s.db.GetStats(ctx)
	}

	universities, err := s.FetchAllUniversities(ctx)
	if err != nil {
		return nil, err
	}
	return Describe(universities), nil
}

// Health checks the backing store. In-memory and file backends have
// nothing to ping and always report healthy.
func (s *Source) Health(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	return s.health(ctx)
}

// Close releases the backend's resources
func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Find returns the university whose ID or name equals identifier, or nil
func Find(universities []university.University, identifier string) *university.University {
	for i := range universities {
		if universities[i].ID == identifier {
			return &universities[i]
		}
	}
	for i := range universities {
		if universities[i].Name == identifier {
			return &universities[i]
		}
	}
	return nil
}
