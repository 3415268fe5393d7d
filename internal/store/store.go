// Package store persists assessment results for audit when a database is
// configured. The server runs fine without it.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifelens/lifelens/internal/risk"
)

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	id          UUID PRIMARY KEY,
	submitted   JSONB NOT NULL,
	results     JSONB NOT NULL,
	scorer      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store is the persistence surface the handler needs. A nil *Assessments
// satisfies disabled-DB deployments via the interface in the server.
type Store interface {
	Ping(ctx context.Context) error
	SaveAssessment(ctx context.Context, id string, submitted map[string]any, scorer string, results map[risk.Domain]risk.Assessment) error
	Close()
}

// Assessments is the pgx-backed audit log.
type Assessments struct {
	pool *pgxpool.Pool
}

// Open connects, pings, and ensures the schema exists.
func Open(ctx context.Context, url string) (*Assessments, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Assessments{pool: pool}, nil
}

func (s *Assessments) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// SaveAssessment records one request/response pair.
func (s *Assessments) SaveAssessment(ctx context.Context, id string, submitted map[string]any, scorer string, results map[risk.Domain]risk.Assessment) error {
	in, err := json.Marshal(submitted)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	out, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, submitted, results, scorer) VALUES ($1, $2, $3, $4)`,
		id, in, out, scorer)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (s *Assessments) Close() {
	s.pool.Close()
}
