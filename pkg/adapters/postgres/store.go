// Package postgres keeps page records in a PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

var _ ports.PageStore = (*Store)(nil)

// Store implements ports.PageStore on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
	now  func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithTTL expires records ttl after their last save. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open connects to dsn, verifies the connection and applies migrations.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return New(pool, opts...), nil
}

// New wraps an existing pool. The schema must already be migrated.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{pool: pool, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) expiry() *time.Time {
	if s.ttl <= 0 {
		return nil
	}
	t := s.now().Add(s.ttl)
	return &t
}

// Save inserts or replaces the record of a page.
func (s *Store) Save(ctx context.Context, record *domain.PageRecord) error {
	created := record.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO algoviz_pages (id, container, algorithm, debug, created_at, updated_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		     container = EXCLUDED.container,
		     algorithm = EXCLUDED.algorithm,
		     debug = EXCLUDED.debug,
		     updated_at = EXCLUDED.updated_at,
		     expires_at = EXCLUDED.expires_at`,
		record.ID, record.Container, record.Algorithm, record.Debug, created, s.now(), s.expiry(),
	)
	if err != nil {
		return fmt.Errorf("save page %s: %w", record.ID, err)
	}
	return nil
}

// Load retrieves an unexpired page record.
func (s *Store) Load(ctx context.Context, pageID string) (*domain.PageRecord, error) {
	record := &domain.PageRecord{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, container, algorithm, debug, created_at, updated_at
		 FROM algoviz_pages
		 WHERE id = $1 AND (expires_at IS NULL OR expires_at > $2)`, pageID, s.now(),
	).Scan(
		&record.ID, &record.Container, &record.Algorithm, &record.Debug, &record.CreatedAt, &record.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load page %s: %w", pageID, err)
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return record, nil
}

// Delete removes a page record.
func (s *Store) Delete(ctx context.Context, pageID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM algoviz_pages WHERE id = $1`, pageID); err != nil {
		return fmt.Errorf("delete page %s: %w", pageID, err)
	}
	return nil
}

// List prunes expired records and returns the remaining IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := s.now()
	if _, err := s.pool.Exec(ctx, `DELETE FROM algoviz_pages WHERE expires_at <= $1`, now); err != nil {
		return nil, fmt.Errorf("prune pages: %w", err)
	}

	rows, err := s.pool.Query(ctx, `SELECT id FROM algoviz_pages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}
