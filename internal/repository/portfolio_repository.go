package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PortfolioRepository persists holdings and valuation snapshots so the
// in-memory store survives restarts. All writes mirror state the store
// already validated; the repository does not re-validate.
type PortfolioRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewPortfolioRepository(pool PgxPool, tracer trace.Tracer) *PortfolioRepository {
	return &PortfolioRepository{pool: pool, tracer: tracer}
}

func (r *PortfolioRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "portfolio-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS holdings (
			ticker TEXT PRIMARY KEY,
			quantity DOUBLE PRECISION NOT NULL,
			avg_price DOUBLE PRECISION NOT NULL
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			id BIGSERIAL PRIMARY KEY,
			taken_at TIMESTAMPTZ NOT NULL UNIQUE,
			total_value DOUBLE PRECISION NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots (taken_at);
	`)
	return err
}

// ReplaceHoldings rewrites the holdings table to match the store.
func (r *PortfolioRepository) ReplaceHoldings(ctx context.Context, holdings []domain.Holding) error {
	_, span := r.tracer.Start(ctx, "portfolio-repo.replace-holdings")
	defer span.End()

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM holdings`)
	for _, h := range holdings {
		batch.Queue(
			`INSERT INTO holdings (ticker, quantity, avg_price) VALUES ($1, $2, $3)`,
			h.Ticker, h.Quantity, h.AverageCost,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < len(holdings)+1; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *PortfolioRepository) GetHoldings(ctx context.Context) ([]domain.Holding, error) {
	_, span := r.tracer.Start(ctx, "portfolio-repo.get-holdings")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT ticker, quantity, avg_price FROM holdings ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(&h.Ticker, &h.Quantity, &h.AverageCost); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// InsertSnapshot appends one valuation point. Duplicate timestamps keep
// the first recorded value: history is append-only, never edited.
func (r *PortfolioRepository) InsertSnapshot(ctx context.Context, snap domain.Snapshot) error {
	_, span := r.tracer.Start(ctx, "portfolio-repo.insert-snapshot")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO snapshots (taken_at, total_value) VALUES ($1, $2)
		 ON CONFLICT (taken_at) DO NOTHING`,
		snap.Timestamp.UTC(), snap.TotalValue,
	)
	return err
}

// ClearSnapshots drops all history; only portfolio create does this.
func (r *PortfolioRepository) ClearSnapshots(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "portfolio-repo.clear-snapshots")
	defer span.End()

	_, err := r.pool.Exec(ctx, `DELETE FROM snapshots`)
	return err
}

// ListSnapshots returns history oldest first, bounded by limit (most
// recent entries win when truncating).
func (r *PortfolioRepository) ListSnapshots(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	_, span := r.tracer.Start(ctx, "portfolio-repo.list-snapshots")
	defer span.End()

	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.pool.Query(ctx,
		`SELECT taken_at, total_value FROM (
			SELECT taken_at, total_value FROM snapshots ORDER BY taken_at DESC LIMIT $1
		) recent ORDER BY taken_at ASC`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []domain.Snapshot
	for rows.Next() {
		var s domain.Snapshot
		var ts time.Time
		if err := rows.Scan(&ts, &s.TotalValue); err != nil {
			return nil, err
		}
		s.Timestamp = ts.UTC()
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
