package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asteroid-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const createAsteroidsTable = `
CREATE TABLE IF NOT EXISTS asteroids (
    id                        BIGSERIAL        PRIMARY KEY,
    name                      TEXT             NOT NULL,
    nasa_jpl_url              TEXT             NOT NULL DEFAULT '',
    absolute_magnitude        DOUBLE PRECISION NOT NULL DEFAULT 0,
    is_potentially_hazardous  BOOLEAN          NOT NULL DEFAULT FALSE,
    estimated_diameter_min    DOUBLE PRECISION NOT NULL DEFAULT 0,
    estimated_diameter_max    DOUBLE PRECISION NOT NULL DEFAULT 0,
    close_approach_date       TEXT             NOT NULL DEFAULT '',
    close_approach_date_full  TEXT             NOT NULL DEFAULT '',
    epoch_date_close_approach BIGINT           NOT NULL DEFAULT 0,
    relative_velocity         DOUBLE PRECISION NOT NULL DEFAULT 0,
    miss_distance             DOUBLE PRECISION NOT NULL DEFAULT 0,
    orbiting_body             TEXT             NOT NULL DEFAULT '',
    created_at                TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
    updated_at                TIMESTAMPTZ      NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_asteroids_hazardous_id
    ON asteroids (is_potentially_hazardous, id);
`

const asteroidColumns = `id, name, nasa_jpl_url, absolute_magnitude, is_potentially_hazardous,
       estimated_diameter_min, estimated_diameter_max,
       close_approach_date, close_approach_date_full, epoch_date_close_approach,
       relative_velocity, miss_distance, orbiting_body,
       created_at, updated_at`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// AsteroidRepository stores asteroids in Postgres. Every mutation runs in its
// own transaction and is rolled back on failure.
type AsteroidRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewAsteroidRepository(pool PgxPool, tracer trace.Tracer) *AsteroidRepository {
	return &AsteroidRepository{pool: pool, tracer: tracer}
}

func (r *AsteroidRepository) RunMigrations(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "asteroid-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createAsteroidsTable)
	return err
}

func (r *AsteroidRepository) Create(ctx context.Context, in domain.AsteroidCreate) (*domain.Asteroid, error) {
	ctx, span := r.tracer.Start(ctx, "asteroid-repo.create")
	defer span.End()

	var out domain.Asteroid
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
INSERT INTO asteroids (
    name, nasa_jpl_url, absolute_magnitude, is_potentially_hazardous,
    estimated_diameter_min, estimated_diameter_max,
    close_approach_date, close_approach_date_full, epoch_date_close_approach,
    relative_velocity, miss_distance, orbiting_body
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING `+asteroidColumns,
			in.Name, in.NasaJPLURL, in.AbsoluteMagnitude, in.IsPotentiallyHazardous,
			in.EstimatedDiameterMin, in.EstimatedDiameterMax,
			in.CloseApproachDate, in.CloseApproachDateFull, in.EpochDateCloseApproach,
			in.RelativeVelocity, in.MissDistance, in.OrbitingBody,
		).Scan(scanTargets(&out)...)
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: failed to create asteroid: %v", domain.ErrStorage, err)
	}
	normalizeTimes(&out)
	span.SetAttributes(attribute.Int64("asteroid.id", out.ID))
	return &out, nil
}

func (r *AsteroidRepository) Get(ctx context.Context, id int64) (*domain.Asteroid, error) {
	ctx, span := r.tracer.Start(ctx, "asteroid-repo.get")
	defer span.End()
	span.SetAttributes(attribute.Int64("asteroid.id", id))

	var out domain.Asteroid
	err := r.pool.QueryRow(ctx, `SELECT `+asteroidColumns+` FROM asteroids WHERE id = $1`, id).Scan(scanTargets(&out)...)
	if err != nil {
		return nil, mapRowError(err, id, "get")
	}
	normalizeTimes(&out)
	return &out, nil
}

func (r *AsteroidRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error) {
	ctx, span := r.tracer.Start(ctx, "asteroid-repo.list")
	defer span.End()

	query, args := buildListQuery(filter.Normalize())
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: failed to list asteroids: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	asteroids := make([]*domain.Asteroid, 0)
	for rows.Next() {
		a := &domain.Asteroid{}
		if err := rows.Scan(scanTargets(a)...); err != nil {
			return nil, fmt.Errorf("%w: failed to read asteroid row: %v", domain.ErrStorage, err)
		}
		normalizeTimes(a)
		asteroids = append(asteroids, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to list asteroids: %v", domain.ErrStorage, err)
	}
	span.SetAttributes(attribute.Int("asteroids.count", len(asteroids)))
	return asteroids, nil
}

func (r *AsteroidRepository) Update(ctx context.Context, id int64, patch domain.AsteroidPatch) (*domain.Asteroid, error) {
	ctx, span := r.tracer.Start(ctx, "asteroid-repo.update")
	defer span.End()
	span.SetAttributes(attribute.Int64("asteroid.id", id))

	query, args := buildUpdateQuery(id, patch)
	var out domain.Asteroid
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(scanTargets(&out)...)
	})
	if err != nil {
		return nil, mapRowError(err, id, "update")
	}
	normalizeTimes(&out)
	return &out, nil
}

func (r *AsteroidRepository) Delete(ctx context.Context, id int64) (*domain.DeletionReceipt, error) {
	ctx, span := r.tracer.Start(ctx, "asteroid-repo.delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("asteroid.id", id))

	var receipt domain.DeletionReceipt
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `DELETE FROM asteroids WHERE id = $1 RETURNING id, NOW()`, id).
			Scan(&receipt.ID, &receipt.DeletedAt)
	})
	if err != nil {
		return nil, mapRowError(err, id, "delete")
	}
	receipt.DeletedAt = receipt.DeletedAt.UTC()
	return &receipt, nil
}

// buildListQuery renders the paged select, ordered by id.
func buildListQuery(filter domain.ListFilter) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 3)

	b.WriteString(`SELECT ` + asteroidColumns + ` FROM asteroids`)
	if filter.Hazardous != nil {
		args = append(args, *filter.Hazardous)
		fmt.Fprintf(&b, ` WHERE is_potentially_hazardous = $%d`, len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	fmt.Fprintf(&b, ` ORDER BY id ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return b.String(), args
}

// buildUpdateQuery sets only the fields present in patch. updated_at is
// always refreshed, so an empty patch still touches the row.
func buildUpdateQuery(id int64, patch domain.AsteroidPatch) (string, []any) {
	sets := make([]string, 0, 13)
	args := make([]any, 0, 13)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.NasaJPLURL != nil {
		add("nasa_jpl_url", *patch.NasaJPLURL)
	}
	if patch.AbsoluteMagnitude != nil {
		add("absolute_magnitude", *patch.AbsoluteMagnitude)
	}
	if patch.IsPotentiallyHazardous != nil {
		add("is_potentially_hazardous", *patch.IsPotentiallyHazardous)
	}
	if patch.EstimatedDiameterMin != nil {
		add("estimated_diameter_min", *patch.EstimatedDiameterMin)
	}
	if patch.EstimatedDiameterMax != nil {
		add("estimated_diameter_max", *patch.EstimatedDiameterMax)
	}
	if patch.CloseApproachDate != nil {
		add("close_approach_date", *patch.CloseApproachDate)
	}
	if patch.CloseApproachDateFull != nil {
		add("close_approach_date_full", *patch.CloseApproachDateFull)
	}
	if patch.EpochDateCloseApproach != nil {
		add("epoch_date_close_approach", *patch.EpochDateCloseApproach)
	}
	if patch.RelativeVelocity != nil {
		add("relative_velocity", *patch.RelativeVelocity)
	}
	if patch.MissDistance != nil {
		add("miss_distance", *patch.MissDistance)
	}
	if patch.OrbitingBody != nil {
		add("orbiting_body", *patch.OrbitingBody)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE asteroids SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), asteroidColumns)
	return query, args
}

func scanTargets(a *domain.Asteroid) []any {
	return []any{
		&a.ID,
		&a.Name,
		&a.NasaJPLURL,
		&a.AbsoluteMagnitude,
		&a.IsPotentiallyHazardous,
		&a.EstimatedDiameterMin,
		&a.EstimatedDiameterMax,
		&a.CloseApproachDate,
		&a.CloseApproachDateFull,
		&a.EpochDateCloseApproach,
		&a.RelativeVelocity,
		&a.MissDistance,
		&a.OrbitingBody,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}

func normalizeTimes(a *domain.Asteroid) {
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
}

func mapRowError(err error, id int64, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: asteroid with ID %d not found", domain.ErrNotFound, id)
	}
	return fmt.Errorf("%w: failed to %s asteroid: %v", domain.ErrStorage, op, err)
}
