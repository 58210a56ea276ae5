package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/reference"
)

// PostgresStatsRepository StatsRepository backed by Postgres. Grouping and
// NULL folding happen in SQL; ranking and rates in the service layer.
type PostgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

var _ StatsRepository = (*PostgresStatsRepository)(nil)

// Totals headline counters in one round trip per table.
func (r *PostgresStatsRepository) Totals(ctx context.Context) (Totals, error) {
	var t Totals

	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM citizens),
			(SELECT COUNT(*) FROM military_personnel),
			(SELECT COUNT(*) FROM requests),
			(SELECT COUNT(*) FROM requests WHERE status = $1),
			(SELECT COUNT(*) FROM reminders WHERE is_completed = FALSE)
	`, domain.RequestPending).Scan(
		&t.Citizens, &t.Military, &t.Requests, &t.PendingRequests, &t.OpenReminders,
	)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to get totals: %w", err)
	}
	return t, nil
}

// groupedCount runs a GROUP BY query folding NULL/empty keys into the
// ΑΓΝΩΣΤΟ sentinel, ordered by count descending then key.
func (r *PostgresStatsRepository) groupedCount(ctx context.Context, table, column string) ([]GroupCount, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(NULLIF(%s, ''), '%s') AS key, COUNT(*) AS count
		FROM %s
		GROUP BY key
		ORDER BY count DESC, key
	`, column, reference.StatUnknown, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by %s: %w", table, column, err)
	}
	defer rows.Close()

	groups := []GroupCount{}
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan group count: %w", err)
		}
		groups = append(groups, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group counts: %w", err)
	}
	return groups, nil
}

func (r *PostgresStatsRepository) CitizensByMunicipality(ctx context.Context) ([]GroupCount, error) {
	return r.groupedCount(ctx, "citizens", "municipality")
}

func (r *PostgresStatsRepository) CitizensByDistrict(ctx context.Context) ([]GroupCount, error) {
	return r.groupedCount(ctx, "citizens", "electoral_district")
}

func (r *PostgresStatsRepository) MilitaryByRank(ctx context.Context) ([]GroupCount, error) {
	return r.groupedCount(ctx, "military_personnel", "rank")
}

func (r *PostgresStatsRepository) MilitaryByEsso(ctx context.Context) ([]GroupCount, error) {
	return r.groupedCount(ctx, "military_personnel", "esso")
}

func (r *PostgresStatsRepository) RequestsByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.groupedCount(ctx, "requests", "status")
}

// RecentActivity windowed deltas; since is a closed lower bound.
func (r *PostgresStatsRepository) RecentActivity(ctx context.Context, since time.Time) (Activity, error) {
	var a Activity

	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM citizens WHERE created_at >= $1),
			(SELECT COUNT(*) FROM military_personnel WHERE created_at >= $1),
			(SELECT COUNT(*) FROM requests WHERE created_at >= $1),
			(SELECT COUNT(*) FROM requests WHERE status = $2 AND completion_date >= $1)
	`, since, domain.RequestCompleted).Scan(
		&a.NewCitizens, &a.NewMilitary, &a.NewRequests, &a.CompletedRequests,
	)
	if err != nil {
		return Activity{}, fmt.Errorf("failed to get recent activity: %w", err)
	}
	return a, nil
}
