package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/reference"
)

func setupStatsMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStatsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresStatsRepository(db)
}

func TestTotals(t *testing.T) {
	db, mock, repo := setupStatsMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"c", "m", "r", "p", "o"}).AddRow(120, 35, 60, 14, 7)
	mock.ExpectQuery(`SELECT`).WithArgs(domain.RequestPending).WillReturnRows(rows)

	totals, err := repo.Totals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 120, totals.Citizens)
	assert.Equal(t, 35, totals.Military)
	assert.Equal(t, 14, totals.PendingRequests)
	assert.Equal(t, 7, totals.OpenReminders)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCitizensByMunicipality_FoldsUnknown(t *testing.T) {
	db, mock, repo := setupStatsMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "count"}).
		AddRow("ΠΑΥΛΟΥ ΜΕΛΑ", 40).
		AddRow(reference.StatUnknown, 12).
		AddRow("ΚΑΛΑΜΑΡΙΑΣ", 8)

	mock.ExpectQuery(`GROUP BY key`).WillReturnRows(rows)

	groups, err := repo.CitizensByMunicipality(context.Background())

	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, reference.StatUnknown, groups[1].Key)
	assert.Equal(t, 12, groups[1].Count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentActivity(t *testing.T) {
	db, mock, repo := setupStatsMock(t)
	defer db.Close()

	since := time.Now().AddDate(0, 0, -7)
	rows := sqlmock.NewRows([]string{"c", "m", "r", "done"}).AddRow(3, 1, 5, 2)
	mock.ExpectQuery(`SELECT`).WithArgs(since, domain.RequestCompleted).WillReturnRows(rows)

	a, err := repo.RecentActivity(context.Background(), since)

	require.NoError(t, err)
	assert.Equal(t, 3, a.NewCitizens)
	assert.Equal(t, 5, a.NewRequests)
	assert.Equal(t, 2, a.CompletedRequests)

	require.NoError(t, mock.ExpectationsWereMet())
}
