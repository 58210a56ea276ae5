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
)

func setupMilitaryMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresMilitaryRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresMilitaryRepository(db)
}

func militaryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"military_id", "surname", "name", "rank", "service_unit", "wish",
		"send_date", "comments", "military_personnel_id", "esso", "esso_year",
		"esso_letter", "created_at", "updated_at", "created_by",
	})
}

func TestListMilitary_SearchSpansUnitAndRegistryNumber(t *testing.T) {
	db, mock, repo := setupMilitaryMock(t)
	defer db.Close()

	now := time.Now()

	// one term matches name, surname, rank, esso, unit and registry number
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM military_personnel WHERE 1=1 AND \(name ILIKE \$1 OR surname ILIKE \$1 OR rank ILIKE \$1 OR esso ILIKE \$1 OR service_unit ILIKE \$1 OR military_personnel_id ILIKE \$1\)`).
		WithArgs("%545%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := militaryRows().AddRow(
		"mil-1", "ΝΙΚΟΛΑΟΥ", "ΚΩΣΤΑΣ", "ΣΤΡΑΤΙΩΤΗΣ", "545 ΤΠ", "", nil, "",
		"2024545", "2025Β", "2025", "Β", now, now, "",
	)
	mock.ExpectQuery(`SELECT(.|\n)*FROM military_personnel(.|\n)*ORDER BY created_at DESC`).
		WithArgs("%545%", 20, 0).
		WillReturnRows(rows)

	personnel, total, err := repo.ListMilitary(context.Background(), MilitaryFilters{
		Search: "545",
	}, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, personnel, 1)
	assert.Equal(t, "545 ΤΠ", personnel[0].ServiceUnit)
	assert.Equal(t, "2024545", personnel[0].RegistryNumber)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMilitary_EssoClassFilter(t *testing.T) {
	db, mock, repo := setupMilitaryMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM military_personnel WHERE 1=1 AND esso_year = \$1 AND esso_letter = \$2`).
		WithArgs("2025", "ΣΤ").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT(.|\n)*FROM military_personnel`).
		WithArgs("2025", "ΣΤ", 20, 0).
		WillReturnRows(militaryRows())

	_, _, err := repo.ListMilitary(context.Background(), MilitaryFilters{
		EssoYear:   "2025",
		EssoLetter: "ΣΤ",
	}, 1, 20)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMilitary_WritesConcatenatedEsso(t *testing.T) {
	db, mock, repo := setupMilitaryMock(t)
	defer db.Close()

	m := &domain.MilitaryPersonnel{
		Surname:    "ΝΙΚΟΛΑΟΥ",
		Name:       "ΚΩΣΤΑΣ",
		EssoYear:   "2025",
		EssoLetter: "Β",
	}
	m.NormalizeEsso()

	mock.ExpectExec(`INSERT INTO military_personnel`).
		WithArgs(sqlmock.AnyArg(), "ΝΙΚΟΛΑΟΥ", "ΚΩΣΤΑΣ", "", "", "",
			nil, "", "", "2025Β", "2025", "Β", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.CreateMilitary(context.Background(), m)

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMilitary_NotFound(t *testing.T) {
	db, mock, repo := setupMilitaryMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE military_personnel`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateMilitary(context.Background(), "missing", &domain.MilitaryPersonnel{
		Surname: "ΝΙΚΟΛΑΟΥ",
		Name:    "ΚΩΣΤΑΣ",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "military personnel not found")

	require.NoError(t, mock.ExpectationsWereMet())
}
