package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"grafeio-data/internal/domain"
)

// PostgresMilitaryRepository MilitaryRepository backed by Postgres.
type PostgresMilitaryRepository struct {
	db *sql.DB
}

func NewPostgresMilitaryRepository(db *sql.DB) *PostgresMilitaryRepository {
	return &PostgresMilitaryRepository{db: db}
}

var _ MilitaryRepository = (*PostgresMilitaryRepository)(nil)

const militaryColumns = `
	military_id::text,
	surname,
	name,
	COALESCE(rank, '') AS rank,
	COALESCE(service_unit, '') AS service_unit,
	COALESCE(wish, '') AS wish,
	send_date,
	COALESCE(comments, '') AS comments,
	COALESCE(military_personnel_id, '') AS military_personnel_id,
	COALESCE(esso, '') AS esso,
	COALESCE(esso_year, '') AS esso_year,
	COALESCE(esso_letter, '') AS esso_letter,
	created_at,
	updated_at,
	COALESCE(created_by::text, '') AS created_by`

func scanMilitary(row rowScanner) (*domain.MilitaryPersonnel, error) {
	var m domain.MilitaryPersonnel
	var sendDate sql.NullTime
	err := row.Scan(
		&m.MilitaryID,
		&m.Surname,
		&m.Name,
		&m.Rank,
		&m.ServiceUnit,
		&m.Wish,
		&sendDate,
		&m.Comments,
		&m.RegistryNumber,
		&m.Esso,
		&m.EssoYear,
		&m.EssoLetter,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if sendDate.Valid {
		m.SendDate = &sendDate.Time
	}
	return &m, nil
}

// GetMilitary fetches a single conscript by id.
func (r *PostgresMilitaryRepository) GetMilitary(ctx context.Context, militaryID string) (*domain.MilitaryPersonnel, error) {
	if militaryID == "" {
		return nil, fmt.Errorf("military_id is required")
	}

	query := fmt.Sprintf(`SELECT %s FROM military_personnel WHERE military_id = $1`, militaryColumns)

	m, err := scanMilitary(r.db.QueryRowContext(ctx, query, militaryID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("military personnel not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get military personnel: %w", err)
	}
	return m, nil
}

// GetMilitaryByIDs batch point lookup; missing ids are absent from the map.
func (r *PostgresMilitaryRepository) GetMilitaryByIDs(ctx context.Context, ids []string) (map[string]*domain.MilitaryPersonnel, error) {
	result := map[string]*domain.MilitaryPersonnel{}
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM military_personnel WHERE military_id = ANY($1)`, militaryColumns)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get military by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMilitary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan military personnel: %w", err)
		}
		result[m.MilitaryID] = m
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate military personnel: %w", err)
	}
	return result, nil
}

// ListMilitary paged list with filters and search.
// The search term is OR-composed across name, surname, rank, esso, service
// unit and registry number; esso filtering hits the materialized esso column.
func (r *PostgresMilitaryRepository) ListMilitary(ctx context.Context, filters MilitaryFilters, page, size int) ([]*domain.MilitaryPersonnel, int, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	offset := (page - 1) * size

	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filters.EssoYear != "" {
		where = append(where, fmt.Sprintf("esso_year = $%d", argIdx))
		args = append(args, filters.EssoYear)
		argIdx++
	}
	if filters.EssoLetter != "" {
		where = append(where, fmt.Sprintf("esso_letter = $%d", argIdx))
		args = append(args, filters.EssoLetter)
		argIdx++
	}
	if filters.Rank != "" {
		where = append(where, fmt.Sprintf("rank ILIKE $%d", argIdx))
		args = append(args, "%"+filters.Rank+"%")
		argIdx++
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR surname ILIKE $%d OR rank ILIKE $%d OR esso ILIKE $%d OR service_unit ILIKE $%d OR military_personnel_id ILIKE $%d)", argIdx, argIdx, argIdx, argIdx, argIdx, argIdx))
		args = append(args, pattern)
		argIdx++
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM military_personnel WHERE %s`, whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count military personnel: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM military_personnel
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, militaryColumns, whereClause, argIdx, argIdx+1)
	args = append(args, size, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list military personnel: %w", err)
	}
	defer rows.Close()

	personnel := []*domain.MilitaryPersonnel{}
	for rows.Next() {
		m, err := scanMilitary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan military personnel: %w", err)
		}
		personnel = append(personnel, m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate military personnel: %w", err)
	}

	return personnel, total, nil
}

// CreateMilitary inserts a new conscript and returns its id. The esso
// column is written from the normalized domain value.
func (r *PostgresMilitaryRepository) CreateMilitary(ctx context.Context, m *domain.MilitaryPersonnel) (string, error) {
	if m == nil {
		return "", fmt.Errorf("military personnel is required")
	}
	if m.Surname == "" || m.Name == "" {
		return "", fmt.Errorf("surname and name are required")
	}

	militaryID := m.MilitaryID
	if militaryID == "" {
		militaryID = uuid.NewString()
	}

	var sendDateArg any = nil
	if m.SendDate != nil {
		sendDateArg = *m.SendDate
	}
	var createdByArg any = nil
	if m.CreatedBy != "" {
		createdByArg = m.CreatedBy
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO military_personnel (
			military_id, surname, name, rank, service_unit, wish,
			send_date, comments, military_personnel_id,
			esso, esso_year, esso_letter,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
			$7, NULLIF($8, ''), NULLIF($9, ''),
			NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''),
			$13, NOW(), NOW())`,
		militaryID, m.Surname, m.Name, m.Rank, m.ServiceUnit, m.Wish,
		sendDateArg, m.Comments, m.RegistryNumber,
		m.Esso, m.EssoYear, m.EssoLetter,
		createdByArg,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create military personnel: %w", err)
	}

	return militaryID, nil
}

// UpdateMilitary full update of the editable fields.
func (r *PostgresMilitaryRepository) UpdateMilitary(ctx context.Context, militaryID string, m *domain.MilitaryPersonnel) error {
	if militaryID == "" {
		return fmt.Errorf("military_id is required")
	}
	if m == nil {
		return fmt.Errorf("military personnel is required")
	}
	if m.Surname == "" || m.Name == "" {
		return fmt.Errorf("surname and name are required")
	}

	var sendDateArg any = nil
	if m.SendDate != nil {
		sendDateArg = *m.SendDate
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE military_personnel SET
			surname = $2,
			name = $3,
			rank = NULLIF($4, ''),
			service_unit = NULLIF($5, ''),
			wish = NULLIF($6, ''),
			send_date = $7,
			comments = NULLIF($8, ''),
			military_personnel_id = NULLIF($9, ''),
			esso = NULLIF($10, ''),
			esso_year = NULLIF($11, ''),
			esso_letter = NULLIF($12, ''),
			updated_at = NOW()
		WHERE military_id = $1`,
		militaryID, m.Surname, m.Name, m.Rank, m.ServiceUnit, m.Wish,
		sendDateArg, m.Comments, m.RegistryNumber,
		m.Esso, m.EssoYear, m.EssoLetter,
	)
	if err != nil {
		return fmt.Errorf("failed to update military personnel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("military personnel not found: military_id '%s'", militaryID)
	}

	return nil
}

// DeleteMilitary removes a conscript record.
func (r *PostgresMilitaryRepository) DeleteMilitary(ctx context.Context, militaryID string) error {
	if militaryID == "" {
		return fmt.Errorf("military_id is required")
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM military_personnel WHERE military_id = $1`, militaryID)
	if err != nil {
		return fmt.Errorf("failed to delete military personnel: %w", err)
	}
	return nil
}
