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

// PostgresCitizensRepository CitizensRepository backed by Postgres.
type PostgresCitizensRepository struct {
	db *sql.DB
}

func NewPostgresCitizensRepository(db *sql.DB) *PostgresCitizensRepository {
	return &PostgresCitizensRepository{db: db}
}

var _ CitizensRepository = (*PostgresCitizensRepository)(nil)

const citizenColumns = `
	citizen_id::text,
	surname,
	name,
	COALESCE(patronymic, '') AS patronymic,
	COALESCE(recommendation_from, '') AS recommendation_from,
	COALESCE(mobile_phone, '') AS mobile_phone,
	COALESCE(landline_phone, '') AS landline_phone,
	COALESCE(email, '') AS email,
	COALESCE(address, '') AS address,
	COALESCE(postal_code, '') AS postal_code,
	COALESCE(municipality, '') AS municipality,
	COALESCE(area, '') AS area,
	COALESCE(electoral_district, '') AS electoral_district,
	last_contact_date,
	COALESCE(notes, '') AS notes,
	created_at,
	updated_at,
	COALESCE(created_by::text, '') AS created_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCitizen(row rowScanner) (*domain.Citizen, error) {
	var c domain.Citizen
	var lastContact sql.NullTime
	err := row.Scan(
		&c.CitizenID,
		&c.Surname,
		&c.Name,
		&c.Patronymic,
		&c.RecommendationFrom,
		&c.MobilePhone,
		&c.LandlinePhone,
		&c.Email,
		&c.Address,
		&c.PostalCode,
		&c.Municipality,
		&c.Area,
		&c.ElectoralDistrict,
		&lastContact,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if lastContact.Valid {
		c.LastContactDate = &lastContact.Time
	}
	return &c, nil
}

// GetCitizen fetches a single citizen by id.
func (r *PostgresCitizensRepository) GetCitizen(ctx context.Context, citizenID string) (*domain.Citizen, error) {
	if citizenID == "" {
		return nil, fmt.Errorf("citizen_id is required")
	}

	query := fmt.Sprintf(`SELECT %s FROM citizens WHERE citizen_id = $1`, citizenColumns)

	citizen, err := scanCitizen(r.db.QueryRowContext(ctx, query, citizenID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("citizen not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get citizen: %w", err)
	}
	return citizen, nil
}

// GetCitizensByIDs batch point lookup; missing ids are absent from the map.
func (r *PostgresCitizensRepository) GetCitizensByIDs(ctx context.Context, ids []string) (map[string]*domain.Citizen, error) {
	result := map[string]*domain.Citizen{}
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM citizens WHERE citizen_id = ANY($1)`, citizenColumns)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get citizens by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCitizen(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan citizen: %w", err)
		}
		result[c.CitizenID] = c
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate citizens: %w", err)
	}
	return result, nil
}

// ListCitizens paged list with filters and search.
// The WHERE clause is a conjunction of the active filters; the search term
// is OR-composed across surname, name, mobile_phone and email.
func (r *PostgresCitizensRepository) ListCitizens(ctx context.Context, filters CitizenFilters, page, size int) ([]*domain.Citizen, int, error) {
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

	if filters.Municipality != "" {
		where = append(where, fmt.Sprintf("municipality = $%d", argIdx))
		args = append(args, filters.Municipality)
		argIdx++
	}
	if filters.ElectoralDistrict != "" {
		where = append(where, fmt.Sprintf("electoral_district = $%d", argIdx))
		args = append(args, filters.ElectoralDistrict)
		argIdx++
	}
	if filters.RecommendationFrom != "" {
		where = append(where, fmt.Sprintf("recommendation_from ILIKE $%d", argIdx))
		args = append(args, "%"+filters.RecommendationFrom+"%")
		argIdx++
	}
	if filters.CreatedFrom != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *filters.CreatedFrom)
		argIdx++
	}
	if filters.CreatedTo != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *filters.CreatedTo)
		argIdx++
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		where = append(where, fmt.Sprintf("(surname ILIKE $%d OR name ILIKE $%d OR mobile_phone ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx, argIdx))
		args = append(args, pattern)
		argIdx++
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM citizens WHERE %s`, whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count citizens: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM citizens
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, citizenColumns, whereClause, argIdx, argIdx+1)
	args = append(args, size, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list citizens: %w", err)
	}
	defer rows.Close()

	citizens := []*domain.Citizen{}
	for rows.Next() {
		c, err := scanCitizen(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan citizen: %w", err)
		}
		citizens = append(citizens, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate citizens: %w", err)
	}

	return citizens, total, nil
}

// CreateCitizen inserts a new citizen and returns its id.
func (r *PostgresCitizensRepository) CreateCitizen(ctx context.Context, citizen *domain.Citizen) (string, error) {
	if citizen == nil {
		return "", fmt.Errorf("citizen is required")
	}
	if citizen.Surname == "" || citizen.Name == "" {
		return "", fmt.Errorf("surname and name are required")
	}

	citizenID := citizen.CitizenID
	if citizenID == "" {
		citizenID = uuid.NewString()
	}

	var lastContactArg any = nil
	if citizen.LastContactDate != nil {
		lastContactArg = *citizen.LastContactDate
	}
	var createdByArg any = nil
	if citizen.CreatedBy != "" {
		createdByArg = citizen.CreatedBy
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO citizens (
			citizen_id, surname, name, patronymic, recommendation_from,
			mobile_phone, landline_phone, email, address, postal_code,
			municipality, area, electoral_district, last_contact_date, notes,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''),
			NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''),
			NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), $14, NULLIF($15, ''),
			$16, NOW(), NOW())`,
		citizenID, citizen.Surname, citizen.Name, citizen.Patronymic, citizen.RecommendationFrom,
		citizen.MobilePhone, citizen.LandlinePhone, citizen.Email, citizen.Address, citizen.PostalCode,
		citizen.Municipality, citizen.Area, citizen.ElectoralDistrict, lastContactArg, citizen.Notes,
		createdByArg,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create citizen: %w", err)
	}

	return citizenID, nil
}

// UpdateCitizen full update of the editable fields.
func (r *PostgresCitizensRepository) UpdateCitizen(ctx context.Context, citizenID string, citizen *domain.Citizen) error {
	if citizenID == "" {
		return fmt.Errorf("citizen_id is required")
	}
	if citizen == nil {
		return fmt.Errorf("citizen is required")
	}
	if citizen.Surname == "" || citizen.Name == "" {
		return fmt.Errorf("surname and name are required")
	}

	var lastContactArg any = nil
	if citizen.LastContactDate != nil {
		lastContactArg = *citizen.LastContactDate
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE citizens SET
			surname = $2,
			name = $3,
			patronymic = NULLIF($4, ''),
			recommendation_from = NULLIF($5, ''),
			mobile_phone = NULLIF($6, ''),
			landline_phone = NULLIF($7, ''),
			email = NULLIF($8, ''),
			address = NULLIF($9, ''),
			postal_code = NULLIF($10, ''),
			municipality = NULLIF($11, ''),
			area = NULLIF($12, ''),
			electoral_district = NULLIF($13, ''),
			last_contact_date = $14,
			notes = NULLIF($15, ''),
			updated_at = NOW()
		WHERE citizen_id = $1`,
		citizenID, citizen.Surname, citizen.Name, citizen.Patronymic, citizen.RecommendationFrom,
		citizen.MobilePhone, citizen.LandlinePhone, citizen.Email, citizen.Address, citizen.PostalCode,
		citizen.Municipality, citizen.Area, citizen.ElectoralDistrict, lastContactArg, citizen.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update citizen: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("citizen not found: citizen_id '%s'", citizenID)
	}

	return nil
}

// DeleteCitizen removes a citizen. Requests keep their citizen_id; listings
// render the unknown-requester placeholder for them.
func (r *PostgresCitizensRepository) DeleteCitizen(ctx context.Context, citizenID string) error {
	if citizenID == "" {
		return fmt.Errorf("citizen_id is required")
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM citizens WHERE citizen_id = $1`, citizenID)
	if err != nil {
		return fmt.Errorf("failed to delete citizen: %w", err)
	}
	return nil
}
