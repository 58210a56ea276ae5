package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"grafeio-data/internal/domain"
)

// PostgresRequestsRepository RequestsRepository backed by Postgres.
type PostgresRequestsRepository struct {
	db *sql.DB
}

func NewPostgresRequestsRepository(db *sql.DB) *PostgresRequestsRepository {
	return &PostgresRequestsRepository{db: db}
}

var _ RequestsRepository = (*PostgresRequestsRepository)(nil)

const requestColumns = `
	request_id::text,
	COALESCE(citizen_id::text, '') AS citizen_id,
	COALESCE(military_personnel_id::text, '') AS military_personnel_id,
	request_type,
	COALESCE(description, '') AS description,
	status,
	send_date,
	completion_date,
	COALESCE(notes, '') AS notes,
	created_at,
	updated_at,
	COALESCE(created_by::text, '') AS created_by`

func scanRequest(row rowScanner) (*domain.Request, error) {
	var req domain.Request
	var sendDate, completionDate sql.NullTime
	err := row.Scan(
		&req.RequestID,
		&req.CitizenID,
		&req.MilitaryPersonnelID,
		&req.RequestType,
		&req.Description,
		&req.Status,
		&sendDate,
		&completionDate,
		&req.Notes,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if sendDate.Valid {
		req.SendDate = &sendDate.Time
	}
	if completionDate.Valid {
		req.CompletionDate = &completionDate.Time
	}
	return &req, nil
}

// GetRequest fetches a single request by id.
func (r *PostgresRequestsRepository) GetRequest(ctx context.Context, requestID string) (*domain.Request, error) {
	if requestID == "" {
		return nil, fmt.Errorf("request_id is required")
	}

	query := fmt.Sprintf(`SELECT %s FROM requests WHERE request_id = $1`, requestColumns)

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, requestID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("request not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

// ListRequests paged list with filters and search. The search term is
// OR-composed across request_type and description.
func (r *PostgresRequestsRepository) ListRequests(ctx context.Context, filters RequestFilters, page, size int) ([]*domain.Request, int, error) {
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

	if filters.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filters.Status)
		argIdx++
	}
	if filters.RequestType != "" {
		where = append(where, fmt.Sprintf("request_type ILIKE $%d", argIdx))
		args = append(args, "%"+filters.RequestType+"%")
		argIdx++
	}
	if filters.CitizenID != "" {
		where = append(where, fmt.Sprintf("citizen_id = $%d", argIdx))
		args = append(args, filters.CitizenID)
		argIdx++
	}
	if filters.MilitaryPersonnelID != "" {
		where = append(where, fmt.Sprintf("military_personnel_id = $%d", argIdx))
		args = append(args, filters.MilitaryPersonnelID)
		argIdx++
	}
	if filters.SendFrom != nil {
		where = append(where, fmt.Sprintf("send_date >= $%d", argIdx))
		args = append(args, *filters.SendFrom)
		argIdx++
	}
	if filters.SendTo != nil {
		where = append(where, fmt.Sprintf("send_date <= $%d", argIdx))
		args = append(args, *filters.SendTo)
		argIdx++
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		where = append(where, fmt.Sprintf("(request_type ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, pattern)
		argIdx++
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM requests WHERE %s`, whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM requests
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, requestColumns, whereClause, argIdx, argIdx+1)
	args = append(args, size, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests := []*domain.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate requests: %w", err)
	}

	return requests, total, nil
}

// ListOverduePending pending requests whose send_date lies on or before
// cutoff, oldest first.
func (r *PostgresRequestsRepository) ListOverduePending(ctx context.Context, cutoff time.Time) ([]*domain.Request, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM requests
		WHERE status = $1 AND send_date IS NOT NULL AND send_date <= $2
		ORDER BY send_date
	`, requestColumns)

	rows, err := r.db.QueryContext(ctx, query, domain.RequestPending, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue requests: %w", err)
	}
	defer rows.Close()

	requests := []*domain.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}

	return requests, nil
}

// CreateRequest inserts a new request and returns its id.
func (r *PostgresRequestsRepository) CreateRequest(ctx context.Context, req *domain.Request) (string, error) {
	if req == nil {
		return "", fmt.Errorf("request is required")
	}
	if req.RequestType == "" {
		return "", fmt.Errorf("request_type is required")
	}
	if req.Status == "" {
		req.Status = domain.RequestPending
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	var citizenArg any = nil
	if req.CitizenID != "" {
		citizenArg = req.CitizenID
	}
	var militaryArg any = nil
	if req.MilitaryPersonnelID != "" {
		militaryArg = req.MilitaryPersonnelID
	}
	var sendDateArg any = nil
	if req.SendDate != nil {
		sendDateArg = *req.SendDate
	}
	var completionDateArg any = nil
	if req.CompletionDate != nil {
		completionDateArg = *req.CompletionDate
	}
	var createdByArg any = nil
	if req.CreatedBy != "" {
		createdByArg = req.CreatedBy
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO requests (
			request_id, citizen_id, military_personnel_id, request_type,
			description, status, send_date, completion_date, notes,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''), $10, NOW(), NOW())`,
		requestID, citizenArg, militaryArg, req.RequestType,
		req.Description, req.Status, sendDateArg, completionDateArg, req.Notes,
		createdByArg,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	return requestID, nil
}

// UpdateRequest full update of the editable fields. completion_date is
// written as-is: the service layer maintains it through the status rules.
func (r *PostgresRequestsRepository) UpdateRequest(ctx context.Context, requestID string, req *domain.Request) error {
	if requestID == "" {
		return fmt.Errorf("request_id is required")
	}
	if req == nil {
		return fmt.Errorf("request is required")
	}
	if req.RequestType == "" {
		return fmt.Errorf("request_type is required")
	}

	var citizenArg any = nil
	if req.CitizenID != "" {
		citizenArg = req.CitizenID
	}
	var militaryArg any = nil
	if req.MilitaryPersonnelID != "" {
		militaryArg = req.MilitaryPersonnelID
	}
	var sendDateArg any = nil
	if req.SendDate != nil {
		sendDateArg = *req.SendDate
	}
	var completionDateArg any = nil
	if req.CompletionDate != nil {
		completionDateArg = *req.CompletionDate
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE requests SET
			citizen_id = $2,
			military_personnel_id = $3,
			request_type = $4,
			description = NULLIF($5, ''),
			status = $6,
			send_date = $7,
			completion_date = $8,
			notes = NULLIF($9, ''),
			updated_at = NOW()
		WHERE request_id = $1`,
		requestID, citizenArg, militaryArg, req.RequestType,
		req.Description, req.Status, sendDateArg, completionDateArg, req.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("request not found: request_id '%s'", requestID)
	}

	return nil
}

// DeleteRequest removes a request.
func (r *PostgresRequestsRepository) DeleteRequest(ctx context.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("request_id is required")
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM requests WHERE request_id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	return nil
}
