package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"grafeio-data/internal/domain"
)

// PostgresRemindersRepository RemindersRepository backed by Postgres.
type PostgresRemindersRepository struct {
	db *sql.DB
}

func NewPostgresRemindersRepository(db *sql.DB) *PostgresRemindersRepository {
	return &PostgresRemindersRepository{db: db}
}

var _ RemindersRepository = (*PostgresRemindersRepository)(nil)

const reminderColumns = `
	reminder_id::text,
	title,
	COALESCE(description, '') AS description,
	reminder_date,
	reminder_type,
	COALESCE(related_request_id::text, '') AS related_request_id,
	is_completed,
	created_at,
	updated_at,
	COALESCE(created_by::text, '') AS created_by`

func scanReminder(row rowScanner) (*domain.Reminder, error) {
	var rem domain.Reminder
	err := row.Scan(
		&rem.ReminderID,
		&rem.Title,
		&rem.Description,
		&rem.ReminderDate,
		&rem.ReminderType,
		&rem.RelatedRequestID,
		&rem.IsCompleted,
		&rem.CreatedAt,
		&rem.UpdatedAt,
		&rem.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

// GetReminder fetches a single reminder by id.
func (r *PostgresRemindersRepository) GetReminder(ctx context.Context, reminderID string) (*domain.Reminder, error) {
	if reminderID == "" {
		return nil, fmt.Errorf("reminder_id is required")
	}

	query := fmt.Sprintf(`SELECT %s FROM reminders WHERE reminder_id = $1`, reminderColumns)

	rem, err := scanReminder(r.db.QueryRowContext(ctx, query, reminderID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reminder not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return rem, nil
}

// ListReminders filtered list ordered by reminder_date ascending.
func (r *PostgresRemindersRepository) ListReminders(ctx context.Context, filters ReminderFilters) ([]*domain.Reminder, error) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filters.Type != "" {
		where = append(where, fmt.Sprintf("reminder_type = $%d", argIdx))
		args = append(args, filters.Type)
		argIdx++
	}
	if filters.OnlyOpen {
		where = append(where, "is_completed = FALSE")
	}
	if filters.DateFrom != nil {
		where = append(where, fmt.Sprintf("reminder_date >= $%d", argIdx))
		args = append(args, *filters.DateFrom)
		argIdx++
	}
	if filters.DateTo != nil {
		where = append(where, fmt.Sprintf("reminder_date <= $%d", argIdx))
		args = append(args, *filters.DateTo)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reminders
		WHERE %s
		ORDER BY reminder_date
	`, reminderColumns, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	reminders := []*domain.Reminder{}
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}

// HolidayDatesForYear dates (YYYY-MM-DD) already carrying a ΕΟΡΤΗ reminder
// in the given year.
func (r *PostgresRemindersRepository) HolidayDatesForYear(ctx context.Context, year int) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT to_char(reminder_date, 'YYYY-MM-DD')
		 FROM reminders
		 WHERE reminder_type = $1 AND EXTRACT(YEAR FROM reminder_date) = $2`,
		domain.ReminderHoliday, year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get holiday reminder dates: %w", err)
	}
	defer rows.Close()

	dates := map[string]bool{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan reminder date: %w", err)
		}
		dates[d] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminder dates: %w", err)
	}
	return dates, nil
}

// OpenRequestReminderIDs related_request_ids that already have an
// uncompleted ΑΙΤΗΜΑ reminder.
func (r *PostgresRemindersRepository) OpenRequestReminderIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT related_request_id::text
		 FROM reminders
		 WHERE reminder_type = $1 AND is_completed = FALSE AND related_request_id IS NOT NULL`,
		domain.ReminderRequest,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get open request reminders: %w", err)
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan request id: %w", err)
		}
		ids[id] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate request ids: %w", err)
	}
	return ids, nil
}

// CreateReminder inserts a new reminder and returns its id.
func (r *PostgresRemindersRepository) CreateReminder(ctx context.Context, rem *domain.Reminder) (string, error) {
	if rem == nil {
		return "", fmt.Errorf("reminder is required")
	}
	if rem.Title == "" {
		return "", fmt.Errorf("title is required")
	}
	if rem.ReminderDate.IsZero() {
		return "", fmt.Errorf("reminder_date is required")
	}
	if rem.ReminderType == "" {
		rem.ReminderType = domain.ReminderGeneral
	}

	reminderID := rem.ReminderID
	if reminderID == "" {
		reminderID = uuid.NewString()
	}

	var relatedArg any = nil
	if rem.RelatedRequestID != "" {
		relatedArg = rem.RelatedRequestID
	}
	var createdByArg any = nil
	if rem.CreatedBy != "" {
		createdByArg = rem.CreatedBy
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (
			reminder_id, title, description, reminder_date, reminder_type,
			related_request_id, is_completed, created_by, created_at, updated_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, NOW(), NOW())`,
		reminderID, rem.Title, rem.Description, rem.ReminderDate, rem.ReminderType,
		relatedArg, rem.IsCompleted, createdByArg,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create reminder: %w", err)
	}

	return reminderID, nil
}

// UpdateReminder full update of the editable fields.
func (r *PostgresRemindersRepository) UpdateReminder(ctx context.Context, reminderID string, rem *domain.Reminder) error {
	if reminderID == "" {
		return fmt.Errorf("reminder_id is required")
	}
	if rem == nil {
		return fmt.Errorf("reminder is required")
	}
	if rem.Title == "" {
		return fmt.Errorf("title is required")
	}

	var relatedArg any = nil
	if rem.RelatedRequestID != "" {
		relatedArg = rem.RelatedRequestID
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET
			title = $2,
			description = NULLIF($3, ''),
			reminder_date = $4,
			reminder_type = $5,
			related_request_id = $6,
			is_completed = $7,
			updated_at = NOW()
		WHERE reminder_id = $1`,
		reminderID, rem.Title, rem.Description, rem.ReminderDate, rem.ReminderType,
		relatedArg, rem.IsCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("reminder not found: reminder_id '%s'", reminderID)
	}

	return nil
}

// SetReminderCompleted flips the completion flag.
func (r *PostgresRemindersRepository) SetReminderCompleted(ctx context.Context, reminderID string, completed bool) error {
	if reminderID == "" {
		return fmt.Errorf("reminder_id is required")
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET is_completed = $2, updated_at = NOW() WHERE reminder_id = $1`,
		reminderID, completed,
	)
	if err != nil {
		return fmt.Errorf("failed to set reminder completed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("reminder not found: reminder_id '%s'", reminderID)
	}

	return nil
}

// DeleteReminder removes a reminder.
func (r *PostgresRemindersRepository) DeleteReminder(ctx context.Context, reminderID string) error {
	if reminderID == "" {
		return fmt.Errorf("reminder_id is required")
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE reminder_id = $1`, reminderID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}
