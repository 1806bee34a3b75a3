package emaillogs

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventra/backend/internal/models"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert records the outcome of one delivery attempt. sentAt is set only
// for successful sends.
func (r *Repository) Insert(ctx context.Context, log *models.EmailLog) error {
	const query = `
		INSERT INTO email_logs (event_id, recipient_email, email_type, subject, status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		log.EventID, log.RecipientEmail, log.EmailType, log.Subject,
		log.Status, log.ErrorMessage, log.SentAt,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

// ListByEvent returns delivery records for one event, newest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID string) ([]models.EmailLog, error) {
	const query = `
		SELECT id, event_id, recipient_email, email_type, subject, status, error_message, sent_at, created_at
		FROM email_logs
		WHERE event_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()

	var logs []models.EmailLog
	for rows.Next() {
		var l models.EmailLog
		if err := rows.Scan(&l.ID, &l.EventID, &l.RecipientEmail, &l.EmailType, &l.Subject,
			&l.Status, &l.ErrorMessage, &l.SentAt, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
