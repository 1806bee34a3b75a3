package participants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventra/backend/internal/models"
)

const uniqueViolation = "23505"

// ErrDuplicateRace means a concurrent submission for the same email landed
// first; the unique index on (event_id, participant_email) rejected ours.
var ErrDuplicateRace = errors.New("a submission for this email already exists")

// Repository persists participants, their availability, and the vote audit log.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a participants repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Submit creates the participant, its availability rows, and the audit vote
// row in a single transaction. Anonymous submissions store the display name
// "Anonymous" and no email on the participant row; the email (if any) only
// reaches the append-only event_votes audit.
func (r *Repository) Submit(ctx context.Context, ev *models.Event, sub Submission, userID *uuid.UUID) (*models.Participant, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	p := &models.Participant{
		EventID:     ev.ID,
		UserID:      userID,
		Name:        sub.Name,
		IsAnonymous: sub.IsAnonymous,
		Status:      "pending",
	}
	if sub.IsAnonymous {
		p.Name = models.AnonymousName
	} else {
		email := sub.Email
		p.Email = &email
	}

	const insertParticipant = `INSERT INTO event_participants (id, event_id, user_id, participant_name, participant_email, is_anonymous, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err = tx.QueryRow(ctx, insertParticipant, p.EventID, p.UserID, p.Name, p.Email, p.IsAnonymous, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateRace
		}
		return nil, err
	}

	const insertAvailability = `INSERT INTO participant_availability (id, participant_id, time_slot_id, vote)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id, created_at, updated_at`
	for _, slotID := range sub.TimeSlotIDs {
		a := models.ParticipantAvailability{
			ParticipantID: p.ID,
			TimeSlotID:    slotID,
			Vote:          sub.VoteFor(slotID),
		}
		if err := tx.QueryRow(ctx, insertAvailability, p.ID, slotID, a.Vote).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		p.Availability = append(p.Availability, a)
	}

	var voterEmail *string
	if sub.Email != "" {
		email := sub.Email
		voterEmail = &email
	}
	const insertVote = `INSERT INTO event_votes (id, event_id, voter_email, is_anonymous)
		VALUES (gen_random_uuid(), $1, $2, $3)`
	if _, err := tx.Exec(ctx, insertVote, ev.ID, voterEmail, sub.IsAnonymous); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Withdraw removes a participant's availability rows and the participant
// itself as one transaction, so a failure partway leaves no orphaned rows.
func (r *Repository) Withdraw(ctx context.Context, eventID, email string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const findParticipant = `SELECT id FROM event_participants
		WHERE event_id = $1 AND participant_email = $2 AND NOT is_anonymous
		FOR UPDATE`
	var participantID uuid.UUID
	err = tx.QueryRow(ctx, findParticipant, eventID, email).Scan(&participantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM participant_availability WHERE participant_id = $1`, participantID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM event_participants WHERE id = $1`, participantID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
