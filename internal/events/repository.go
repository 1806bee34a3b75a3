package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventra/backend/internal/models"
)

var (
	// ErrNotFound means the event does not exist or is soft-deleted.
	ErrNotFound = errors.New("event not found")
	// ErrIDConflict means the generated share ID collided with an existing event.
	ErrIDConflict = errors.New("event id already exists")
)

const uniqueViolation = "23505"

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an event with its dates and time slots in one transaction.
// Returns ErrIDConflict when ev.ID collides so the caller can regenerate.
func (r *Repository) Create(ctx context.Context, ev *models.Event, dates []DateInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertEvent = `INSERT INTO events (id, creator_id, type, name, detail, location, is_anonymous_allowed, can_multiple_vote, share_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING status, created_at, updated_at`
	err = tx.QueryRow(ctx, insertEvent,
		ev.ID, ev.CreatorID, ev.Type, ev.Name, ev.Detail, ev.Location,
		ev.IsAnonymousAllowed, ev.CanMultipleVote, ev.ShareURL,
	).Scan(&ev.Status, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrIDConflict
		}
		return err
	}

	ev.Dates = ev.Dates[:0]
	for _, d := range dates {
		var date models.EventDate
		date.EventID = ev.ID
		date.Date = d.Date
		const insertDate = `INSERT INTO event_dates (id, event_id, date)
			VALUES (gen_random_uuid(), $1, $2) RETURNING id`
		if err := tx.QueryRow(ctx, insertDate, ev.ID, d.Date).Scan(&date.ID); err != nil {
			return err
		}
		for _, s := range d.Slots {
			var slot models.TimeSlot
			slot.EventDateID = date.ID
			slot.StartTime = s.StartTime
			slot.EndTime = s.EndTime
			const insertSlot = `INSERT INTO event_time_slots (id, event_date_id, start_time, end_time)
				VALUES (gen_random_uuid(), $1, $2::time, $3::time) RETURNING id`
			if err := tx.QueryRow(ctx, insertSlot, date.ID, s.StartTime, s.EndTime).Scan(&slot.ID); err != nil {
				return err
			}
			date.Slots = append(date.Slots, slot)
		}
		ev.Dates = append(ev.Dates, date)
	}

	return tx.Commit(ctx)
}

// GetByID returns the event row by ID. Soft-deleted events are not visible.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	const q = `SELECT id, creator_id, type, name, detail, location, status, is_anonymous_allowed, can_multiple_vote, share_url, created_at, updated_at
		FROM events WHERE id = $1 AND deleted = FALSE`
	var ev models.Event
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&ev.ID, &ev.CreatorID, &ev.Type, &ev.Name, &ev.Detail, &ev.Location,
		&ev.Status, &ev.IsAnonymousAllowed, &ev.CanMultipleVote, &ev.ShareURL,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// GetTree returns the event with nested dates, time slots, participants and
// their availability rows. Dates and slots come back ordered by (date,
// start_time) so downstream tie-breaks are deterministic.
func (r *Repository) GetTree(ctx context.Context, id string) (*models.Event, error) {
	ev, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	const datesQ = `SELECT d.id, d.event_id, d.date,
			s.id, s.event_date_id, to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI')
		FROM event_dates d
		LEFT JOIN event_time_slots s ON s.event_date_id = d.id
		WHERE d.event_id = $1
		ORDER BY d.date, s.start_time`
	rows, err := r.pool.Query(ctx, datesQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dateIdx := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			date      models.EventDate
			slotID    *uuid.UUID
			slotDate  *uuid.UUID
			startTime *string
			endTime   *string
		)
		if err := rows.Scan(&date.ID, &date.EventID, &date.Date, &slotID, &slotDate, &startTime, &endTime); err != nil {
			return nil, err
		}
		i, ok := dateIdx[date.ID]
		if !ok {
			i = len(ev.Dates)
			dateIdx[date.ID] = i
			ev.Dates = append(ev.Dates, date)
		}
		if slotID != nil {
			ev.Dates[i].Slots = append(ev.Dates[i].Slots, models.TimeSlot{
				ID:          *slotID,
				EventDateID: *slotDate,
				StartTime:   *startTime,
				EndTime:     *endTime,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const participantsQ = `SELECT p.id, p.event_id, p.user_id, p.participant_name, p.participant_email, p.is_anonymous, p.status, p.created_at,
			a.id, a.participant_id, a.time_slot_id, a.vote, a.created_at, a.updated_at
		FROM event_participants p
		LEFT JOIN participant_availability a ON a.participant_id = p.id
		WHERE p.event_id = $1
		ORDER BY p.created_at`
	prows, err := r.pool.Query(ctx, participantsQ, id)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	partIdx := make(map[uuid.UUID]int)
	for prows.Next() {
		var (
			p        models.Participant
			availID  *uuid.UUID
			availPID *uuid.UUID
			slotID   *uuid.UUID
			vote     *bool
			aCreated *time.Time
			aUpdated *time.Time
		)
		if err := prows.Scan(&p.ID, &p.EventID, &p.UserID, &p.Name, &p.Email, &p.IsAnonymous, &p.Status, &p.CreatedAt,
			&availID, &availPID, &slotID, &vote, &aCreated, &aUpdated); err != nil {
			return nil, err
		}
		i, ok := partIdx[p.ID]
		if !ok {
			i = len(ev.Participants)
			partIdx[p.ID] = i
			ev.Participants = append(ev.Participants, p)
		}
		if availID != nil {
			a := models.ParticipantAvailability{
				ID:            *availID,
				ParticipantID: *availPID,
				TimeSlotID:    *slotID,
				Vote:          *vote,
			}
			if aCreated != nil {
				a.CreatedAt = *aCreated
			}
			if aUpdated != nil {
				a.UpdatedAt = *aUpdated
			}
			ev.Participants[i].Availability = append(ev.Participants[i].Availability, a)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}
	return ev, nil
}

// ListByCreator returns all non-deleted events created by the user, newest first.
func (r *Repository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error) {
	const q = `SELECT id, creator_id, type, name, detail, location, status, is_anonymous_allowed, can_multiple_vote, share_url, created_at, updated_at
		FROM events WHERE creator_id = $1 AND deleted = FALSE ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Event
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(
			&ev.ID, &ev.CreatorID, &ev.Type, &ev.Name, &ev.Detail, &ev.Location,
			&ev.Status, &ev.IsAnonymousAllowed, &ev.CanMultipleVote, &ev.ShareURL,
			&ev.CreatedAt, &ev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// UpdateStatus sets the event status and returns the updated record.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status models.EventStatus) (*models.Event, error) {
	const q = `UPDATE events SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted = FALSE
		RETURNING id, creator_id, type, name, detail, location, status, is_anonymous_allowed, can_multiple_vote, share_url, created_at, updated_at`
	var ev models.Event
	err := r.pool.QueryRow(ctx, q, status, id).Scan(
		&ev.ID, &ev.CreatorID, &ev.Type, &ev.Name, &ev.Detail, &ev.Location,
		&ev.Status, &ev.IsAnonymousAllowed, &ev.CanMultipleVote, &ev.ShareURL,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// SoftDelete marks the event deleted without removing rows.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	const q = `UPDATE events SET deleted = TRUE, updated_at = NOW() WHERE id = $1 AND deleted = FALSE`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
