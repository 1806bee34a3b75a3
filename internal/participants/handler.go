package participants

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventra/backend/internal/events"
	"github.com/eventra/backend/internal/mailer"
	"github.com/eventra/backend/internal/models"
	"github.com/eventra/backend/internal/users"
	"github.com/eventra/backend/pkg/queue"
	"github.com/eventra/backend/pkg/response"
)

// Handler handles participant availability HTTP endpoints.
type Handler struct {
	repo      *Repository
	eventRepo *events.Repository
	userRepo  *users.Repository
	queue     *queue.Queue
	logger    *zap.Logger
}

// NewHandler creates a participants handler.
func NewHandler(repo *Repository, eventRepo *events.Repository, userRepo *users.Repository, q *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, eventRepo: eventRepo, userRepo: userRepo, queue: q, logger: logger}
}

type submitRequest struct {
	EventID     string          `json:"eventId" binding:"required"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	IsAnonymous bool            `json:"isAnonymous"`
	TimeSlotIDs []string        `json:"timeSlotIds" binding:"required"`
	Votes       map[string]bool `json:"votes"`
}

// duplicateData mirrors the confirmation payload the share page expects when
// an email already submitted.
type duplicateData struct {
	ParticipantID uuid.UUID `json:"participantId"`
	ExistingName  string    `json:"existingName"`
	ExistingEmail string    `json:"existingEmail"`
}

// SubmitAvailability handles POST /api/event/submitAvailability.
func (h *Handler) SubmitAvailability(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sub := Submission{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		IsAnonymous: req.IsAnonymous,
	}
	for _, raw := range req.TimeSlotIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid time slot id: "+raw)
			return
		}
		sub.TimeSlotIDs = append(sub.TimeSlotIDs, id)
	}
	if len(req.Votes) > 0 {
		sub.Votes = make(map[uuid.UUID]bool, len(req.Votes))
		for raw, v := range req.Votes {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.BadRequest(c, "invalid time slot id in votes: "+raw)
				return
			}
			sub.Votes[id] = v
		}
	}

	ev, err := h.eventRepo.GetTree(c.Request.Context(), req.EventID)
	if errors.Is(err, events.ErrNotFound) {
		response.NotFound(c, "event not found")
		return
	}
	if err != nil {
		h.logger.Error("submit: load event failed", zap.Error(err), zap.String("event_id", req.EventID))
		response.Internal(c, "failed to load event")
		return
	}

	dup, err := Evaluate(ev, sub)
	switch {
	case errors.Is(err, ErrClosed):
		response.Forbidden(c, "This poll has ended and is no longer accepting responses")
		return
	case errors.Is(err, ErrSlotTaken):
		response.Conflict(c, err.Error())
		return
	case errors.Is(err, ErrValidation):
		response.BadRequest(c, err.Error())
		return
	case err != nil:
		response.Internal(c, "failed to validate submission")
		return
	}
	if dup != nil {
		h.respondDuplicate(c, dup)
		return
	}

	// Link the submission to a registered account when the email matches one.
	var userID *uuid.UUID
	if sub.Email != "" && !sub.IsAnonymous {
		if u, err := h.userRepo.GetByEmail(c.Request.Context(), sub.Email); err == nil && u != nil {
			userID = &u.UUID
		}
	}

	p, err := h.repo.Submit(c.Request.Context(), ev, sub, userID)
	if errors.Is(err, ErrDuplicateRace) {
		// Lost the race to a concurrent submission with the same email.
		h.respondDuplicate(c, &Duplicate{Name: sub.Name, Email: sub.Email})
		return
	}
	if err != nil {
		h.logger.Error("submit availability failed", zap.Error(err), zap.String("event_id", req.EventID))
		response.Internal(c, "failed to submit availability")
		return
	}

	if sub.Email != "" && !sub.IsAnonymous {
		h.enqueueConfirmation(c, ev, sub, p.DisplayName())
	}
	response.OK(c, gin.H{"message": "Availability submitted successfully", "participantId": p.ID})
}

func (h *Handler) respondDuplicate(c *gin.Context, dup *Duplicate) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "duplicate",
		"message": "Email already exists",
		"data": duplicateData{
			ParticipantID: dup.ParticipantID,
			ExistingName:  dup.Name,
			ExistingEmail: dup.Email,
		},
	})
}

// enqueueConfirmation queues the vote confirmation email. Best effort.
func (h *Handler) enqueueConfirmation(c *gin.Context, ev *models.Event, sub Submission, name string) {
	payload := queue.EmailPayload{
		EmailType:       queue.EmailTypeVoteConfirmation,
		EventID:         ev.ID,
		RecipientEmail:  sub.Email,
		ParticipantName: name,
		Subject:         "Vote Confirmation - " + ev.Name,
		BodyHTML:        mailer.VoteConfirmationEmail(ev.Name, name, mailer.FormatSlotList(ev, sub.TimeSlotIDs)),
	}
	if err := h.queue.EnqueueEmail(c.Request.Context(), payload); err != nil {
		h.logger.Warn("confirmation email enqueue failed", zap.Error(err), zap.String("event_id", ev.ID))
	}
}

type deleteAvailabilityRequest struct {
	EventID string `json:"eventId" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
}

// DeleteAvailability handles DELETE /api/event/deleteParticipantAvailability.
func (h *Handler) DeleteAvailability(c *gin.Context) {
	var req deleteAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	err := h.repo.Withdraw(c.Request.Context(), req.EventID, strings.TrimSpace(req.Email))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "participant not found")
		return
	}
	if err != nil {
		h.logger.Error("delete availability failed", zap.Error(err), zap.String("event_id", req.EventID))
		response.Internal(c, "failed to delete availability")
		return
	}
	response.OK(c, gin.H{"message": "Participant availability deleted successfully"})
}
