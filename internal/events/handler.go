package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventra/backend/internal/availability"
	"github.com/eventra/backend/internal/mailer"
	"github.com/eventra/backend/internal/middleware"
	"github.com/eventra/backend/internal/models"
	"github.com/eventra/backend/internal/users"
	"github.com/eventra/backend/pkg/queue"
	"github.com/eventra/backend/pkg/response"
)

// idRetries bounds regeneration attempts when a generated share ID collides.
const idRetries = 3

// Handler handles event HTTP endpoints.
type Handler struct {
	repo         *Repository
	userRepo     *users.Repository
	queue        *queue.Queue
	shareURLBase string
	logger       *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository, userRepo *users.Repository, q *queue.Queue, shareURLBase string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, userRepo: userRepo, queue: q, shareURLBase: shareURLBase, logger: logger}
}

type slotRequest struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type dateRequest struct {
	Date      string        `json:"date" binding:"required"`
	TimeSlots []slotRequest `json:"timeSlots" binding:"required"`
}

type createEventRequest struct {
	Name               string           `json:"name" binding:"required"`
	Detail             string           `json:"detail"`
	Location           string           `json:"location"`
	Type               models.EventType `json:"type" binding:"required"`
	IsAnonymousAllowed bool             `json:"isAnonymousAllowed"`
	CanMultipleVote    bool             `json:"canMultipleVote"`
	DateTimeSlots      []dateRequest    `json:"dateTimeSlots" binding:"required"`
}

// Create handles POST /api/event/createEvent.
func (h *Handler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Type != models.EventTypeOneToOne && req.Type != models.EventTypeGroup {
		response.BadRequest(c, "type must be one_to_one or group")
		return
	}

	creatorID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	creator := creatorID.(uuid.UUID)

	dates := make([]DateInput, 0, len(req.DateTimeSlots))
	for _, d := range req.DateTimeSlots {
		day, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", d.Date))
			return
		}
		di := DateInput{Date: day}
		for _, s := range d.TimeSlots {
			di.Slots = append(di.Slots, SlotInput{StartTime: s.StartTime, EndTime: s.EndTime})
		}
		dates = append(dates, di)
	}
	if err := ValidateSchedule(req.Type, dates, time.Now()); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.userRepo.GetByUUID(c.Request.Context(), creator)
	if err != nil {
		response.Internal(c, "failed to load creator")
		return
	}
	if u == nil {
		response.NotFound(c, "creator not found")
		return
	}

	ev := &models.Event{
		CreatorID:          creator,
		Type:               req.Type,
		Name:               req.Name,
		Detail:             req.Detail,
		Location:           req.Location,
		IsAnonymousAllowed: req.IsAnonymousAllowed,
		CanMultipleVote:    req.CanMultipleVote,
	}

	for attempt := 0; attempt < idRetries; attempt++ {
		id, err := NewShareID(creator.String())
		if err != nil {
			response.Internal(c, "failed to generate event id")
			return
		}
		ev.ID = id
		ev.ShareURL = h.shareURLBase + "/event/share/" + id

		err = h.repo.Create(c.Request.Context(), ev, dates)
		if errors.Is(err, ErrIDConflict) {
			continue
		}
		if err != nil {
			h.logger.Error("create event failed", zap.Error(err))
			response.Internal(c, "failed to create event")
			return
		}
		response.Created(c, ev)
		return
	}
	response.Internal(c, "failed to allocate event id")
}

// EventDetail is the shared-view payload: the event tree plus per-slot vote
// tallies and the current winner.
type EventDetail struct {
	*models.Event
	Tallies   []availability.SlotTally `json:"slot_tallies"`
	MostVoted *availability.MostVoted  `json:"most_voted,omitempty"`
}

// GetByID handles GET /api/event/getEventDataById?event_id=.
func (h *Handler) GetByID(c *gin.Context) {
	id := c.Query("event_id")
	if id == "" {
		response.BadRequest(c, "event_id is required")
		return
	}
	ev, err := h.repo.GetTree(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "event not found")
		return
	}
	if err != nil {
		h.logger.Error("get event failed", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "failed to load event")
		return
	}
	response.OK(c, EventDetail{
		Event:     ev,
		Tallies:   availability.Tally(ev),
		MostVoted: availability.Pick(ev),
	})
}

// ListByUser handles GET /api/event/getEventsByUser?creator_id=.
func (h *Handler) ListByUser(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Query("creator_id"))
	if err != nil {
		response.BadRequest(c, "invalid creator_id")
		return
	}
	list, err := h.repo.ListByCreator(c.Request.Context(), creatorID)
	if err != nil {
		h.logger.Error("list events failed", zap.Error(err))
		response.Internal(c, "failed to list events")
		return
	}
	if list == nil {
		list = []models.Event{}
	}
	response.OK(c, list)
}

type updateStatusRequest struct {
	EventID string             `json:"eventId" binding:"required"`
	Status  models.EventStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/event/updateStatus. Completing an event
// picks the winning slot and notifies every participant with an email address.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !req.Status.Valid() {
		response.BadRequest(c, "invalid status: "+string(req.Status))
		return
	}

	ev, err := h.repo.UpdateStatus(c.Request.Context(), req.EventID, req.Status)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "event not found")
		return
	}
	if err != nil {
		h.logger.Error("update status failed", zap.Error(err), zap.String("event_id", req.EventID))
		response.Internal(c, "failed to update status")
		return
	}

	if req.Status == models.EventStatusCompleted {
		h.notifyCompletion(c, ev)
	}
	response.OK(c, ev)
}

// notifyCompletion enqueues a completion email per identifiable participant.
// Delivery is best effort: enqueue failures are logged, never surfaced.
func (h *Handler) notifyCompletion(c *gin.Context, ev *models.Event) {
	tree, err := h.repo.GetTree(c.Request.Context(), ev.ID)
	if err != nil {
		h.logger.Error("completion notify: load tree failed", zap.Error(err), zap.String("event_id", ev.ID))
		return
	}

	var finalDateTime string
	if winner := availability.Pick(tree); winner != nil {
		finalDateTime = mailer.FormatSlot(winner.Date, winner.StartTime, winner.EndTime)
	}
	subject := "Event Completed - " + tree.Name

	for _, p := range tree.Participants {
		if p.IsAnonymous || p.Email == nil || *p.Email == "" {
			continue
		}
		payload := queue.EmailPayload{
			EmailType:       queue.EmailTypeEventCompletion,
			EventID:         tree.ID,
			RecipientEmail:  *p.Email,
			ParticipantName: p.DisplayName(),
			Subject:         subject,
			BodyHTML:        mailer.EventCompletionEmail(tree.Name, p.DisplayName(), finalDateTime, tree.Location, tree.Detail),
		}
		if err := h.queue.EnqueueEmail(c.Request.Context(), payload); err != nil {
			h.logger.Warn("completion email enqueue failed", zap.Error(err), zap.String("event_id", tree.ID))
		}
	}
}

// Delete handles DELETE /api/event/deleteEvent/:event_id (soft delete).
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("event_id")
	err := h.repo.SoftDelete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "event not found")
		return
	}
	if err != nil {
		h.logger.Error("delete event failed", zap.Error(err), zap.String("event_id", id))
		response.Internal(c, "failed to delete event")
		return
	}
	response.OK(c, gin.H{"message": "Event deleted successfully"})
}
