package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLogStatus for delivery.
const (
	EmailLogStatusPending = "pending"
	EmailLogStatusSent    = "sent"
	EmailLogStatusFailed  = "failed"
)

// EmailLog records delivered (or failed) notification emails.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	EventID        *string    `json:"event_id,omitempty"`
	RecipientEmail string     `json:"recipient_email"`
	EmailType      string     `json:"email_type"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
