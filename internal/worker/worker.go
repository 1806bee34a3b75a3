package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eventra/backend/internal/emaillogs"
	"github.com/eventra/backend/internal/mailer"
	"github.com/eventra/backend/internal/models"
	"github.com/eventra/backend/pkg/queue"
)

// EmailProcessor delivers queued notification emails and records each
// attempt in email_logs.
type EmailProcessor struct {
	queue  *queue.Queue
	sender *mailer.Sender
	logs   *emaillogs.Repository
	logger *zap.Logger
}

// NewEmailProcessor creates an email delivery processor.
func NewEmailProcessor(q *queue.Queue, sender *mailer.Sender, logs *emaillogs.Repository, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{queue: q, sender: sender, logs: logs, logger: logger}
}

// Process executes one email delivery job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeEmail {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	sendErr := p.sender.Send(payload.RecipientEmail, payload.Subject, payload.BodyHTML)
	p.record(ctx, payload, sendErr)
	if sendErr != nil {
		return fmt.Errorf("send email: %w", sendErr)
	}

	p.logger.Info("email delivered",
		zap.String("email_type", payload.EmailType),
		zap.String("event_id", payload.EventID),
	)
	return nil
}

func (p *EmailProcessor) record(ctx context.Context, payload queue.EmailPayload, sendErr error) {
	log := models.EmailLog{
		RecipientEmail: payload.RecipientEmail,
		EmailType:      payload.EmailType,
		Subject:        payload.Subject,
		Status:         models.EmailLogStatusSent,
	}
	if payload.EventID != "" {
		log.EventID = &payload.EventID
	}
	if sendErr != nil {
		log.Status = models.EmailLogStatusFailed
		log.ErrorMessage = sendErr.Error()
	} else {
		now := time.Now()
		log.SentAt = &now
	}
	if err := p.logs.Insert(ctx, &log); err != nil {
		p.logger.Error("email log insert failed", zap.Error(err), zap.String("event_id", payload.EventID))
	}
}

// Run starts the worker loop: dequeue, deliver, retry on error.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
