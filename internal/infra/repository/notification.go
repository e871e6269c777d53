package repository

import (
	"context"
	"time"

	"room-reserve/internal/infra"
	"room-reserve/internal/infra/db"
)

// NotificationRepository is a transactional outbox: job rows commit together
// with the reservation change that caused them and are drained by an
// external sender.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, query, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}
