package repository

import (
	"context"
	"time"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/infra/db"

	"github.com/google/uuid"
)

type AuditRepository struct {
	db db.DBTX
}

func NewAuditRepository(db db.DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, ev event.Event, at time.Time) (uuid.UUID, error) {
	id := uuid.New()
	payload := ev.Payload
	if payload == nil {
		payload = event.Payload{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (id, event_type, entity_id, user_id, doctor_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, ev.Type.String(), ev.EntityID, ev.UserID, ev.DoctorID, payload, at,
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert audit log", err)
	}
	return id, nil
}
