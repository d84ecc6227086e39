package repository

import (
	"context"
	"time"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/user"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const appointmentColumns = `id, user_id, doctor_id, slot_date, slot_time, user_data, doctor_data,
	amount, booked_at, cancelled, completed, payment`

type AppointmentRepository struct {
	db db.DBTX
}

func NewAppointmentRepository(db db.DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts the appointment. A second live appointment for the same slot
// violates appointments_active_slot_idx and is reported as KindDuplicateKey.
func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID(), a.UserID(), a.DoctorID(), a.Slot().Date(), a.Slot().Time(),
		a.UserData(), a.DoctorData(), a.Amount(), a.BookedAt(),
		a.Cancelled(), a.Completed(), a.Paid(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}
	return a, nil
}

func (r *AppointmentRepository) LockByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, id)
	a, err := scanAppointment(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock appointment", err)
	}
	return a, nil
}

func (r *AppointmentRepository) UpdateFlags(ctx context.Context, a *appointment.Appointment) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE appointments SET cancelled = $2, completed = $3, payment = $4 WHERE id = $1`,
		a.ID(), a.Cancelled(), a.Completed(), a.Paid(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE user_id = $1 ORDER BY booked_at DESC`, userID)
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE doctor_id = $1 ORDER BY booked_at DESC`, doctorID)
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]*appointment.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY booked_at DESC`)
}

func (r *AppointmentRepository) Latest(ctx context.Context, limit int) ([]*appointment.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY booked_at DESC LIMIT $1`, limit)
}

func (r *AppointmentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM appointments`).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count appointments", err)
	}
	return n, nil
}

func (r *AppointmentRepository) list(ctx context.Context, sql string, args ...any) ([]*appointment.Appointment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	out := []*appointment.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointments", err)
	}
	return out, nil
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id, userID, doctorID uuid.UUID
		date, slotTime       string
		userData             user.Snapshot
		doctorData           doctor.Snapshot
		amount               int64
		bookedAt             time.Time
		flags                appointment.Flags
	)
	if err := row.Scan(
		&id, &userID, &doctorID, &date, &slotTime, &userData, &doctorData,
		&amount, &bookedAt, &flags.Cancelled, &flags.Completed, &flags.Payment,
	); err != nil {
		return nil, err
	}

	slot, err := appointment.NewSlot(doctorID, date, slotTime)
	if err != nil {
		return nil, err
	}
	return appointment.Reconstruct(id, userID, slot, userData, doctorData, amount, bookedAt, flags), nil
}
