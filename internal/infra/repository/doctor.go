package repository

import (
	"context"
	"time"

	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const doctorColumns = `id, name, email, speciality, degree, experience, about, fees, available, slots_booked, created_at`

type DoctorRepository struct {
	db db.DBTX
}

func NewDoctorRepository(db db.DBTX) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	row := r.db.QueryRow(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	d, err := scanDoctor(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find doctor by ID", err)
	}
	return d, nil
}

func (r *DoctorRepository) LockByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	row := r.db.QueryRow(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1 FOR UPDATE`, id)
	d, err := scanDoctor(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock doctor", err)
	}
	return d, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]*doctor.Doctor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list doctors", err)
	}
	defer rows.Close()

	var out []*doctor.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan doctor", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate doctors", err)
	}
	return out, nil
}

func (r *DoctorRepository) UpdateSlots(ctx context.Context, id uuid.UUID, slots doctor.BookedSlots) error {
	tag, err := r.db.Exec(ctx, `UPDATE doctors SET slots_booked = $2 WHERE id = $1`, id, slots)
	if err != nil {
		return infra.WrapRepoErr("failed to update booked slots", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("doctor not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *DoctorRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE doctors SET available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return infra.WrapRepoErr("failed to update doctor availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("doctor not found", nil, infra.KindNotFound)
	}
	return nil
}

// UpdateProfile persists the doctor-editable profile fields.
func (r *DoctorRepository) UpdateProfile(ctx context.Context, d *doctor.Doctor) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE doctors SET fees = $2, about = $3, available = $4 WHERE id = $1`,
		d.ID(), d.Fees(), d.About(), d.Available(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update doctor profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("doctor not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanDoctor(row pgx.Row) (*doctor.Doctor, error) {
	var (
		id        uuid.UUID
		p         doctor.Profile
		available bool
		slots     doctor.BookedSlots
		createdAt time.Time
	)
	if err := row.Scan(
		&id, &p.Name, &p.Email, &p.Speciality, &p.Degree, &p.Experience, &p.About,
		&p.Fees, &available, &slots, &createdAt,
	); err != nil {
		return nil, err
	}
	return doctor.ReconstructDoctor(id, p, available, slots, createdAt), nil
}

func (r *DoctorRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM doctors`).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count doctors", err)
	}
	return n, nil
}
