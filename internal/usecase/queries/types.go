package queries

import (
	"time"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/user"

	"github.com/google/uuid"
)

// AppointmentView represents read-optimized appointment data
type AppointmentView struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	DoctorID    uuid.UUID       `json:"doctorId"`
	SlotDate    string          `json:"slotDate"`
	SlotTime    string          `json:"slotTime"`
	UserData    user.Snapshot   `json:"userData"`
	DoctorData  doctor.Snapshot `json:"docData"`
	Amount      int64           `json:"amount"`
	BookedAt    time.Time       `json:"date"`
	Cancelled   bool            `json:"cancelled"`
	Payment     bool            `json:"payment"`
	IsCompleted bool            `json:"isCompleted"`
}

func toAppointmentView(a *appointment.Appointment) AppointmentView {
	return AppointmentView{
		ID:          a.ID(),
		UserID:      a.UserID(),
		DoctorID:    a.DoctorID(),
		SlotDate:    a.Slot().Date(),
		SlotTime:    a.Slot().Time(),
		UserData:    a.UserData(),
		DoctorData:  a.DoctorData(),
		Amount:      a.Amount(),
		BookedAt:    a.BookedAt(),
		Cancelled:   a.Cancelled(),
		Payment:     a.Paid(),
		IsCompleted: a.Completed(),
	}
}

func toAppointmentViews(list []*appointment.Appointment) []AppointmentView {
	out := make([]AppointmentView, 0, len(list))
	for _, a := range list {
		out = append(out, toAppointmentView(a))
	}
	return out
}

// DoctorView is the public doctor profile. Contact details are not exposed.
type DoctorView struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Speciality  string             `json:"speciality"`
	Degree      string             `json:"degree"`
	Experience  string             `json:"experience"`
	About       string             `json:"about"`
	Fees        int64              `json:"fees"`
	Available   bool               `json:"available"`
	SlotsBooked doctor.BookedSlots `json:"slotsBooked"`
}

func toDoctorView(d *doctor.Doctor) DoctorView {
	return DoctorView{
		ID:          d.ID(),
		Name:        d.Name(),
		Speciality:  d.Speciality(),
		Degree:      d.Degree(),
		Experience:  d.Experience(),
		About:       d.About(),
		Fees:        d.Fees(),
		Available:   d.Available(),
		SlotsBooked: d.SlotsBooked(),
	}
}

// DoctorProfileView is the doctor's own profile, including contact details.
type DoctorProfileView struct {
	DoctorView
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toDoctorProfileView(d *doctor.Doctor) DoctorProfileView {
	return DoctorProfileView{DoctorView: toDoctorView(d), Email: d.Email(), CreatedAt: d.CreatedAt()}
}

type UserProfileView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserProfileView(u *user.User) UserProfileView {
	return UserProfileView{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().Value(),
		Phone:     u.Phone(),
		CreatedAt: u.CreatedAt(),
	}
}

type DoctorDashboard struct {
	Earnings           int64             `json:"earnings"`
	Appointments       int               `json:"appointments"`
	Patients           int               `json:"patients"`
	LatestAppointments []AppointmentView `json:"latestAppointments"`
}

type AdminDashboard struct {
	Doctors            int               `json:"doctors"`
	Appointments       int               `json:"appointments"`
	Patients           int               `json:"patients"`
	LatestAppointments []AppointmentView `json:"latestAppointments"`
}

// CacheTTLs bounds how long each read-through entry may be served stale.
type CacheTTLs struct {
	UserAppointments time.Duration
	DoctorsList      time.Duration
	Dashboard        time.Duration
	Profile          time.Duration
	AppointmentList  time.Duration
}
