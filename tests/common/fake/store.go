//go:build unit || integration

package fake

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/user"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrStoreDown = errors.New("record store unavailable")

// Store is an in-memory record store implementing the unit of work and the
// read-side repositories. Transactions are serialized and staged changes are
// applied only on commit. It enforces one live appointment per slot.
type Store struct {
	mu           sync.Mutex
	txMu         sync.Mutex
	users        map[uuid.UUID]*user.User
	doctors      map[uuid.UUID]*doctor.Doctor
	appointments map[uuid.UUID]*appointment.Appointment
	order        []uuid.UUID

	FailCommit bool
	FailReads  bool

	Commits atomic.Int32
}

func NewStore() *Store {
	return &Store{
		users:        map[uuid.UUID]*user.User{},
		doctors:      map[uuid.UUID]*doctor.Doctor{},
		appointments: map[uuid.UUID]*appointment.Appointment{},
	}
}

func cloneDoctor(d *doctor.Doctor) *doctor.Doctor {
	return doctor.ReconstructDoctor(d.ID(), doctor.Profile{
		Name:       d.Name(),
		Email:      d.Email(),
		Speciality: d.Speciality(),
		Degree:     d.Degree(),
		Experience: d.Experience(),
		About:      d.About(),
		Fees:       d.Fees(),
	}, d.Available(), d.SlotsBooked(), d.CreatedAt())
}

func cloneAppointment(a *appointment.Appointment) *appointment.Appointment {
	return appointment.Reconstruct(a.ID(), a.UserID(), a.Slot(), a.UserData(), a.DoctorData(), a.Amount(), a.BookedAt(), a.Flags())
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func (s *Store) AddUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = u
}

func (s *Store) AddDoctor(d *doctor.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors[d.ID()] = cloneDoctor(d)
}

func (s *Store) AddAppointment(a *appointment.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[a.ID()] = cloneAppointment(a)
	s.order = append(s.order, a.ID())
}

// Doctor returns a copy of the committed doctor, or nil.
func (s *Store) Doctor(id uuid.UUID) *doctor.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return nil
	}
	return cloneDoctor(d)
}

// Appointment returns a copy of the committed appointment, or nil.
func (s *Store) Appointment(id uuid.UUID) *appointment.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil
	}
	return cloneAppointment(a)
}

func (s *Store) Appointments() []*appointment.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*appointment.Appointment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneAppointment(s.appointments[id]))
	}
	return out
}

// --- shared.UnitOfWork ---

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &storeTx{
		store:        s,
		doctors:      map[uuid.UUID]*doctor.Doctor{},
		appointments: map[uuid.UUID]*appointment.Appointment{},
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if s.FailCommit {
		return infra.WrapRepoErr("commit failed", ErrStoreDown)
	}
	return tx.commit()
}

func (s *Store) CommandReads() shared.CommandReads {
	return storeReads{s}
}

type storeReads struct{ s *Store }

func (r storeReads) DoctorByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	if r.s.FailReads {
		return nil, infra.WrapRepoErr("read failed", ErrStoreDown)
	}
	if d := r.s.Doctor(id); d != nil {
		return d, nil
	}
	return nil, notFound("doctor not found")
}

func (r storeReads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if r.s.FailReads {
		return nil, infra.WrapRepoErr("read failed", ErrStoreDown)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return nil, notFound("user not found")
}

func (r storeReads) AppointmentByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if r.s.FailReads {
		return nil, infra.WrapRepoErr("read failed", ErrStoreDown)
	}
	if a := r.s.Appointment(id); a != nil {
		return a, nil
	}
	return nil, notFound("appointment not found")
}

type storeTx struct {
	store        *Store
	doctors      map[uuid.UUID]*doctor.Doctor
	appointments map[uuid.UUID]*appointment.Appointment
	created      []uuid.UUID
}

func (t *storeTx) Appointments() shared.AppointmentRepository { return txAppointments{t} }
func (t *storeTx) Doctors() shared.DoctorRepository           { return txDoctors{t} }
func (t *storeTx) Reads() shared.CommandReads                 { return storeReads{t.store} }

func (t *storeTx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range t.doctors {
		s.doctors[id] = d
	}
	for id, a := range t.appointments {
		s.appointments[id] = a
	}
	s.order = append(s.order, t.created...)
	s.Commits.Add(1)
	return nil
}

type txDoctors struct{ t *storeTx }

func (r txDoctors) LockByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	if d, ok := r.t.doctors[id]; ok {
		return cloneDoctor(d), nil
	}
	d := r.t.store.Doctor(id)
	if d == nil {
		return nil, notFound("doctor not found")
	}
	return d, nil
}

func (r txDoctors) UpdateSlots(ctx context.Context, id uuid.UUID, slots doctor.BookedSlots) error {
	d, err := r.LockByID(ctx, id)
	if err != nil {
		return err
	}
	r.t.doctors[id] = doctor.ReconstructDoctor(id, doctor.Profile{
		Name:       d.Name(),
		Email:      d.Email(),
		Speciality: d.Speciality(),
		Degree:     d.Degree(),
		Experience: d.Experience(),
		About:      d.About(),
		Fees:       d.Fees(),
	}, d.Available(), slots.Clone(), d.CreatedAt())
	return nil
}

func (r txDoctors) UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	d, err := r.LockByID(ctx, id)
	if err != nil {
		return err
	}
	if d.Available() != available {
		d.ToggleAvailability()
	}
	r.t.doctors[id] = d
	return nil
}

func (r txDoctors) UpdateProfile(ctx context.Context, d *doctor.Doctor) error {
	if _, err := r.LockByID(ctx, d.ID()); err != nil {
		return err
	}
	r.t.doctors[d.ID()] = cloneDoctor(d)
	return nil
}

type txAppointments struct{ t *storeTx }

func (r txAppointments) Create(_ context.Context, a *appointment.Appointment) error {
	if r.slotTaken(a.Slot()) {
		return infra.WrapRepoErr("slot already booked", nil, infra.KindDuplicateKey)
	}
	r.t.appointments[a.ID()] = cloneAppointment(a)
	r.t.created = append(r.t.created, a.ID())
	return nil
}

func (r txAppointments) slotTaken(slot appointment.Slot) bool {
	live := func(a *appointment.Appointment) bool {
		return !a.Cancelled() && a.Slot() == slot
	}
	for _, a := range r.t.appointments {
		if live(a) {
			return true
		}
	}
	s := r.t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.appointments {
		if _, staged := r.t.appointments[id]; staged {
			continue
		}
		if live(a) {
			return true
		}
	}
	return false
}

func (r txAppointments) LockByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if a, ok := r.t.appointments[id]; ok {
		return cloneAppointment(a), nil
	}
	a := r.t.store.Appointment(id)
	if a == nil {
		return nil, notFound("appointment not found")
	}
	return a, nil
}

func (r txAppointments) UpdateFlags(ctx context.Context, a *appointment.Appointment) error {
	if _, err := r.LockByID(ctx, a.ID()); err != nil {
		return err
	}
	r.t.appointments[a.ID()] = cloneAppointment(a)
	return nil
}

// --- read-side repositories ---

// AppointmentReads, DoctorReads and UserReads expose the committed state with
// the method sets of the Postgres repositories.
func (s *Store) AppointmentReads() AppointmentReads { return AppointmentReads{s} }
func (s *Store) DoctorReads() DoctorReads           { return DoctorReads{s} }
func (s *Store) UserReads() UserReads               { return UserReads{s} }

func (s *Store) readErr() error {
	if s.FailReads {
		return infra.WrapRepoErr("read failed", ErrStoreDown)
	}
	return nil
}

type AppointmentReads struct{ s *Store }

func (r AppointmentReads) filter(keep func(*appointment.Appointment) bool) []*appointment.Appointment {
	var out []*appointment.Appointment
	for _, a := range r.s.Appointments() {
		if keep(a) {
			out = append(out, a)
		}
	}
	// newest first
	slices.SortStableFunc(out, func(x, y *appointment.Appointment) int {
		return y.BookedAt().Compare(x.BookedAt())
	})
	return out
}

func (r AppointmentReads) ListByUser(_ context.Context, userID uuid.UUID) ([]*appointment.Appointment, error) {
	if err := r.s.readErr(); err != nil {
		return nil, err
	}
	return r.filter(func(a *appointment.Appointment) bool { return a.UserID() == userID }), nil
}

func (r AppointmentReads) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error) {
	if err := r.s.readErr(); err != nil {
		return nil, err
	}
	return r.filter(func(a *appointment.Appointment) bool { return a.DoctorID() == doctorID }), nil
}

func (r AppointmentReads) ListAll(_ context.Context) ([]*appointment.Appointment, error) {
	if err := r.s.readErr(); err != nil {
		return nil, err
	}
	return r.filter(func(*appointment.Appointment) bool { return true }), nil
}

func (r AppointmentReads) Latest(_ context.Context, limit int) ([]*appointment.Appointment, error) {
	if err := r.s.readErr(); err != nil {
		return nil, err
	}
	all := r.filter(func(*appointment.Appointment) bool { return true })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r AppointmentReads) Count(_ context.Context) (int, error) {
	if err := r.s.readErr(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.appointments), nil
}

type DoctorReads struct{ s *Store }

func (r DoctorReads) List(_ context.Context) ([]*doctor.Doctor, error) {
	if err := r.s.readErr(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*doctor.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		out = append(out, cloneDoctor(d))
	}
	slices.SortFunc(out, func(x, y *doctor.Doctor) int {
		return strings.Compare(x.Name(), y.Name())
	})
	return out, nil
}

func (r DoctorReads) FindByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	return storeReads(r).DoctorByID(ctx, id)
}

func (r DoctorReads) Count(_ context.Context) (int, error) {
	if err := r.s.readErr(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.doctors), nil
}

type UserReads struct{ s *Store }

func (r UserReads) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return storeReads(r).UserByID(ctx, id)
}

func (r UserReads) Count(_ context.Context) (int, error) {
	if err := r.s.readErr(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users), nil
}
