//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	doctorID := uuid.New()

	slot, err := appointment.NewSlot(doctorID, " 2024-01-01 ", "10:00 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", slot.Date())
	assert.Equal(t, "10:00", slot.Time())

	for name, tc := range map[string]struct {
		doctorID   uuid.UUID
		date, time string
	}{
		"nil doctor": {uuid.Nil, "2024-01-01", "10:00"},
		"empty date": {doctorID, "  ", "10:00"},
		"empty time": {doctorID, "2024-01-01", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := appointment.NewSlot(tc.doctorID, tc.date, tc.time)
			assert.ErrorIs(t, err, appointment.ErrInvalidSlot)
		})
	}
}

func TestNewAppointment(t *testing.T) {
	b := builder.NewAppointmentBuilder()
	u := b.User.BuildDomain()
	d := b.Doctor.BuildDomain()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	appt, err := appointment.NewAppointment(u, d, b.Slot(), now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, appt.ID())
	assert.Equal(t, u.ID(), appt.UserID())
	assert.Equal(t, d.ID(), appt.DoctorID())
	assert.Equal(t, d.Fees(), appt.Amount())
	assert.Equal(t, "jane@example.com", appt.UserData().Email)
	assert.Equal(t, "Dr. Richard James", appt.DoctorData().Name)
	assert.Equal(t, now, appt.BookedAt())
	assert.Equal(t, appointment.Flags{}, appt.Flags())

	other := builder.NewDoctorBuilder().BuildDomain()
	_, err = appointment.NewAppointment(u, other, b.Slot(), now)
	assert.ErrorIs(t, err, appointment.ErrInvalidSlot)
}

func TestAppointmentCancel(t *testing.T) {
	b := builder.NewAppointmentBuilder()

	cases := []struct {
		name  string
		actor appointment.Actor
		errIs error
	}{
		{name: "owner", actor: appointment.Actor{ID: b.User.ID, Kind: appointment.ActorUser}},
		{name: "doctor", actor: appointment.Actor{ID: b.Doctor.ID, Kind: appointment.ActorDoctor}},
		{name: "admin", actor: appointment.Actor{ID: uuid.New(), Kind: appointment.ActorAdmin}},
		{name: "other user", actor: appointment.Actor{ID: uuid.New(), Kind: appointment.ActorUser}, errIs: appointment.ErrUnauthorized},
		{name: "other doctor", actor: appointment.Actor{ID: uuid.New(), Kind: appointment.ActorDoctor}, errIs: appointment.ErrUnauthorized},
		{name: "doctor id used as user", actor: appointment.Actor{ID: b.Doctor.ID, Kind: appointment.ActorUser}, errIs: appointment.ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appt := b.BuildDomain()
			err := appt.Cancel(tc.actor)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.False(t, appt.Cancelled())
				return
			}
			require.NoError(t, err)
			assert.True(t, appt.Cancelled())
		})
	}

	t.Run("already cancelled", func(t *testing.T) {
		appt := b.BuildDomain()
		admin := appointment.Actor{ID: uuid.New(), Kind: appointment.ActorAdmin}
		require.NoError(t, appt.Cancel(admin))
		assert.ErrorIs(t, appt.Cancel(admin), appointment.ErrAlreadyCancelled)
	})
}

func TestAppointmentMarkPaid(t *testing.T) {
	appt := builder.NewAppointmentBuilder().BuildDomain()

	changed, err := appt.MarkPaid()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, appt.Paid())
	assert.True(t, appt.Earning())

	changed, err = appt.MarkPaid()
	require.NoError(t, err)
	assert.False(t, changed, "second payment is a no-op")

	cancelled := builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) {
		b.Flags.Cancelled = true
	}).BuildDomain()
	_, err = cancelled.MarkPaid()
	assert.ErrorIs(t, err, appointment.ErrNotPayable)
}

func TestAppointmentComplete(t *testing.T) {
	b := builder.NewAppointmentBuilder()
	appt := b.BuildDomain()

	_, err := appt.Complete(uuid.New())
	assert.ErrorIs(t, err, appointment.ErrUnauthorized)

	changed, err := appt.Complete(b.Doctor.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, appt.Completed())

	changed, err = appt.Complete(b.Doctor.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	cancelled := b.With(func(b *builder.AppointmentBuilder) { b.Flags = appointment.Flags{Cancelled: true} }).BuildDomain()
	_, err = cancelled.Complete(b.Doctor.ID)
	assert.ErrorIs(t, err, appointment.ErrNotCompletable)
}
