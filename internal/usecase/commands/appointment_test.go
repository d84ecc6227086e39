//go:build unit

package commands_test

import (
	"context"
	"testing"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/infra/cache"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/commands"
	"doctor-booking/internal/usecase/shared"
	"doctor-booking/tests/common/builder"
	"doctor-booking/tests/common/fake"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentEnv struct {
	store     *fake.Store
	mr        *miniredis.Miniredis
	publisher *fake.Publisher
	uc        commands.AppointmentCommands
	appt      *appointment.Appointment
}

func newAppointmentEnv(t *testing.T, flags appointment.Flags) *appointmentEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	ab := builder.NewAppointmentBuilder().With(func(a *builder.AppointmentBuilder) {
		a.SlotDate = slotDate
		a.SlotTime = slotTime
		a.Flags = flags
		a.Doctor.SlotsBooked = doctor.BookedSlots{slotDate: {"09:00", slotTime}}
	})
	appt := ab.BuildDomain()

	store := fake.NewStore()
	store.AddUser(ab.User.BuildDomain())
	store.AddDoctor(ab.Doctor.BuildDomain())
	store.AddAppointment(appt)

	publisher := &fake.Publisher{}
	return &appointmentEnv{
		store:     store,
		mr:        mr,
		publisher: publisher,
		uc:        commands.NewAppointmentUseCase(store, cache.NewStore(client), publisher, discard, cfg),
		appt:      appt,
	}
}

func (e *appointmentEnv) patient() appointment.Actor {
	return appointment.Actor{ID: e.appt.UserID(), Kind: appointment.ActorUser}
}

func TestCancelAppointment(t *testing.T) {
	tests := []struct {
		name  string
		actor func(env *appointmentEnv) appointment.Actor
	}{
		{name: "by patient", actor: (*appointmentEnv).patient},
		{name: "by doctor", actor: func(env *appointmentEnv) appointment.Actor {
			return appointment.Actor{ID: env.appt.DoctorID(), Kind: appointment.ActorDoctor}
		}},
		{name: "by admin", actor: func(*appointmentEnv) appointment.Actor {
			return appointment.Actor{ID: uuid.New(), Kind: appointment.ActorAdmin}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newAppointmentEnv(t, appointment.Flags{})
			stale := shared.AppointmentViewKeys(env.appt.UserID(), env.appt.DoctorID())
			for _, key := range stale {
				require.NoError(t, env.mr.Set(key, "stale"))
			}
			actor := tt.actor(env)

			err := env.uc.CancelAppointment(context.Background(), env.appt.ID(), actor)
			require.NoError(t, err)

			assert.True(t, env.store.Appointment(env.appt.ID()).Cancelled())
			assert.Equal(t, []string{"09:00"}, env.store.Doctor(env.appt.DoctorID()).SlotsBooked().On(slotDate),
				"the cancelled slot is returned to the doctor")

			cached, err := env.mr.Get(shared.SlotsKey(env.appt.DoctorID(), slotDate))
			require.NoError(t, err)
			assert.JSONEq(t, `["09:00"]`, cached)
			for _, key := range stale {
				assert.False(t, env.mr.Exists(key), key)
			}

			published := env.publisher.Events()
			require.Len(t, published, 1)
			assert.Equal(t, event.TypeAppointmentCancelled, published[0].Type)
			assert.Equal(t, actor.Kind.String(), published[0].Payload[event.KeyCancelledBy])
		})
	}
}

func TestCancelAppointmentRejections(t *testing.T) {
	tests := []struct {
		name    string
		flags   appointment.Flags
		id      func(env *appointmentEnv) uuid.UUID
		actor   func(env *appointmentEnv) appointment.Actor
		wantErr error
	}{
		{
			name: "someone else's appointment",
			actor: func(*appointmentEnv) appointment.Actor {
				return appointment.Actor{ID: uuid.New(), Kind: appointment.ActorUser}
			},
			wantErr: commands.ErrUnauthorizedAction,
		},
		{
			name: "another doctor",
			actor: func(*appointmentEnv) appointment.Actor {
				return appointment.Actor{ID: uuid.New(), Kind: appointment.ActorDoctor}
			},
			wantErr: commands.ErrUnauthorizedAction,
		},
		{
			name:    "already cancelled",
			flags:   appointment.Flags{Cancelled: true},
			wantErr: commands.ErrAlreadyCancelled,
		},
		{
			name:    "unknown appointment",
			id:      func(*appointmentEnv) uuid.UUID { return uuid.New() },
			wantErr: errs.ErrAppointmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newAppointmentEnv(t, tt.flags)
			id, actor := env.appt.ID(), env.patient()
			if tt.id != nil {
				id = tt.id(env)
			}
			if tt.actor != nil {
				actor = tt.actor(env)
			}

			err := env.uc.CancelAppointment(context.Background(), id, actor)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.publisher.Events())
			assert.Equal(t, []string{"09:00", slotTime}, env.store.Doctor(env.appt.DoctorID()).SlotsBooked().On(slotDate))
		})
	}
}

func TestCancelAppointmentPersistFailure(t *testing.T) {
	env := newAppointmentEnv(t, appointment.Flags{})
	env.store.FailCommit = true

	err := env.uc.CancelAppointment(context.Background(), env.appt.ID(), env.patient())
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrPersistFailed))
	assert.False(t, env.store.Appointment(env.appt.ID()).Cancelled())
	assert.Empty(t, env.publisher.Events())
}

func TestCompleteAppointment(t *testing.T) {
	env := newAppointmentEnv(t, appointment.Flags{})
	ctx := context.Background()
	stale := shared.AppointmentViewKeys(env.appt.UserID(), env.appt.DoctorID())
	for _, key := range stale {
		require.NoError(t, env.mr.Set(key, "stale"))
	}

	require.NoError(t, env.uc.CompleteAppointment(ctx, env.appt.ID(), env.appt.DoctorID()))
	assert.True(t, env.store.Appointment(env.appt.ID()).Completed())
	for _, key := range stale {
		assert.False(t, env.mr.Exists(key), key)
	}

	require.NoError(t, env.uc.CompleteAppointment(ctx, env.appt.ID(), env.appt.DoctorID()), "completing twice is a no-op")
	assert.True(t, env.store.Appointment(env.appt.ID()).Completed())
	assert.Empty(t, env.publisher.Events())
}

func TestCompleteAppointmentRejections(t *testing.T) {
	t.Run("another doctor", func(t *testing.T) {
		env := newAppointmentEnv(t, appointment.Flags{})
		err := env.uc.CompleteAppointment(context.Background(), env.appt.ID(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrUnauthorizedAction)
		assert.False(t, env.store.Appointment(env.appt.ID()).Completed())
	})

	t.Run("cancelled appointment", func(t *testing.T) {
		env := newAppointmentEnv(t, appointment.Flags{Cancelled: true})
		err := env.uc.CompleteAppointment(context.Background(), env.appt.ID(), env.appt.DoctorID())
		assert.ErrorIs(t, err, commands.ErrAppointmentClosed)
	})
}

func TestConfirmPayment(t *testing.T) {
	env := newAppointmentEnv(t, appointment.Flags{})
	ctx := context.Background()

	changed, err := env.uc.ConfirmPayment(ctx, env.appt.ID(), appointment.PaymentPaid)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, env.store.Appointment(env.appt.ID()).Paid())

	changed, err = env.uc.ConfirmPayment(ctx, env.appt.ID(), appointment.PaymentPaid)
	require.NoError(t, err)
	assert.False(t, changed, "a repeated callback changes nothing")

	published := env.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, event.TypePaymentSuccess, published[0].Type)
	assert.Equal(t, env.appt.Amount(), published[0].Payload[event.KeyAmount])
}

func TestConfirmPaymentIgnoresUnsuccessfulStatus(t *testing.T) {
	env := newAppointmentEnv(t, appointment.Flags{})

	changed, err := env.uc.ConfirmPayment(context.Background(), env.appt.ID(), appointment.PaymentFailed)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, env.store.Appointment(env.appt.ID()).Paid())
	assert.Equal(t, int32(0), env.store.Commits.Load())
	assert.Empty(t, env.publisher.Events())
}

func TestConfirmPaymentRejections(t *testing.T) {
	t.Run("cancelled appointment", func(t *testing.T) {
		env := newAppointmentEnv(t, appointment.Flags{Cancelled: true})
		_, err := env.uc.ConfirmPayment(context.Background(), env.appt.ID(), appointment.PaymentPaid)
		assert.ErrorIs(t, err, commands.ErrAppointmentClosed)
		assert.Empty(t, env.publisher.Events())
	})

	t.Run("unknown appointment", func(t *testing.T) {
		env := newAppointmentEnv(t, appointment.Flags{})
		_, err := env.uc.ConfirmPayment(context.Background(), uuid.New(), appointment.PaymentPaid)
		assert.ErrorIs(t, err, errs.ErrAppointmentNotFound)
	})
}
