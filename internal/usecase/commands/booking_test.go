//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/infra/cache"
	"doctor-booking/internal/infra/lock"
	"doctor-booking/internal/pkg/clock"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/commands"
	"doctor-booking/internal/usecase/events"
	"doctor-booking/internal/usecase/shared"
	"doctor-booking/tests/common/builder"
	"doctor-booking/tests/common/fake"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
	now     = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	cfg     = commands.BookingConfig{LockTTL: 10 * time.Second, SlotCacheTTL: time.Hour}
)

const (
	slotDate = "2024-01-02"
	slotTime = "10:00"
)

type bookingEnv struct {
	store     *fake.Store
	mr        *miniredis.Miniredis
	cache     *cache.Store
	publisher *fake.Publisher
	booking   commands.BookingCommands
	userID    uuid.UUID
	doctorID  uuid.UUID
}

func newBookingEnv(t *testing.T, mutate ...func(*builder.DoctorBuilder)) *bookingEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	store := fake.NewStore()
	u := builder.NewUserBuilder().BuildDomain()
	db := builder.NewDoctorBuilder()
	for _, m := range mutate {
		db.With(m)
	}
	store.AddUser(u)
	store.AddDoctor(db.BuildDomain())

	redisStore := cache.NewStore(client)
	publisher := &fake.Publisher{}
	return &bookingEnv{
		store:     store,
		mr:        mr,
		cache:     redisStore,
		publisher: publisher,
		booking: commands.NewBookingUseCase(
			store,
			redisStore,
			lock.NewSlotLock(redisStore, discard),
			publisher,
			clock.NewMockClock(now),
			discard,
			cfg,
		),
		userID:   u.ID(),
		doctorID: db.ID,
	}
}

func (e *bookingEnv) slot(t *testing.T, date, tm string) appointment.Slot {
	t.Helper()
	slot, err := appointment.NewSlot(e.doctorID, date, tm)
	require.NoError(t, err)
	return slot
}

func (e *bookingEnv) cachedSlots(t *testing.T) []string {
	t.Helper()
	var times []string
	ok, err := shared.GetJSON(context.Background(), e.cache, shared.SlotsKey(e.doctorID, slotDate), &times)
	require.NoError(t, err)
	require.True(t, ok, "slot cache should be populated")
	return times
}

func TestBookSlot(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	stale := append(shared.AppointmentViewKeys(env.userID, env.doctorID), shared.DoctorsListKey)
	for _, key := range stale {
		require.NoError(t, env.mr.Set(key, "stale"))
	}

	id, err := env.booking.BookSlot(ctx, env.userID, env.doctorID, slotDate, slotTime)
	require.NoError(t, err)

	appt := env.store.Appointment(id)
	require.NotNil(t, appt)
	assert.Equal(t, env.userID, appt.UserID())
	assert.Equal(t, int64(50), appt.Amount())
	assert.Equal(t, now, appt.BookedAt())
	assert.Equal(t, appointment.Flags{}, appt.Flags())
	assert.Equal(t, "Jane Patient", appt.UserData().Name)

	assert.True(t, env.store.Doctor(env.doctorID).IsBooked(slotDate, slotTime))
	assert.Equal(t, []string{slotTime}, env.cachedSlots(t))
	assert.False(t, env.mr.Exists(lock.Key(env.slot(t, slotDate, slotTime))), "lock must be released")

	published := env.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, event.TypeAppointmentBooked, published[0].Type)
	assert.Equal(t, id.String(), published[0].EntityID)
	assert.Equal(t, int64(50), published[0].Payload[event.KeyAmount])

	for _, key := range stale {
		assert.False(t, env.mr.Exists(key), key)
	}
}

func TestBookSlotConcurrentSameSlot(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()

	const callers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.booking.BookSlot(ctx, env.userID, env.doctorID, slotDate, slotTime)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, commands.ErrSlotContended), errors.Is(err, commands.ErrSlotUnavailable):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, rejected)
	assert.Len(t, env.store.Appointments(), 1)
	assert.Equal(t, []string{slotTime}, env.store.Doctor(env.doctorID).SlotsBooked().On(slotDate))
	assert.Len(t, env.publisher.Events(), 1)
	assert.False(t, env.mr.Exists(lock.Key(env.slot(t, slotDate, slotTime))))
}

func TestBookSlotConcurrentDifferentTimesSameDate(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	times := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}

	var wg sync.WaitGroup
	errCh := make(chan error, len(times))
	for _, tm := range times {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.booking.BookSlot(ctx, env.userID, env.doctorID, slotDate, tm)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	assert.ElementsMatch(t, times, env.store.Doctor(env.doctorID).SlotsBooked().On(slotDate),
		"no booking may overwrite another's slot list")
}

func TestBookSlotRejections(t *testing.T) {
	tests := []struct {
		name    string
		doctor  func(*builder.DoctorBuilder)
		userID  func(env *bookingEnv) uuid.UUID
		docID   func(env *bookingEnv) uuid.UUID
		date    string
		wantErr error
	}{
		{
			name: "slot already booked",
			doctor: func(d *builder.DoctorBuilder) {
				d.SlotsBooked = doctor.BookedSlots{slotDate: {slotTime}}
			},
			wantErr: commands.ErrSlotUnavailable,
		},
		{
			name:    "doctor unavailable",
			doctor:  func(d *builder.DoctorBuilder) { d.Available = false },
			wantErr: commands.ErrDoctorUnavailable,
		},
		{
			name:    "unknown doctor",
			docID:   func(*bookingEnv) uuid.UUID { return uuid.New() },
			wantErr: errs.ErrDoctorNotFound,
		},
		{
			name:    "unknown user",
			userID:  func(*bookingEnv) uuid.UUID { return uuid.New() },
			wantErr: errs.ErrUserNotFound,
		},
		{
			name:    "blank date",
			date:    " ",
			wantErr: commands.ErrInvalidSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mutate []func(*builder.DoctorBuilder)
			if tt.doctor != nil {
				mutate = append(mutate, tt.doctor)
			}
			env := newBookingEnv(t, mutate...)
			userID, doctorID, date := env.userID, env.doctorID, slotDate
			if tt.userID != nil {
				userID = tt.userID(env)
			}
			if tt.docID != nil {
				doctorID = tt.docID(env)
			}
			if tt.date != "" {
				date = tt.date
			}

			_, err := env.booking.BookSlot(context.Background(), userID, doctorID, date, slotTime)
			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)

			assert.Empty(t, env.publisher.Events())
			assert.Equal(t, int32(0), env.store.Commits.Load())
			assert.Empty(t, env.mr.Keys(), "no lock or cache entry may be left behind")
		})
	}
}

func TestBookSlotLockHeldElsewhere(t *testing.T) {
	env := newBookingEnv(t)
	key := lock.Key(env.slot(t, slotDate, slotTime))
	require.NoError(t, env.mr.Set(key, "other"))

	_, err := env.booking.BookSlot(context.Background(), env.userID, env.doctorID, slotDate, slotTime)
	assert.ErrorIs(t, err, commands.ErrSlotContended)
	assert.True(t, env.mr.Exists(key), "a lock held by another caller must not be released")
	assert.Empty(t, env.store.Appointments())
}

func TestBookSlotCacheUnavailableFailsClosed(t *testing.T) {
	env := newBookingEnv(t)
	env.mr.Close()

	_, err := env.booking.BookSlot(context.Background(), env.userID, env.doctorID, slotDate, slotTime)
	assert.ErrorIs(t, err, commands.ErrSlotContended)
	assert.Empty(t, env.store.Appointments())
}

func TestBookSlotStaleCacheIsAdvisory(t *testing.T) {
	t.Run("cache claims booked but record store is free", func(t *testing.T) {
		env := newBookingEnv(t)
		require.NoError(t, shared.SetJSON(context.Background(), env.cache,
			shared.SlotsKey(env.doctorID, slotDate), []string{slotTime}, time.Hour))

		_, err := env.booking.BookSlot(context.Background(), env.userID, env.doctorID, slotDate, slotTime)
		require.NoError(t, err)
		assert.Equal(t, []string{slotTime}, env.cachedSlots(t))
	})

	t.Run("cache claims free but record store is booked", func(t *testing.T) {
		env := newBookingEnv(t, func(d *builder.DoctorBuilder) {
			d.SlotsBooked = doctor.BookedSlots{slotDate: {slotTime}}
		})
		require.NoError(t, shared.SetJSON(context.Background(), env.cache,
			shared.SlotsKey(env.doctorID, slotDate), []string{}, time.Hour))

		_, err := env.booking.BookSlot(context.Background(), env.userID, env.doctorID, slotDate, slotTime)
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Empty(t, env.store.Appointments())
	})
}

func TestBookSlotPersistFailure(t *testing.T) {
	env := newBookingEnv(t)
	env.store.FailCommit = true

	_, err := env.booking.BookSlot(context.Background(), env.userID, env.doctorID, slotDate, slotTime)
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrPersistFailed))

	assert.Empty(t, env.store.Appointments())
	assert.False(t, env.store.Doctor(env.doctorID).IsBooked(slotDate, slotTime))
	assert.Empty(t, env.publisher.Events())
	assert.Empty(t, env.mr.Keys())
}

type failingTarget struct{}

func (failingTarget) Name() string { return "notification" }
func (failingTarget) Deliver(context.Context, event.Event) error {
	return errors.New("connection refused")
}

func TestBookSlotSucceedsWhenDownstreamFails(t *testing.T) {
	env := newBookingEnv(t)
	mr := env.mr
	redisStore := env.cache
	booking := commands.NewBookingUseCase(
		env.store,
		redisStore,
		lock.NewSlotLock(redisStore, discard),
		events.NewPublisher([]events.Target{failingTarget{}}, time.Second, discard),
		clock.NewMockClock(now),
		discard,
		cfg,
	)

	id, err := booking.BookSlot(context.Background(), env.userID, env.doctorID, slotDate, slotTime)
	require.NoError(t, err)
	assert.NotNil(t, env.store.Appointment(id))
	assert.False(t, mr.Exists(lock.Key(env.slot(t, slotDate, slotTime))))
}
