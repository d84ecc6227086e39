package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"doctor-booking/internal/domain/appointment"

	"github.com/google/uuid"
)

// Cache is the fast shared key-value store. It is never authoritative.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

func GetJSON(ctx context.Context, c Cache, key string, dst any) (bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.Set(ctx, key, string(raw), ttl)
}

const (
	DoctorsListKey       = "doctors:list"
	AdminDashboardKey    = "admin:dashboard"
	AdminAppointmentsKey = "admin:appointments"
)

func SlotsKey(doctorID uuid.UUID, date string) string {
	return fmt.Sprintf("slots:%s:%s", doctorID, date)
}

func UserAppointmentsKey(userID uuid.UUID) string {
	return "user:appointments:" + userID.String()
}

func DoctorDashboardKey(doctorID uuid.UUID) string {
	return "doctor:dashboard:" + doctorID.String()
}

func DoctorAppointmentsKey(doctorID uuid.UUID) string {
	return "doctor:appointments:" + doctorID.String()
}

func DoctorProfileKey(doctorID uuid.UUID) string {
	return "doctor:profile:" + doctorID.String()
}

func UserProfileKey(userID uuid.UUID) string {
	return "user:profile:" + userID.String()
}

// AppointmentViewKeys lists the cached reads that show appointments between
// userID and doctorID. Any write to such an appointment drops them all.
func AppointmentViewKeys(userID, doctorID uuid.UUID) []string {
	return []string{
		UserAppointmentsKey(userID),
		DoctorDashboardKey(doctorID),
		DoctorAppointmentsKey(doctorID),
		AdminDashboardKey,
		AdminAppointmentsKey,
	}
}

// SlotLocker admits at most one booking per slot at a time.
type SlotLocker interface {
	// Acquire reports whether the caller now holds the slot. Backend errors count as not acquired.
	Acquire(ctx context.Context, slot appointment.Slot, ttl time.Duration) bool
	Release(ctx context.Context, slot appointment.Slot)
}
