//go:build integration || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, name, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, name, email, phone) VALUES ($1, $2, $3, '555-0100') ON CONFLICT (email) DO NOTHING",
		userID, name, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID))
	}

	return userID
}

func CreateTestDoctor(t *testing.T, db DBLike, name, email string, fees int64) uuid.UUID {
	t.Helper()

	doctorID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO doctors (id, name, email, speciality, degree, experience, about, fees)
		VALUES ($1, $2, $3, 'General physician', 'MBBS', '4 Years', 'Test doctor', $4)
		ON CONFLICT (email) DO NOTHING`,
		doctorID, name, email, fees)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM doctors WHERE email = $1", email).Scan(&doctorID))
	}

	return doctorID
}

func SetDoctorAvailable(t *testing.T, db DBLike, doctorID uuid.UUID, available bool) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE doctors SET available = $2 WHERE id = $1", doctorID, available)
	require.NoError(t, err)
}

func CountAppointments(t *testing.T, db DBLike, doctorID uuid.UUID) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM appointments WHERE doctor_id = $1 AND NOT cancelled", doctorID).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
