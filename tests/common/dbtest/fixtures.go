//go:build unit || e2e

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

// CreateTestMember inserts a member keyed by phone, returning the existing id
// when the phone is already registered.
func CreateTestMember(t *testing.T, db DBLike, name, phone string) uuid.UUID {
	t.Helper()

	memberID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, name, phone, role) VALUES ($1, $2, $3, 'member')
		ON CONFLICT (phone) WHERE phone IS NOT NULL DO NOTHING`, memberID, name, phone)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE phone = $1", phone).Scan(&memberID)
		require.NoError(t, err)
	}

	return memberID
}

func CreateTestChild(t *testing.T, db DBLike, memberID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	childID := uuid.New()
	_, err := db.Exec(context.Background(), `INSERT INTO children (id, member_id, name, position)
		VALUES ($1, $2, $3, (SELECT count(*) FROM children WHERE member_id = $2))`, childID, memberID, name)
	require.NoError(t, err)

	return childID
}

func CreateTestSession(t *testing.T, db DBLike, title string, startsAt time.Time, capacity int) uuid.UUID {
	t.Helper()

	sessionID := uuid.New()
	_, err := db.Exec(context.Background(), `INSERT INTO sessions (id, title, audience, starts_at, ends_at, location, capacity)
		VALUES ($1, $2, 'junior', $3, $4, 'Court 1', $5)`, sessionID, title, startsAt, startsAt.Add(90*time.Minute), capacity)
	require.NoError(t, err)

	return sessionID
}

func CountConfirmed(t *testing.T, db DBLike, sessionID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE session_id = $1 AND status = 'confirmed'", sessionID).Scan(&n)
	require.NoError(t, err)
	return n
}

// SeedReferenceData inserts the settings row every read path expects.
func SeedReferenceData(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(), `
		INSERT INTO academy_settings (id, name) VALUES (1, 'Test Academy')
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
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
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
