package sqlxrepos

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/progress"
	"github.com/semillerodigital/educompass/storage/database"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db, "up"))
	_, err = db.Exec("TRUNCATE attendance")
	require.NoError(t, err)
	return db
}

func TestAttendanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(testDB(t))

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, repo.SaveRecords(ctx,
		classroom.AttendanceRecord{ID: "r1", StudentID: "s1", CourseID: "c1", Date: day(2), Status: classroom.AttendancePresent},
		classroom.AttendanceRecord{ID: "r2", StudentID: "s1", CourseID: "c1", Date: day(9), Status: classroom.AttendanceAbsent},
		classroom.AttendanceRecord{ID: "r3", StudentID: "s1", CourseID: "c1", Date: day(16), Status: classroom.AttendanceLate},
		classroom.AttendanceRecord{ID: "r4", StudentID: "s1", CourseID: "c1", Date: day(23), Status: classroom.AttendancePresent},
		classroom.AttendanceRecord{ID: "r5", StudentID: "s2", CourseID: "c2", Date: day(2), Status: classroom.AttendanceAbsent},
	))

	rates, err := repo.QueryRates(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, progress.AttendanceRates{{StudentID: "s1", CourseID: "c1"}: 75}, rates)

	recs, err := repo.QueryRecords(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, "r1", recs[0].ID)
	assert.Equal(t, classroom.AttendanceLate, recs[2].Status)

	require.NoError(t, repo.SaveRecords(ctx,
		classroom.AttendanceRecord{ID: "r2", StudentID: "s1", CourseID: "c1", Date: day(9), Status: classroom.AttendancePresent}))
	rates, err = repo.QueryRates(ctx, "c1", "c2")
	require.NoError(t, err)
	assert.Equal(t, 100.0, rates[progress.AttendanceKey{StudentID: "s1", CourseID: "c1"}])
	assert.Equal(t, 0.0, rates[progress.AttendanceKey{StudentID: "s2", CourseID: "c2"}])
}
