package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/progress"
)

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sql.DB) *attendanceRepository {
	return &attendanceRepository{db: sqlx.NewDb(db, "postgres")}
}

type attendanceRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	CourseID  string    `db:"course_id"`
	ClassDate time.Time `db:"class_date"`
	Status    string    `db:"status"`
}

type tallyRow struct {
	StudentID string `db:"student_id"`
	CourseID  string `db:"course_id"`
	Attended  int    `db:"attended"`
	Total     int    `db:"total"`
}

const tallyQuery = `
SELECT student_id, course_id,
       COUNT(*) FILTER (WHERE status IN ('present', 'late')) AS attended,
       COUNT(*) AS total
FROM attendance
WHERE course_id IN (?)
GROUP BY student_id, course_id`

// QueryRates returns the attendance rate of every student with records in the given courses.
func (repo *attendanceRepository) QueryRates(ctx context.Context, courseIDs ...string) (progress.AttendanceRates, error) {
	rates := make(progress.AttendanceRates)
	if len(courseIDs) == 0 {
		return rates, nil
	}

	q, args, err := sqlx.In(tallyQuery, courseIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building attendance query")
	}
	var rows []tallyRow
	if err = repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance rates")
	}
	for _, r := range rows {
		rates[progress.AttendanceKey{StudentID: r.StudentID, CourseID: r.CourseID}] = progress.Percent(r.Attended, r.Total)
	}
	return rates, nil
}

// QueryRecords returns the attendance records of a course, oldest class first.
func (repo *attendanceRepository) QueryRecords(ctx context.Context, courseID string) ([]classroom.AttendanceRecord, error) {
	var rows []attendanceRow
	q := `SELECT id, student_id, course_id, class_date, status FROM attendance WHERE course_id = $1 ORDER BY class_date, student_id`
	if err := repo.db.SelectContext(ctx, &rows, q, courseID); err != nil {
		return nil, errors.Wrap(err, "querying attendance records")
	}

	records := make([]classroom.AttendanceRecord, len(rows))
	for i, r := range rows {
		records[i] = classroom.AttendanceRecord{
			ID:        r.ID,
			StudentID: r.StudentID,
			CourseID:  r.CourseID,
			Date:      r.ClassDate,
			Status:    classroom.AttendanceStatus(r.Status),
		}
	}
	return records, nil
}

// SaveRecords upserts attendance records in a single transaction.
func (repo *attendanceRepository) SaveRecords(ctx context.Context, records ...classroom.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	q := `
INSERT INTO attendance (id, student_id, course_id, class_date, status)
VALUES (:id, :student_id, :course_id, :class_date, :status)
ON CONFLICT (id) DO UPDATE
SET student_id = EXCLUDED.student_id, course_id = EXCLUDED.course_id,
    class_date = EXCLUDED.class_date, status = EXCLUDED.status`
	for _, rec := range records {
		row := attendanceRow{
			ID:        rec.ID,
			StudentID: rec.StudentID,
			CourseID:  rec.CourseID,
			ClassDate: rec.Date,
			Status:    string(rec.Status),
		}
		if _, err = tx.NamedExecContext(ctx, q, row); err != nil {
			return errors.Wrapf(err, "saving attendance %s", rec.ID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing attendance")
}
