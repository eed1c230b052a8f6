package dashboard

import (
	"time"

	"github.com/semillerodigital/educompass/core/cell"
	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/notification"
	"github.com/semillerodigital/educompass/core/progress"
)

// Snapshot is the data of one dashboard load. Views derived from it are pure.
type Snapshot struct {
	classroom.Dataset
	Attendance progress.AttendanceRates
	Now        time.Time
	UsingMocks bool
}

// Progress returns one record per (enrolled student, course).
func (s *Snapshot) Progress() []progress.StudentProgress {
	opts := []progress.Option{progress.WithNow(s.Now), progress.WithStudents(s.Users)}
	if s.Attendance != nil {
		opts = append(opts, progress.WithAttendance(s.Attendance))
	}
	return progress.Calculate(s.Courses, s.Assignments, s.Submissions, opts...)
}

// Summaries returns the per-student summaries across courses.
func (s *Snapshot) Summaries() []progress.StudentSummary {
	return progress.Summarize(s.Progress())
}

// TeacherCell returns the cell of a teacher; ok is false when the teacher has none.
func (s *Snapshot) TeacherCell(teacherID string) (cell.TeacherCell, bool) {
	return cell.ForTeacher(teacherID, s.Dataset)
}

// CellMetrics returns metrics for every cell with a teacher.
func (s *Snapshot) CellMetrics() []cell.Metrics {
	return cell.AllMetrics(s.Dataset)
}

// Notifications merges the stored notifications with the ones synthesized as of Now.
func (s *Snapshot) Notifications() []classroom.Notification {
	generated := notification.Generate(s.Now, s.Assignments, s.Submissions, s.Students(),
		notification.WithRoster(s.Courses))
	return notification.Merge(s.Dataset.Notifications, generated)
}
