package progress

import (
	"github.com/semillerodigital/educompass/core/classroom"
)

// Attendance answers the attendance rate (0-100) of a student in a course, if it is known.
type Attendance interface {
	Rate(studentID, courseID string) (float64, bool)
}

type AttendanceKey struct {
	StudentID string
	CourseID  string
}

// AttendanceRates is an in-memory Attendance.
type AttendanceRates map[AttendanceKey]float64

var _ Attendance = AttendanceRates(nil)

func (r AttendanceRates) Rate(studentID, courseID string) (float64, bool) {
	rate, ok := r[AttendanceKey{StudentID: studentID, CourseID: courseID}]
	return rate, ok
}

// RatesFromRecords derives attendance rates from class records. Present and late both count as attended.
func RatesFromRecords(records []classroom.AttendanceRecord) AttendanceRates {
	type tally struct{ attended, total int }
	counts := make(map[AttendanceKey]*tally)
	for _, rec := range records {
		k := AttendanceKey{StudentID: rec.StudentID, CourseID: rec.CourseID}
		t, ok := counts[k]
		if !ok {
			t = new(tally)
			counts[k] = t
		}
		t.total++
		if rec.Status.Attended() {
			t.attended++
		}
	}

	rates := make(AttendanceRates, len(counts))
	for k, t := range counts {
		rates[k] = Percent(t.attended, t.total)
	}
	return rates
}
