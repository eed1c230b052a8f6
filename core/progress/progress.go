// Package progress computes per (student, course) completion, grade and attendance metrics.
package progress

import (
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/user"
)

// Levels
const (
	LevelExcellent      = "excellent"
	LevelGood           = "good"
	LevelNeedsAttention = "needs_attention"
)

// StudentProgress is derived on every call; it is never stored.
type StudentProgress struct {
	StudentID            string       `json:"studentId"`
	CourseID             string       `json:"courseId"`
	AssignmentsCompleted int          `json:"assignmentsCompleted"`
	TotalAssignments     int          `json:"totalAssignments"`
	AverageGrade         float64      `json:"averageGrade"` // 0 when nothing is graded, see GradedCount
	GradedCount          int          `json:"gradedCount"`
	AttendanceRate       null.Float64 `json:"attendanceRate"` // null when unknown
	OnTimeRate           float64      `json:"onTimeRate"`
	LastActivity         time.Time    `json:"lastActivity"`
	CellID               string       `json:"cellId,omitempty"`
}

// CompletionRate is the percentage of course assignments delivered, 0 for courses without assignments.
func (p StudentProgress) CompletionRate() float64 {
	return Percent(p.AssignmentsCompleted, p.TotalAssignments)
}

func (p StudentProgress) Level() string {
	return LevelFor(p.CompletionRate())
}

// IsGraded tells a real 0 average apart from "nothing graded yet".
func (p StudentProgress) IsGraded() bool { return p.GradedCount > 0 }

// LevelFor classifies a completion rate.
func LevelFor(rate float64) string {
	switch {
	case rate >= 80:
		return LevelExcellent
	case rate >= 60:
		return LevelGood
	default:
		return LevelNeedsAttention
	}
}

// Percent returns part/total*100, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Mean returns the arithmetic mean of vals, or 0 for none. The result does not depend on the order of vals.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

type options struct {
	now        time.Time
	attendance Attendance
	students   map[string]user.User
}

type Option func(*options)

// WithNow sets the instant used as LastActivity for students without any dated submission.
func WithNow(now time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithAttendance plugs in the attendance source. Without one every AttendanceRate is null.
func WithAttendance(att Attendance) Option {
	return func(o *options) { o.attendance = att }
}

// WithStudents provides the student directory used to resolve cell membership.
func WithStudents(students []user.User) Option {
	return func(o *options) { o.students = user.Index(students) }
}

// Calculate produces one StudentProgress per (enrolled student, course) pair of the roster.
// Submissions only count towards the course their assignment belongs to; duplicated records
// of one (student, assignment) are reduced with classroom.IndexSubmissions.
func Calculate(
	courses []classroom.Course,
	assignments []classroom.Assignment,
	submissions []classroom.Submission,
	opts ...Option,
) []StudentProgress {
	o := options{now: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}

	byStudent := make(map[string][]classroom.Submission)
	for _, sub := range classroom.DedupeSubmissions(submissions) {
		byStudent[sub.StudentID] = append(byStudent[sub.StudentID], sub)
	}

	type key struct{ course, student string }
	seen := make(map[key]bool)

	res := make([]StudentProgress, 0)
	for _, course := range courses {
		courseAssignments := classroom.CourseAssignments(assignments, course.ID)
		assignmentIDs := make(map[string]bool, len(courseAssignments))
		for _, a := range courseAssignments {
			assignmentIDs[a.ID] = true
		}

		for _, studentID := range course.Students {
			k := key{course.ID, studentID}
			if seen[k] {
				continue
			}
			seen[k] = true

			var studentSubs []classroom.Submission
			for _, sub := range byStudent[studentID] {
				if assignmentIDs[sub.AssignmentID] {
					studentSubs = append(studentSubs, sub)
				}
			}
			res = append(res, o.progressFor(studentID, course.ID, len(courseAssignments), studentSubs))
		}
	}
	return res
}

func (o options) progressFor(studentID, courseID string, total int, subs []classroom.Submission) StudentProgress {
	p := StudentProgress{
		StudentID:        studentID,
		CourseID:         courseID,
		TotalAssignments: total,
	}

	var grades []float64
	var onTime int
	for _, sub := range subs {
		if sub.Status.IsCompleted() {
			p.AssignmentsCompleted++
		}
		if !sub.Status.IsLate() {
			onTime++
		}
		if sub.Grade.Valid {
			grades = append(grades, sub.Grade.Float64)
		}
		if sub.SubmittedAt.Valid && sub.SubmittedAt.Time.After(p.LastActivity) {
			p.LastActivity = sub.SubmittedAt.Time
		}
		if sub.CellID != "" && (p.CellID == "" || sub.CellID < p.CellID) {
			p.CellID = sub.CellID
		}
	}
	p.GradedCount = len(grades)
	p.AverageGrade = Mean(grades)
	p.OnTimeRate = Percent(onTime, len(subs))

	if p.LastActivity.IsZero() {
		p.LastActivity = o.now
	}
	if usr, ok := o.students[studentID]; ok && usr.CellID != "" {
		p.CellID = usr.CellID
	}
	if o.attendance != nil {
		if rate, ok := o.attendance.Rate(studentID, courseID); ok {
			p.AttendanceRate = null.Float64From(rate)
		}
	}
	return p
}

// ForStudent keeps the records of one student.
func ForStudent(list []StudentProgress, studentID string) []StudentProgress {
	return filter(list, func(p StudentProgress) bool { return p.StudentID == studentID })
}

func ForCourse(list []StudentProgress, courseID string) []StudentProgress {
	return filter(list, func(p StudentProgress) bool { return p.CourseID == courseID })
}

func ForCell(list []StudentProgress, cellID string) []StudentProgress {
	return filter(list, func(p StudentProgress) bool { return p.CellID == cellID })
}

func filter(list []StudentProgress, keep func(StudentProgress) bool) []StudentProgress {
	res := make([]StudentProgress, 0, len(list))
	for _, p := range list {
		if keep(p) {
			res = append(res, p)
		}
	}
	return res
}
