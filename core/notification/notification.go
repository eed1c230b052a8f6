// Package notification derives reminder and grade notifications from coursework and submissions.
package notification

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/user"
)

// ReminderWindow is how far ahead due dates trigger reminders.
const ReminderWindow = 7 * 24 * time.Hour

type options struct {
	roster map[string]map[string]bool // courseID -> studentIDs
}

type Option func(*options)

// WithRoster restricts reminders to students enrolled in the assignment's course.
func WithRoster(courses []classroom.Course) Option {
	return func(o *options) {
		o.roster = make(map[string]map[string]bool, len(courses))
		for _, c := range courses {
			enrolled, ok := o.roster[c.ID]
			if !ok {
				enrolled = make(map[string]bool, len(c.Students))
				o.roster[c.ID] = enrolled
			}
			for _, id := range c.Students {
				enrolled[id] = true
			}
		}
	}
}

func (o options) enrolled(courseID, studentID string) bool {
	if o.roster == nil {
		return true
	}
	return o.roster[courseID][studentID]
}

// Generate synthesizes notifications as of now:
//   - one reminder per (assignment due within the next 7 days, student without any submission for it)
//   - one grade announcement per graded submission carrying a grade
//
// Ids are derived from source ids, so identical inputs always produce identical notifications.
func Generate(
	now time.Time,
	assignments []classroom.Assignment,
	submissions []classroom.Submission,
	students []user.User,
	opts ...Option,
) []classroom.Notification {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	type key struct{ assignment, student string }
	submitted := make(map[key]bool, len(submissions))
	for _, sub := range submissions {
		submitted[key{sub.AssignmentID, sub.StudentID}] = true
	}

	res := make([]classroom.Notification, 0)
	seen := make(map[string]bool)
	add := func(n classroom.Notification) {
		if !seen[n.ID] {
			seen[n.ID] = true
			res = append(res, n)
		}
	}

	horizon := now.Add(ReminderWindow)
	for _, a := range assignments {
		if !a.DueDate.Valid || !a.DueDate.Time.After(now) || a.DueDate.Time.After(horizon) {
			continue
		}
		for _, student := range students {
			if submitted[key{a.ID, student.ID}] || !o.enrolled(a.CourseID, student.ID) {
				continue
			}
			add(classroom.Notification{
				ID:        fmt.Sprintf("reminder-%s-%s", a.ID, student.ID),
				UserID:    student.ID,
				Title:     "Recordatorio de entrega",
				Message:   fmt.Sprintf("La tarea \"%s\" vence pronto", a.Title),
				Type:      classroom.NotificationReminder,
				CreatedAt: now,
			})
		}
	}

	assignmentsByID := make(map[string]classroom.Assignment, len(assignments))
	for _, a := range assignments {
		if _, ok := assignmentsByID[a.ID]; !ok {
			assignmentsByID[a.ID] = a
		}
	}
	for _, sub := range submissions {
		if sub.Status.Canonical() != classroom.StatusGraded || !sub.Grade.Valid {
			continue
		}
		a, ok := assignmentsByID[sub.AssignmentID]
		if !ok {
			continue
		}
		add(classroom.Notification{
			ID:     "grade-" + sub.ID,
			UserID: sub.StudentID,
			Title:  "Nueva calificación",
			Message: fmt.Sprintf("Tu tarea \"%s\" ha sido calificada: %s/%s",
				a.Title, formatPoints(sub.Grade.Float64), formatPoints(a.MaxPoints)),
			Type:      classroom.NotificationGrade,
			CreatedAt: now,
		})
	}
	return res
}

func formatPoints(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Query narrows a list of notifications. Empty fields match everything.
type Query struct {
	UserID     string `json:"user_id" query:"user_id" validate:"omitempty,slug"`
	Type       string `json:"type" query:"type" validate:"omitempty,oneof=assignment grade announcement reminder late_delivery cell_alert"`
	UnreadOnly bool   `json:"unread" query:"unread"`
}

func Filter(list []classroom.Notification, q Query) []classroom.Notification {
	res := make([]classroom.Notification, 0, len(list))
	for _, n := range list {
		if q.UserID != "" && n.UserID != q.UserID {
			continue
		}
		if q.Type != "" && n.Type != q.Type {
			continue
		}
		if q.UnreadOnly && n.Read {
			continue
		}
		res = append(res, n)
	}
	return res
}

// Merge combines notification lists, keeping the first occurrence of each id, newest first.
func Merge(lists ...[]classroom.Notification) []classroom.Notification {
	seen := make(map[string]bool)
	res := make([]classroom.Notification, 0)
	for _, list := range lists {
		for _, n := range list {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			res = append(res, n)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res
}

// UnreadCount counts the notifications not read yet.
func UnreadCount(list []classroom.Notification) int {
	var n int
	for _, notif := range list {
		if !notif.Read {
			n++
		}
	}
	return n
}
