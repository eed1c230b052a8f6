package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/user"
)

var now = time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)

func dueIn(d time.Duration) null.Time { return null.TimeFrom(now.Add(d)) }

var students = []user.User{
	{ID: "s1", Name: "Ana Martínez", Email: "ana@example.com", Role: user.RoleStudent},
	{ID: "s2", Name: "Carlos López", Email: "carlos@example.com", Role: user.RoleStudent},
}

func ids(list []classroom.Notification) []string {
	res := make([]string, 0, len(list))
	for _, n := range list {
		res = append(res, n.ID)
	}
	return res
}

func TestGenerate_reminderWindow(t *testing.T) {
	assignments := []classroom.Assignment{
		{ID: "a1", CourseID: "c", Title: "Landing Page Design", DueDate: dueIn(3 * 24 * time.Hour)},
		{ID: "a2", CourseID: "c", Title: "SEO Optimization", DueDate: dueIn(10 * 24 * time.Hour)},
	}

	got := Generate(now, assignments, nil, students)
	assert.ElementsMatch(t, []string{"reminder-a1-s1", "reminder-a1-s2"}, ids(got))
	for _, n := range got {
		assert.Equal(t, classroom.NotificationReminder, n.Type)
		assert.Equal(t, "Recordatorio de entrega", n.Title)
		assert.Equal(t, `La tarea "Landing Page Design" vence pronto`, n.Message)
		assert.False(t, n.Read)
		assert.Equal(t, now, n.CreatedAt)
	}
}

func TestGenerate_windowBounds(t *testing.T) {
	tests := []struct {
		name string
		due  null.Time
		want bool
	}{
		{name: "no due date", due: null.Time{}, want: false},
		{name: "past", due: dueIn(-time.Hour), want: false},
		{name: "exactly now", due: dueIn(0), want: false},
		{name: "in a minute", due: dueIn(time.Minute), want: true},
		{name: "exactly 7 days", due: dueIn(ReminderWindow), want: true},
		{name: "just after 7 days", due: dueIn(ReminderWindow + time.Second), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(now, []classroom.Assignment{{ID: "a", Title: "x", DueDate: tt.due}}, nil, students[:1])
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestGenerate_reminderExclusivity(t *testing.T) {
	assignments := []classroom.Assignment{{ID: "a1", Title: "Landing", DueDate: dueIn(time.Hour)}}
	for _, status := range append(append([]classroom.Status{}, classroom.CanonicalStatuses...), "weird") {
		t.Run(string(status), func(t *testing.T) {
			subs := []classroom.Submission{{ID: "x", AssignmentID: "a1", StudentID: "s1", Status: status}}
			got := Generate(now, assignments, subs, students)
			assert.Equal(t, []string{"reminder-a1-s2"}, ids(got))
		})
	}
}

func TestGenerate_grades(t *testing.T) {
	assignments := []classroom.Assignment{
		{ID: "a1", Title: "Landing Page Design", MaxPoints: 10, DueDate: dueIn(-48 * time.Hour)},
		{ID: "a2", Title: "Data Visualization Dashboard", MaxPoints: 100},
	}
	subs := []classroom.Submission{
		{ID: "sub-1", AssignmentID: "a1", StudentID: "s1", Status: classroom.StatusGraded, Grade: null.Float64From(8.5)},
		{ID: "sub-2", AssignmentID: "a2", StudentID: "s1", Status: classroom.LegacyGraded, Grade: null.Float64From(90)},
		{ID: "sub-3", AssignmentID: "a1", StudentID: "s2", Status: classroom.StatusGraded},                               // no grade
		{ID: "sub-4", AssignmentID: "a2", StudentID: "s2", Status: classroom.StatusSubmitted, Grade: null.Float64From(7)}, // not graded
		{ID: "sub-5", AssignmentID: "gone", StudentID: "s2", Status: classroom.StatusGraded, Grade: null.Float64From(7)},
	}

	got := Generate(now, assignments, subs, students)
	require.Len(t, got, 2)
	assert.Equal(t, classroom.Notification{
		ID:        "grade-sub-1",
		UserID:    "s1",
		Title:     "Nueva calificación",
		Message:   `Tu tarea "Landing Page Design" ha sido calificada: 8.5/10`,
		Type:      classroom.NotificationGrade,
		CreatedAt: now,
	}, got[0])
	assert.Equal(t, `Tu tarea "Data Visualization Dashboard" ha sido calificada: 90/100`, got[1].Message)
}

func TestGenerate_idempotent(t *testing.T) {
	assignments := []classroom.Assignment{
		{ID: "a1", Title: "Landing", MaxPoints: 10, DueDate: dueIn(24 * time.Hour)},
		{ID: "a2", Title: "SEO", MaxPoints: 10, DueDate: dueIn(-24 * time.Hour)},
	}
	subs := []classroom.Submission{
		{ID: "sub-1", AssignmentID: "a2", StudentID: "s1", Status: classroom.StatusGraded, Grade: null.Float64From(9)},
	}

	first := Generate(now, assignments, subs, students)
	second := Generate(now, assignments, subs, students)
	assert.ElementsMatch(t, first, second)
	assert.Len(t, first, 3)
}

func TestGenerate_duplicateStudents(t *testing.T) {
	assignments := []classroom.Assignment{{ID: "a1", Title: "Landing", DueDate: dueIn(time.Hour)}}
	got := Generate(now, assignments, nil, append(students, students[0]))
	assert.ElementsMatch(t, []string{"reminder-a1-s1", "reminder-a1-s2"}, ids(got))
}

func TestGenerate_withRoster(t *testing.T) {
	assignments := []classroom.Assignment{
		{ID: "a1", CourseID: "c1", Title: "Landing", DueDate: dueIn(time.Hour)},
		{ID: "b1", CourseID: "c2", Title: "SQL", DueDate: dueIn(time.Hour)},
	}
	roster := []classroom.Course{
		{ID: "c1", Students: []string{"s1"}},
		{ID: "c2", Students: []string{"s1", "s2"}},
	}

	got := Generate(now, assignments, nil, students, WithRoster(roster))
	assert.ElementsMatch(t, []string{"reminder-a1-s1", "reminder-b1-s1", "reminder-b1-s2"}, ids(got))
}

func TestFilterMergeUnread(t *testing.T) {
	older := now.Add(-time.Hour)
	fixture := []classroom.Notification{
		{ID: "notif-1", UserID: "s1", Type: classroom.NotificationAnnouncement, Read: true, CreatedAt: older},
		{ID: "notif-2", UserID: "s2", Type: classroom.NotificationGrade, CreatedAt: older},
		{ID: "grade-sub-1", UserID: "s1", Type: classroom.NotificationGrade, CreatedAt: older},
	}
	derived := []classroom.Notification{
		{ID: "grade-sub-1", UserID: "s1", Type: classroom.NotificationGrade, CreatedAt: now},
		{ID: "reminder-a1-s1", UserID: "s1", Type: classroom.NotificationReminder, CreatedAt: now},
	}

	merged := Merge(derived, fixture)
	assert.Equal(t, []string{"grade-sub-1", "reminder-a1-s1", "notif-1", "notif-2"}, ids(merged))
	assert.Equal(t, now, merged[0].CreatedAt, "first occurrence wins")

	assert.Equal(t, []string{"grade-sub-1", "reminder-a1-s1", "notif-1"}, ids(Filter(merged, Query{UserID: "s1"})))
	assert.Equal(t, []string{"grade-sub-1", "reminder-a1-s1"}, ids(Filter(merged, Query{UserID: "s1", UnreadOnly: true})))
	assert.Equal(t, []string{"grade-sub-1", "notif-2"}, ids(Filter(merged, Query{Type: classroom.NotificationGrade})))
	assert.Equal(t, 3, UnreadCount(merged))
}
