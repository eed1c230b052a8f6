package dashboard

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/progress"
	"github.com/semillerodigital/educompass/core/user"
	"github.com/semillerodigital/educompass/storage/fixtures"
)

var now = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	courses  []classroom.Course
	students map[string][]user.User
	work     map[string][]classroom.Assignment
	subs     map[string][]classroom.Submission
	failOn   string
	failErr  error
}

func (f *fakeSource) ListCourses(context.Context) ([]classroom.Course, error) {
	return f.courses, nil
}

func (f *fakeSource) ListStudents(_ context.Context, courseID string) ([]user.User, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if courseID == f.failOn {
		return nil, f.failErr
	}
	return f.students[courseID], nil
}

func (f *fakeSource) ListCourseWork(_ context.Context, courseID string) ([]classroom.Assignment, error) {
	return f.work[courseID], nil
}

func (f *fakeSource) ListSubmissions(_ context.Context, courseID string) ([]classroom.Submission, error) {
	return f.subs[courseID], nil
}

type fakeAttendance struct {
	rates progress.AttendanceRates
	err   error
	got   []string
}

func (f *fakeAttendance) QueryRates(_ context.Context, courseIDs ...string) (progress.AttendanceRates, error) {
	f.got = courseIDs
	return f.rates, f.err
}

func newSource() *fakeSource {
	ana := user.User{ID: "s1", Name: "Ana", Role: user.RoleStudent}
	beto := user.User{ID: "s2", Name: "Beto", Role: user.RoleStudent}
	return &fakeSource{
		courses: []classroom.Course{{ID: "c1", Name: "Go"}, {ID: "c2", Name: "Web"}},
		students: map[string][]user.User{
			"c1": {ana, beto},
			"c2": {{ID: "s1", Name: "Ana (dup)", Role: user.RoleStudent}},
		},
		work: map[string][]classroom.Assignment{
			"c1": {
				{ID: "a1", CourseID: "c1", Title: "Intro", MaxPoints: 10, DueDate: null.TimeFrom(now.Add(72 * time.Hour))},
				{ID: "a2", CourseID: "c1", Title: "Later", MaxPoints: 10, DueDate: null.TimeFrom(now.Add(240 * time.Hour))},
			},
			"c2": {{ID: "a3", CourseID: "c2", Title: "HTML", MaxPoints: 10}},
		},
		subs: map[string][]classroom.Submission{
			"c1": {{ID: "sub1", AssignmentID: "a1", StudentID: "s1", Status: classroom.StatusGraded, Grade: null.Float64From(9)}},
		},
	}
}

func newTestService(src Source, att AttendanceRepository, useFixtures bool) *Service {
	svc := NewService(useFixtures, src, att, core.NopLogger{})
	svc.SetClock(func() time.Time { return now })
	return svc
}

func TestService_Load_fixtures(t *testing.T) {
	svc := newTestService(nil, nil, true)
	assert.True(t, svc.IsUsingMocks())

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.UsingMocks)
	assert.Equal(t, fixtures.Dataset(), snap.Dataset)
	assert.Equal(t, now, snap.Now)
	assert.Nil(t, snap.Attendance)
}

func TestService_Load_live(t *testing.T) {
	att := &fakeAttendance{rates: progress.AttendanceRates{{StudentID: "s1", CourseID: "c1"}: 90}}
	svc := newTestService(newSource(), att, false)
	assert.False(t, svc.IsUsingMocks())

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Courses, 2)
	assert.Equal(t, []string{"s1", "s2"}, snap.Courses[0].Students)
	assert.Equal(t, []string{"s1"}, snap.Courses[1].Students)

	require.Len(t, snap.Users, 2, "students are deduplicated across rosters")
	assert.Equal(t, "Ana", snap.Users[0].Name)
	assert.Len(t, snap.Assignments, 3)
	assert.Len(t, snap.Submissions, 1)
	assert.Equal(t, []string{"c1", "c2"}, att.got)
	assert.Equal(t, progress.AttendanceRates{{StudentID: "s1", CourseID: "c1"}: 90}, snap.Attendance)
}

func TestService_Load_attendanceFailureIsSoft(t *testing.T) {
	att := &fakeAttendance{err: errors.New("db down")}
	svc := newTestService(newSource(), att, false)

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Attendance)
}

func TestService_Load_courseFailure(t *testing.T) {
	src := newSource()
	src.failOn = "c2"
	src.failErr = core.NewUpstreamError(http.StatusForbidden, "/courses/c2/students", nil)
	svc := newTestService(src, nil, false)

	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsPermissionDenied(err), "the upstream status survives the adapter")
	assert.Contains(t, err.Error(), "loading course c2")
}

func TestService_Load_noCredentials(t *testing.T) {
	svc := newTestService(nil, nil, false)
	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsAuthRequired(err))
}

func TestSnapshot_views(t *testing.T) {
	svc := newTestService(newSource(), nil, false)
	snap, err := svc.Load(context.Background())
	require.NoError(t, err)

	list := snap.Progress()
	require.Len(t, list, 3)
	p := progress.ForStudent(progress.ForCourse(list, "c1"), "s1")
	require.Len(t, p, 1)
	assert.Equal(t, 1, p[0].AssignmentsCompleted)
	assert.Equal(t, 2, p[0].TotalAssignments)
	assert.Equal(t, 9.0, p[0].AverageGrade)
	assert.False(t, p[0].AttendanceRate.Valid)

	notifs := snap.Notifications()
	ids := make([]string, 0, len(notifs))
	for _, n := range notifs {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"reminder-a1-s2", "grade-sub1"}, ids)

	_, ok := snap.TeacherCell("t1")
	assert.False(t, ok, "live data carries no cells")
	assert.Empty(t, snap.CellMetrics())
}

func TestSnapshot_fixtureViews(t *testing.T) {
	snap, err := newTestService(nil, nil, true).Load(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.Progress())
	assert.NotEmpty(t, snap.Summaries())
	assert.NotEmpty(t, snap.CellMetrics())

	tc, ok := snap.TeacherCell("teacher-1")
	require.True(t, ok)
	assert.Equal(t, "teacher-1", tc.TeacherID)

	notifs := snap.Notifications()
	for _, n := range fixtures.Notifications() {
		assert.Contains(t, notifs, n)
	}
}
