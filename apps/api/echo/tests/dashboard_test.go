package tests

import (
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/progress"
	"github.com/semillerodigital/educompass/tests"
)

type progressItem struct {
	progress.StudentProgress
	CompletionRate float64 `json:"completionRate"`
	Level          string  `json:"level"`
	Graded         bool    `json:"graded"`
}

func getJSON(t *testing.T, path, token string, out interface{}) int {
	t.Helper()
	req, rec := testutil.NewAuthRequest(http.MethodGet, path, token)
	app.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK && out != nil {
		testutil.DecodeJSON(t, rec, out)
	}
	return rec.Code
}

func Test_dashboardApi_home(t *testing.T) {
	runHTTPTests(t, app, []httpTest{
		{name: "home", path: "/", wantCode: http.StatusOK, wantData: []byte(`{"message":"Welcome to EduCompass API!"}`)},
		{name: "mode", path: "/v1/mode", wantCode: http.StatusOK, wantData: []byte(`{"using_mocks":true}`)},
	})
}

func Test_dashboardApi_statuses(t *testing.T) {
	var data struct {
		Submission map[string]classroom.Display `json:"submission"`
		Attendance map[string]classroom.Display `json:"attendance"`
		Default    classroom.Display            `json:"default"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, "/v1/statuses", "", &data))

	assert.Len(t, data.Submission, 10)
	assert.Equal(t, classroom.Display{Label: "Evaluado", Severity: classroom.SeverityGood}, data.Submission["evaluado"])
	assert.Equal(t, classroom.Display{Label: "Sin Entregar", Severity: classroom.SeverityBad}, data.Submission["sin_entregar"])
	assert.Equal(t, classroom.Display{Label: "Pendiente", Severity: classroom.SeverityNeutral}, data.Submission["pending"])
	assert.Equal(t, classroom.Display{Label: "Tardanza", Severity: classroom.SeverityWarn}, data.Attendance["late"])
	assert.Equal(t, classroom.Display{Label: "Desconocido", Severity: classroom.SeverityNeutral}, data.Default)
}

func Test_dashboardApi_progress(t *testing.T) {
	student := getToken(t, fixtureUser(t, "student-1"))
	teacher := getToken(t, fixtureUser(t, "teacher-3"))
	coord := getToken(t, fixtureUser(t, "coord-1"))

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", path: "/v1/progress", wantCode: http.StatusUnauthorized, wantData: testutil.MarshalObj(t, errMissingToken)},
		{name: "Students cannot see others", path: "/v1/progress?student_id=student-2", token: student, wantCode: http.StatusForbidden, wantData: testutil.MarshalObj(t, errForbidden)},
		{name: "Invalid filter", path: "/v1/progress?course_id=bad%20id", token: coord, wantCode: http.StatusBadRequest,
			wantData: []byte(`{"course_id":"only letters, digits, dashes and underscores are allowed"}`)},
		{name: "Invalid ordering", path: "/v1/progress?ordering=,,", token: coord, wantCode: http.StatusBadRequest},
	})

	t.Run("student sees own records only", func(t *testing.T) {
		var items []progressItem
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/progress", student, &items))
		require.Len(t, items, 1)

		p := items[0]
		assert.Equal(t, "student-1", p.StudentID)
		assert.Equal(t, "course-1", p.CourseID)
		assert.Equal(t, "cell-1", p.CellID)
		assert.Equal(t, 2, p.AssignmentsCompleted)
		assert.Equal(t, 3, p.TotalAssignments)
		assert.Equal(t, 8.0, p.AverageGrade)
		assert.True(t, p.Graded)
		assert.InDelta(t, 66.67, p.CompletionRate, 0.01)
		assert.Equal(t, progress.LevelGood, p.Level)
		require.True(t, p.AttendanceRate.Valid)
		assert.Equal(t, 100.0, p.AttendanceRate.Float64)
	})

	t.Run("everyone", func(t *testing.T) {
		var items []progressItem
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/progress", coord, &items))
		assert.Len(t, items, 31)
	})

	t.Run("filters", func(t *testing.T) {
		var items []progressItem
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/progress?course_id=course-2", teacher, &items))
		assert.Len(t, items, 15)

		require.Equal(t, http.StatusOK, getJSON(t, "/v1/progress?cell_id=cell-3", teacher, &items))
		assert.Len(t, items, 7)
		for _, p := range items {
			assert.Equal(t, "cell-3", p.CellID)
		}
	})

	t.Run("ordering", func(t *testing.T) {
		var items []progressItem
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/progress?ordering=-completionRate,studentId", coord, &items))
		rates := make([]float64, len(items))
		for i, p := range items {
			rates[i] = p.CompletionRate
		}
		assert.True(t, sort.SliceIsSorted(rates, func(i, j int) bool { return rates[i] > rates[j] }))
	})
}

func Test_dashboardApi_progressSummary(t *testing.T) {
	var data struct {
		Students []progress.StudentSummary `json:"students"`
		Overview progress.Overview         `json:"overview"`
	}
	coord := getToken(t, fixtureUser(t, "coord-1"))
	require.Equal(t, http.StatusOK, getJSON(t, "/v1/progress/summary", coord, &data))
	assert.Len(t, data.Students, 31)
	assert.Equal(t, 31, data.Overview.Students)
	assert.Equal(t, 31, data.Overview.Excellent+data.Overview.Good+data.Overview.NeedsAttention)
	assert.True(t, data.Overview.AverageAttendance.Valid)

	student := getToken(t, fixtureUser(t, "student-1"))
	require.Equal(t, http.StatusOK, getJSON(t, "/v1/progress/summary", student, &data))
	require.Len(t, data.Students, 1)
	assert.Equal(t, "student-1", data.Students[0].StudentID)
}

func Test_dashboardApi_cells(t *testing.T) {
	teacher := getToken(t, fixtureUser(t, "teacher-1"))
	coord := getToken(t, fixtureUser(t, "coord-1"))

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", path: "/v1/cells", wantCode: http.StatusUnauthorized, wantData: testutil.MarshalObj(t, errMissingToken)},
		{name: "Coordinator required", path: "/v1/cells", token: teacher, wantCode: http.StatusForbidden, wantData: testutil.MarshalObj(t, errForbidden)},
		{name: "Other teacher's cell", path: "/v1/cells/teacher-2", token: teacher, wantCode: http.StatusForbidden, wantData: testutil.MarshalObj(t, errForbidden)},
		{name: "Students cannot see cells", path: "/v1/cells/teacher-1", token: getToken(t, fixtureUser(t, "student-1")), wantCode: http.StatusForbidden},
		{name: "No cell", path: "/v1/cells/coord-1", token: coord, wantCode: http.StatusNotFound, wantData: testutil.MarshalObj(t, errNotFound)},
	})

	t.Run("all cells", func(t *testing.T) {
		var data struct {
			Cells []struct {
				CellID         string  `json:"cellId"`
				TotalStudents  int     `json:"totalStudents"`
				CompletionRate float64 `json:"completionRate"`
			} `json:"cells"`
			Summary struct {
				Cells    int `json:"cells"`
				Students int `json:"students"`
			} `json:"summary"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/cells", coord, &data))
		require.Len(t, data.Cells, 4)
		assert.Equal(t, "cell-1", data.Cells[0].CellID)
		assert.Equal(t, 8, data.Cells[0].TotalStudents)
		assert.Equal(t, 4, data.Summary.Cells)
		assert.Equal(t, 31, data.Summary.Students)
	})

	t.Run("own cell", func(t *testing.T) {
		var data struct {
			ID               string                 `json:"id"`
			Name             string                 `json:"name"`
			TeacherID        string                 `json:"teacherId"`
			CourseID         string                 `json:"courseId"`
			Students         []cellStudent          `json:"students"`
			NeedingAttention []cellStudent          `json:"needingAttention"`
			Metrics          map[string]interface{} `json:"metrics"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/cells/teacher-1", teacher, &data))
		assert.Equal(t, "cell-1", data.ID)
		assert.Equal(t, "Célula A - E-commerce", data.Name)
		assert.Equal(t, "course-1", data.CourseID)
		assert.Len(t, data.Students, 8)
		assert.Equal(t, "cell-1", data.Metrics["cellId"])

		require.Equal(t, http.StatusOK, getJSON(t, "/v1/cells/teacher-1", coord, &data))
		assert.Equal(t, "teacher-1", data.TeacherID)
	})
}

type cellStudent struct {
	ID             string  `json:"id"`
	CompletionRate float64 `json:"completionRate"`
}

func Test_dashboardApi_notifications(t *testing.T) {
	student := getToken(t, fixtureUser(t, "student-1"))
	coord := getToken(t, fixtureUser(t, "coord-1"))

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", path: "/v1/notifications", wantCode: http.StatusUnauthorized},
		{name: "Other user's notifications", path: "/v1/notifications?user_id=student-2", token: student, wantCode: http.StatusForbidden},
		{name: "Unknown type", path: "/v1/notifications?type=spam", token: student, wantCode: http.StatusBadRequest},
	})

	type notifications struct {
		Notifications []classroom.Notification `json:"notifications"`
		Unread        int                      `json:"unread"`
	}

	t.Run("own", func(t *testing.T) {
		var data notifications
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/notifications", student, &data))
		require.Len(t, data.Notifications, 2)
		assert.Equal(t, "notif-5", data.Notifications[0].ID)

		grade := data.Notifications[1]
		assert.Equal(t, "grade-sub-student-1-assign-1", grade.ID)
		assert.Equal(t, "student-1", grade.UserID)
		assert.Equal(t, classroom.NotificationGrade, grade.Type)
		assert.Equal(t, `Tu tarea "Landing Page Design" ha sido calificada: 8/10`, grade.Message)
		assert.True(t, grade.CreatedAt.Equal(testutil.Now))
		assert.Equal(t, 1, data.Unread)
	})

	t.Run("unread & type filters", func(t *testing.T) {
		var data notifications
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/notifications?unread=true", student, &data))
		require.Len(t, data.Notifications, 1)
		assert.Equal(t, "grade-sub-student-1-assign-1", data.Notifications[0].ID)

		require.Equal(t, http.StatusOK, getJSON(t, "/v1/notifications?type=assignment", student, &data))
		require.Len(t, data.Notifications, 1)
		assert.Equal(t, "notif-5", data.Notifications[0].ID)
	})

	t.Run("coordinator", func(t *testing.T) {
		var data notifications
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/notifications?user_id=teacher-3", coord, &data))
		require.Len(t, data.Notifications, 1)
		assert.Equal(t, "notif-4", data.Notifications[0].ID)

		var all notifications
		require.Equal(t, http.StatusOK, getJSON(t, "/v1/notifications", coord, &all))
		assert.Greater(t, len(all.Notifications), 6)
	})
}
