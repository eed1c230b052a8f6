package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/cell"
	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/dashboard"
	"github.com/semillerodigital/educompass/core/notification"
	"github.com/semillerodigital/educompass/core/progress"
	"github.com/semillerodigital/educompass/core/user"
)

type dashboardApi struct {
	svc      *dashboard.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service, validate *validator.Validate, translator ut.Translator) {
	api := dashboardApi{svc: svc, validate: validate, translator: translator}

	// un-authed endpoints
	g.GET("/mode", api.mode)
	g.GET("/statuses", api.statuses)

	// authed endpoints
	ag := g.Group("", jwt)
	ag.GET("/progress", api.progress)
	ag.GET("/progress/summary", api.progressSummary)
	ag.GET("/cells", api.cells, roleMiddleware(user.RoleCoordinator))
	ag.GET("/cells/:teacherId", api.teacherCell, roleMiddleware(user.RoleTeacher, user.RoleCoordinator))
	ag.GET("/notifications", api.notifications)
}

type (
	progressQuery struct {
		CourseID  string `json:"course_id" query:"course_id" validate:"omitempty,slug"`
		StudentID string `json:"student_id" query:"student_id" validate:"omitempty,slug"`
		CellID    string `json:"cell_id" query:"cell_id" validate:"omitempty,slug"`
		Ordering  string `json:"ordering" query:"ordering" validate:"omitempty,ordering"`
	}

	progressItem struct {
		progress.StudentProgress
		CompletionRate float64 `json:"completionRate"`
		Level          string  `json:"level"`
		Graded         bool    `json:"graded"`
	}

	teacherCellResponse struct {
		cell.TeacherCell
		Metrics          cell.Metrics   `json:"metrics"`
		NeedingAttention []cell.Student `json:"needingAttention"`
	}
)

// Handlers

func (api *dashboardApi) mode(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"using_mocks": api.svc.IsUsingMocks()})
}

func (api *dashboardApi) statuses(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"submission": classroom.StatusDisplays(),
		"attendance": classroom.AttendanceDisplays(),
		"default":    classroom.Status("").Display(),
	})
}

// bindQuery binds & validates the query params of a GET request into data.
func (api *dashboardApi) bindQuery(ctx echo.Context, data interface{}) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding query")
	}
	return core.TranslateValidationErrors(api.validate.Struct(data), api.translator)
}

// visibleProgress returns the progress records the context user may see.
// Students only ever see their own records.
func (api *dashboardApi) visibleProgress(ctx echo.Context, q progressQuery) ([]progress.StudentProgress, error) {
	usr, err := getContextUser(ctx)
	if err != nil {
		return nil, err
	}
	if usr.IsStudent() {
		if q.StudentID != "" && q.StudentID != usr.ID {
			return nil, errHttpForbidden
		}
		q.StudentID = usr.ID
	}

	snap, err := api.svc.Load(ctx.Request().Context())
	if err != nil {
		return nil, errors.Wrap(err, "loading dashboard data")
	}

	list := snap.Progress()
	if q.StudentID != "" {
		list = progress.ForStudent(list, q.StudentID)
	}
	if q.CourseID != "" {
		list = progress.ForCourse(list, q.CourseID)
	}
	if q.CellID != "" {
		list = progress.ForCell(list, q.CellID)
	}
	return list, nil
}

func (api *dashboardApi) progress(ctx echo.Context) error {
	var q progressQuery
	if err := api.bindQuery(ctx, &q); err != nil {
		return err
	}
	list, err := api.visibleProgress(ctx, q)
	if err != nil {
		return err
	}

	var ord Ordering
	ord.Bind(ctx, progress.OrderingFields...)
	progress.Sort(list, ord.Orderings)

	items := make([]progressItem, len(list))
	for i, p := range list {
		items[i] = progressItem{
			StudentProgress: p,
			CompletionRate:  p.CompletionRate(),
			Level:           p.Level(),
			Graded:          p.IsGraded(),
		}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *dashboardApi) progressSummary(ctx echo.Context) error {
	var q progressQuery
	if err := api.bindQuery(ctx, &q); err != nil {
		return err
	}
	list, err := api.visibleProgress(ctx, q)
	if err != nil {
		return err
	}

	summaries := progress.Summarize(list)
	return ctx.JSON(http.StatusOK, echo.Map{
		"students": summaries,
		"overview": progress.Overall(summaries),
	})
}

func (api *dashboardApi) cells(ctx echo.Context) error {
	snap, err := api.svc.Load(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard data")
	}

	metrics := snap.CellMetrics()
	return ctx.JSON(http.StatusOK, echo.Map{
		"cells":   metrics,
		"summary": cell.Summarize(metrics),
	})
}

func (api *dashboardApi) teacherCell(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	teacherID := ctx.Param("teacherId")
	if usr.IsTeacher() && usr.ID != teacherID {
		return errHttpForbidden
	}

	snap, err := api.svc.Load(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard data")
	}
	tc, ok := snap.TeacherCell(teacherID)
	if !ok {
		return errHttpNotFound
	}

	return ctx.JSON(http.StatusOK, teacherCellResponse{
		TeacherCell:      tc,
		Metrics:          cell.MetricsFor(tc),
		NeedingAttention: tc.StudentsNeedingAttention(),
	})
}

func (api *dashboardApi) notifications(ctx echo.Context) error {
	var q notification.Query
	if err := api.bindQuery(ctx, &q); err != nil {
		return err
	}

	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	if !usr.IsCoordinator() {
		if q.UserID != "" && q.UserID != usr.ID {
			return errHttpForbidden
		}
		q.UserID = usr.ID
	}

	snap, err := api.svc.Load(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard data")
	}

	list := notification.Filter(snap.Notifications(), q)
	return ctx.JSON(http.StatusOK, echo.Map{
		"notifications": list,
		"unread":        notification.UnreadCount(list),
	})
}
