// Package dashboard switches between the demo fixtures and the live upstream API,
// loads one consistent snapshot per request and derives every dashboard view from it.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/progress"
	"github.com/semillerodigital/educompass/core/user"
	"github.com/semillerodigital/educompass/storage/fixtures"
)

// Source is the live course-management data source.
type Source interface {
	ListCourses(ctx context.Context) ([]classroom.Course, error)
	ListStudents(ctx context.Context, courseID string) ([]user.User, error)
	ListCourseWork(ctx context.Context, courseID string) ([]classroom.Assignment, error)
	ListSubmissions(ctx context.Context, courseID string) ([]classroom.Submission, error)
}

// AttendanceRepository returns known attendance rates for the given courses.
type AttendanceRepository interface {
	QueryRates(ctx context.Context, courseIDs ...string) (progress.AttendanceRates, error)
}

type Service struct {
	useFixtures bool
	source      Source
	attendance  AttendanceRepository
	logger      core.Logger
	now         func() time.Time
}

// NewService returns the adapter. source may be nil in fixture mode; attendance may be nil when no attendance data exists.
func NewService(useFixtures bool, source Source, attendance AttendanceRepository, logger core.Logger) *Service {
	return &Service{
		useFixtures: useFixtures,
		source:      source,
		attendance:  attendance,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the time source used as "now" by every derived view.
func (svc *Service) SetClock(now func() time.Time) {
	svc.now = now
}

// IsUsingMocks reports whether data comes from the demo fixtures.
func (svc *Service) IsUsingMocks() bool {
	return svc.useFixtures
}

// Load returns a snapshot of the data as of now.
func (svc *Service) Load(ctx context.Context) (*Snapshot, error) {
	var (
		ds  classroom.Dataset
		err error
	)
	if svc.useFixtures {
		ds = fixtures.Dataset()
	} else if ds, err = svc.fetch(ctx); err != nil {
		return nil, err
	}

	snap := &Snapshot{Dataset: ds, Now: svc.now(), UsingMocks: svc.useFixtures}
	if svc.attendance != nil && len(ds.Courses) > 0 {
		ids := make([]string, len(ds.Courses))
		for i, c := range ds.Courses {
			ids[i] = c.ID
		}
		rates, err := svc.attendance.QueryRates(ctx, ids...)
		if err != nil {
			// attendance is optional; without it rates stay unknown
			svc.logger.Warn("loading attendance rates", err)
		} else {
			snap.Attendance = rates
		}
	}
	return snap, nil
}

type courseData struct {
	students    []user.User
	assignments []classroom.Assignment
	submissions []classroom.Submission
}

// fetch loads every course concurrently and joins the results.
// Any course failing to load fails the whole fetch.
func (svc *Service) fetch(ctx context.Context) (classroom.Dataset, error) {
	if svc.source == nil {
		return classroom.Dataset{}, core.ErrNoCredentials
	}

	courses, err := svc.source.ListCourses(ctx)
	if err != nil {
		return classroom.Dataset{}, errors.Wrap(err, "listing courses")
	}

	data := make([]courseData, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	for i := range courses {
		i, courseID := i, courses[i].ID
		g.Go(func() error {
			d, err := svc.fetchCourse(gctx, courseID)
			if err != nil {
				return errors.Wrapf(err, "loading course %s", courseID)
			}
			data[i] = d
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return classroom.Dataset{}, err
	}

	ds := classroom.Dataset{
		Courses:       make([]classroom.Course, 0, len(courses)),
		Assignments:   make([]classroom.Assignment, 0),
		Submissions:   make([]classroom.Submission, 0),
		Users:         make([]user.User, 0),
		Cells:         make([]classroom.Cell, 0),
		Notifications: make([]classroom.Notification, 0),
	}
	directory := make(map[string]bool)
	for i, course := range courses {
		d := data[i]
		course.Students = make([]string, 0, len(d.students))
		for _, s := range d.students {
			course.Students = append(course.Students, s.ID)
			if !directory[s.ID] {
				directory[s.ID] = true
				ds.Users = append(ds.Users, s)
			}
		}
		ds.Courses = append(ds.Courses, course)
		ds.Assignments = append(ds.Assignments, d.assignments...)
		ds.Submissions = append(ds.Submissions, d.submissions...)
	}
	svc.logger.Debug(fmt.Sprintf("loaded %d courses, %d students, %d submissions",
		len(ds.Courses), len(ds.Users), len(ds.Submissions)))
	return ds, nil
}

func (svc *Service) fetchCourse(ctx context.Context, courseID string) (courseData, error) {
	var d courseData
	var err error
	if d.students, err = svc.source.ListStudents(ctx, courseID); err != nil {
		return d, errors.Wrap(err, "listing students")
	}
	if d.assignments, err = svc.source.ListCourseWork(ctx, courseID); err != nil {
		return d, errors.Wrap(err, "listing coursework")
	}
	if d.submissions, err = svc.source.ListSubmissions(ctx, courseID); err != nil {
		return d, errors.Wrap(err, "listing submissions")
	}
	return d, nil
}
