// Package classroomsvc reads courses, rosters, coursework and submissions from the Google Classroom REST API
// and maps them onto the dashboard's own records.
package classroomsvc

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/user"
)

const defaultMaxPoints = 100

type Client struct {
	fetcher  Fetcher
	dates    classroom.DateNormalizer
	pageSize int
}

func NewClient(fetcher Fetcher, dates classroom.DateNormalizer, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{fetcher: fetcher, dates: dates, pageSize: pageSize}
}

// NewClientFromConfig builds an authenticated client; it fails with core.ErrNoCredentials when no token is configured.
func NewClientFromConfig(ctx context.Context, conf *core.Config, logger core.Logger) (*Client, error) {
	f, err := NewFetcher(ctx, conf.Classroom)
	if err != nil {
		return nil, err
	}
	dates := classroom.DateNormalizer{
		Strict:   conf.Classroom.StrictDates,
		Location: conf.Classroom.Location(),
		Logger:   logger,
	}
	return NewClient(f, dates, conf.Classroom.PageSize), nil
}

// list follows nextPageToken until the upstream stops returning one.
func (c *Client) list(ctx context.Context, path string, query url.Values, page func() pager) error {
	if query == nil {
		query = make(url.Values)
	}
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	seen := make(map[string]bool)
	for {
		p := page()
		if err := c.fetcher.Fetch(ctx, path, query, p); err != nil {
			return err
		}
		p.emit()
		next := p.nextPage()
		if next == "" || seen[next] {
			return nil
		}
		seen[next] = true
		query.Set("pageToken", next)
	}
}

// ListCourses returns the active courses visible to the authenticated user.
func (c *Client) ListCourses(ctx context.Context) ([]classroom.Course, error) {
	var courses []classroom.Course
	var convErr error
	q := url.Values{"courseStates": {"ACTIVE"}}
	err := c.list(ctx, "/courses", q, func() pager {
		return &coursesPage{onItems: func(items []apiCourse) {
			for _, ac := range items {
				crs, err := c.course(ac)
				if err != nil && convErr == nil {
					convErr = err
				}
				courses = append(courses, crs)
			}
		}}
	})
	if err != nil {
		return nil, err
	}
	if convErr != nil {
		return nil, convErr
	}
	return courses, nil
}

// ListStudents returns the roster of a course.
func (c *Client) ListStudents(ctx context.Context, courseID string) ([]user.User, error) {
	var students []user.User
	err := c.list(ctx, "/courses/"+url.PathEscape(courseID)+"/students", nil, func() pager {
		return &studentsPage{onItems: func(items []apiStudent) {
			for _, as := range items {
				students = append(students, student(as))
			}
		}}
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

// ListCourseWork returns the assignments of a course.
func (c *Client) ListCourseWork(ctx context.Context, courseID string) ([]classroom.Assignment, error) {
	var assignments []classroom.Assignment
	var convErr error
	err := c.list(ctx, "/courses/"+url.PathEscape(courseID)+"/courseWork", nil, func() pager {
		return &courseWorkPage{onItems: func(items []apiCourseWork) {
			for _, aw := range items {
				a, err := c.assignment(aw, courseID)
				if err != nil && convErr == nil {
					convErr = err
				}
				assignments = append(assignments, a)
			}
		}}
	})
	if err != nil {
		return nil, err
	}
	if convErr != nil {
		return nil, convErr
	}
	return assignments, nil
}

// ListSubmissions returns every student submission of every assignment in a course.
func (c *Client) ListSubmissions(ctx context.Context, courseID string) ([]classroom.Submission, error) {
	var submissions []classroom.Submission
	var convErr error
	path := "/courses/" + url.PathEscape(courseID) + "/courseWork/-/studentSubmissions"
	err := c.list(ctx, path, nil, func() pager {
		return &submissionsPage{onItems: func(items []apiSubmission) {
			for _, as := range items {
				sub, err := c.submission(as)
				if err != nil && convErr == nil {
					convErr = err
				}
				submissions = append(submissions, sub)
			}
		}}
	})
	if err != nil {
		return nil, err
	}
	if convErr != nil {
		return nil, convErr
	}
	return submissions, nil
}

func (c *Client) course(ac apiCourse) (classroom.Course, error) {
	created, err := c.dates.Time(ac.CreationTime)
	if err != nil {
		return classroom.Course{}, errors.Wrapf(err, "course %s creationTime", ac.ID)
	}
	updated, err := c.dates.Time(ac.UpdateTime)
	if err != nil {
		return classroom.Course{}, errors.Wrapf(err, "course %s updateTime", ac.ID)
	}
	return classroom.Course{
		ID:          ac.ID,
		Name:        ac.Name,
		Description: ac.Description,
		TeacherID:   ac.OwnerID,
		Students:    []string{},
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func student(as apiStudent) user.User {
	id := as.Profile.ID
	if id == "" {
		id = as.UserID
	}
	name := as.Profile.Name.FullName
	if name == "" {
		name = "Unknown"
	}
	return user.User{
		ID:     id,
		Email:  as.Profile.EmailAddress,
		Name:   name,
		Role:   user.RoleStudent,
		Avatar: as.Profile.PhotoURL,
	}
}

func (c *Client) assignment(aw apiCourseWork, courseID string) (classroom.Assignment, error) {
	due, err := c.dates.DueDate(aw.DueDate, aw.DueTime)
	if err != nil {
		return classroom.Assignment{}, errors.Wrapf(err, "courseWork %s dueDate", aw.ID)
	}
	created, err := c.dates.Time(aw.CreationTime)
	if err != nil {
		return classroom.Assignment{}, errors.Wrapf(err, "courseWork %s creationTime", aw.ID)
	}
	maxPoints := aw.MaxPoints
	if maxPoints <= 0 {
		maxPoints = defaultMaxPoints
	}
	return classroom.Assignment{
		ID:          aw.ID,
		CourseID:    courseID,
		Title:       aw.Title,
		Description: aw.Description,
		DueDate:     due,
		MaxPoints:   maxPoints,
		CreatedAt:   created,
	}, nil
}

func (c *Client) submission(as apiSubmission) (classroom.Submission, error) {
	sub := classroom.Submission{
		ID:           as.ID,
		AssignmentID: as.CourseWorkID,
		StudentID:    as.UserID,
		Status:       SubmissionStatus(as.State, as.Late, as.AssignedGrade != nil),
	}
	if sub.Status != classroom.StatusAssigned && sub.Status != classroom.StatusNotSubmitted {
		at, err := c.dates.Normalize(as.UpdateTime)
		if err != nil {
			return classroom.Submission{}, errors.Wrapf(err, "submission %s updateTime", as.ID)
		}
		sub.SubmittedAt = at
	}
	if sub.Status == classroom.StatusGraded {
		sub.Grade = null.Float64From(*as.AssignedGrade)
		if as.DraftGrade != nil {
			sub.Feedback = "Graded"
		}
	}
	return sub, nil
}

// SubmissionStatus maps an upstream submission state onto the canonical vocabulary.
func SubmissionStatus(state string, late, graded bool) classroom.Status {
	switch state {
	case "TURNED_IN":
		if late {
			return classroom.StatusLate
		}
		return classroom.StatusSubmitted
	case "RETURNED":
		if graded {
			return classroom.StatusGraded
		}
		return classroom.StatusSubmitted
	case "RECLAIMED_BY_STUDENT":
		if late {
			return classroom.StatusNotSubmitted
		}
		return classroom.StatusDraft
	default: // NEW, CREATED, SUBMISSION_STATE_UNSPECIFIED
		if late {
			return classroom.StatusNotSubmitted
		}
		return classroom.StatusAssigned
	}
}
