// Package classroom holds the read-only mirror of the upstream course-management data:
// courses, coursework, submissions, cells and the status vocabulary shared by every view.
package classroom

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core/user"
)

type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TeacherID   string    `json:"teacherId"`
	Students    []string  `json:"students"`
	Cells       []string  `json:"cells,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasStudent reports whether studentID is on the course roster.
func (c Course) HasStudent(studentID string) bool {
	for _, id := range c.Students {
		if id == studentID {
			return true
		}
	}
	return false
}

// Assignment is a piece of coursework. DueDate is invalid when the upstream has none.
type Assignment struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     null.Time `json:"dueDate"`
	MaxPoints   float64   `json:"maxPoints"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Submission struct {
	ID           string       `json:"id"`
	AssignmentID string       `json:"assignmentId"`
	StudentID    string       `json:"studentId"`
	SubmittedAt  null.Time    `json:"submittedAt"`
	Grade        null.Float64 `json:"grade"`
	Status       Status       `json:"status"`
	Feedback     string       `json:"feedback,omitempty"`
	CellID       string       `json:"cellId,omitempty"`
}

// Cell is a group of students mentored by one teacher within a course.
type Cell struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TeacherID string   `json:"teacherId"`
	CourseID  string   `json:"courseId"`
	Students  []string `json:"students"`
}

// AttendanceRecord is one class attendance entry for a student.
type AttendanceRecord struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	CourseID  string           `json:"courseId"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
}

// Notification types
const (
	NotificationAssignment   = "assignment"
	NotificationGrade        = "grade"
	NotificationAnnouncement = "announcement"
	NotificationReminder     = "reminder"
	NotificationLateDelivery = "late_delivery"
	NotificationCellAlert    = "cell_alert"
)

var NotificationTypes = []string{
	NotificationAssignment,
	NotificationGrade,
	NotificationAnnouncement,
	NotificationReminder,
	NotificationLateDelivery,
	NotificationCellAlert,
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Dataset is everything a dashboard view is computed from.
type Dataset struct {
	Courses       []Course       `json:"courses"`
	Assignments   []Assignment   `json:"assignments"`
	Submissions   []Submission   `json:"submissions"`
	Users         []user.User    `json:"users"`
	Cells         []Cell         `json:"cells,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// Students returns the users with the student role.
func (ds Dataset) Students() []user.User {
	return ds.usersWithRole(user.RoleStudent)
}

func (ds Dataset) Teachers() []user.User {
	return ds.usersWithRole(user.RoleTeacher)
}

func (ds Dataset) usersWithRole(role string) []user.User {
	res := make([]user.User, 0, len(ds.Users))
	for _, usr := range ds.Users {
		if usr.Role == role {
			res = append(res, usr)
		}
	}
	return res
}

func (ds Dataset) UserByID(id string) (user.User, bool) {
	for _, usr := range ds.Users {
		if usr.ID == id {
			return usr, true
		}
	}
	return user.User{}, false
}

func (ds Dataset) CourseByID(id string) (Course, bool) {
	for _, c := range ds.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

func (ds Dataset) AssignmentByID(id string) (Assignment, bool) {
	for _, a := range ds.Assignments {
		if a.ID == id {
			return a, true
		}
	}
	return Assignment{}, false
}

// CellByID returns the Cell record with the given id, if the dataset carries one.
func (ds Dataset) CellByID(id string) (Cell, bool) {
	for _, c := range ds.Cells {
		if c.ID == id {
			return c, true
		}
	}
	return Cell{}, false
}

// CourseAssignments returns the assignments belonging to courseID.
func CourseAssignments(assignments []Assignment, courseID string) []Assignment {
	res := make([]Assignment, 0)
	for _, a := range assignments {
		if a.CourseID == courseID {
			res = append(res, a)
		}
	}
	return res
}
