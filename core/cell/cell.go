// Package cell rolls students up into the cohort ("cell") mentored by each teacher.
package cell

import (
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/progress"
	"github.com/semillerodigital/educompass/core/user"
)

// Fixed thresholds
const (
	StudentMinCompletion = 70.0
	StudentMinGrade      = 7.0 // on a 10 points scale
	CellMinCompletion    = 75.0
	CellExcellent        = 90.0
)

// StudentAssignment is one assignment as seen from one student; missing submissions are "asignado".
type StudentAssignment struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Status  classroom.Status `json:"status"`
	Grade   null.Float64     `json:"grade"`
	DueDate null.Time        `json:"dueDate"`
}

type Student struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Assignments    []StudentAssignment `json:"assignments"`
	CompletionRate float64             `json:"completionRate"`
	AverageGrade   float64             `json:"averageGrade"`
	LastActivity   null.Time           `json:"lastActivity"`
}

// NeedsAttention flags students under 70% completion or under a 7 average.
func (s Student) NeedsAttention() bool {
	return s.CompletionRate < StudentMinCompletion || s.AverageGrade < StudentMinGrade
}

func (s Student) count(match func(classroom.Status) bool) int {
	var n int
	for _, a := range s.Assignments {
		if match(a.Status) {
			n++
		}
	}
	return n
}

// TeacherCell is a teacher's cohort with every student's per-assignment status.
type TeacherCell struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TeacherID   string    `json:"teacherId"`
	TeacherName string    `json:"teacherName"`
	CourseID    string    `json:"courseId"`
	CourseName  string    `json:"courseName"`
	Students    []Student `json:"students"`
}

// StudentsNeedingAttention returns the students under the fixed thresholds.
func (tc TeacherCell) StudentsNeedingAttention() []Student {
	res := make([]Student, 0)
	for _, s := range tc.Students {
		if s.NeedsAttention() {
			res = append(res, s)
		}
	}
	return res
}

// ForTeacher builds the cell of teacherID. It reports false when the user is not a teacher,
// has no cell, or no course has any of the cell's students enrolled.
func ForTeacher(teacherID string, ds classroom.Dataset) (TeacherCell, bool) {
	teacher, ok := ds.UserByID(teacherID)
	if !ok || !teacher.IsTeacher() || teacher.CellID == "" {
		return TeacherCell{}, false
	}

	students := make([]user.User, 0)
	for _, usr := range ds.Users {
		if usr.IsStudent() && usr.CellID == teacher.CellID {
			students = append(students, usr)
		}
	}

	course, ok := cellCourse(teacher.CellID, students, ds)
	if !ok {
		return TeacherCell{}, false
	}

	assignments := classroom.CourseAssignments(ds.Assignments, course.ID)
	subs := classroom.IndexSubmissions(ds.Submissions)

	tc := TeacherCell{
		ID:          teacher.CellID,
		Name:        cellName(teacher.CellID, course, ds),
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		CourseID:    course.ID,
		CourseName:  course.Name,
		Students:    make([]Student, 0, len(students)),
	}

	for _, usr := range students {
		st := Student{
			ID:          usr.ID,
			Name:        usr.Name,
			Email:       usr.Email,
			Assignments: make([]StudentAssignment, 0, len(assignments)),
		}
		var grades []float64
		for _, a := range assignments {
			sa := StudentAssignment{ID: a.ID, Title: a.Title, Status: classroom.StatusAssigned, DueDate: a.DueDate}
			if sub, ok := subs[classroom.SubmissionKey{AssignmentID: a.ID, StudentID: usr.ID}]; ok {
				if sub.Status != "" {
					sa.Status = sub.Status
				}
				sa.Grade = sub.Grade
				if sub.SubmittedAt.Valid && (!st.LastActivity.Valid || sub.SubmittedAt.Time.After(st.LastActivity.Time)) {
					st.LastActivity = sub.SubmittedAt
				}
			}
			if sa.Grade.Valid {
				grades = append(grades, sa.Grade.Float64)
			}
			st.Assignments = append(st.Assignments, sa)
		}
		st.CompletionRate = progress.Percent(st.count(classroom.Status.IsCompleted), len(assignments))
		st.AverageGrade = progress.Mean(grades)
		tc.Students = append(tc.Students, st)
	}
	return tc, true
}

// cellCourse is the course named by the Cell record, else the first course enrolling any cell student.
func cellCourse(cellID string, students []user.User, ds classroom.Dataset) (classroom.Course, bool) {
	if c, ok := ds.CellByID(cellID); ok && c.CourseID != "" {
		if course, ok := ds.CourseByID(c.CourseID); ok {
			return course, true
		}
	}
	for _, course := range ds.Courses {
		for _, usr := range students {
			if course.HasStudent(usr.ID) {
				return course, true
			}
		}
	}
	return classroom.Course{}, false
}

// cellName prefers the Cell record's name; otherwise "Célula <SUFFIX> - <first word of the course>".
func cellName(cellID string, course classroom.Course, ds classroom.Dataset) string {
	if c, ok := ds.CellByID(cellID); ok && c.Name != "" {
		return c.Name
	}
	suffix := cellID
	if parts := strings.SplitN(cellID, "-", 2); len(parts) == 2 {
		suffix = parts[1]
	}
	var courseWord string
	if fields := strings.Fields(course.Name); len(fields) > 0 {
		courseWord = fields[0]
	}
	return fmt.Sprintf("Célula %s - %s", strings.ToUpper(suffix), courseWord)
}
