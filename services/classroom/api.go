package classroomsvc

import "github.com/semillerodigital/educompass/core/classroom"

// upstream JSON shapes, limited to the fields the dashboard reads

type pager interface {
	nextPage() string
	emit()
}

type apiCourse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	OwnerID      string      `json:"ownerId"`
	CourseState  string      `json:"courseState"`
	CreationTime interface{} `json:"creationTime"`
	UpdateTime   interface{} `json:"updateTime"`
}

type apiStudent struct {
	CourseID string `json:"courseId"`
	UserID   string `json:"userId"`
	Profile  struct {
		ID   string `json:"id"`
		Name struct {
			FullName string `json:"fullName"`
		} `json:"name"`
		EmailAddress string `json:"emailAddress"`
		PhotoURL     string `json:"photoUrl"`
	} `json:"profile"`
}

type apiCourseWork struct {
	ID           string               `json:"id"`
	CourseID     string               `json:"courseId"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	State        string               `json:"state"`
	DueDate      *classroom.DateParts `json:"dueDate"`
	DueTime      *classroom.TimeOfDay `json:"dueTime"`
	MaxPoints    float64              `json:"maxPoints"`
	CreationTime interface{}          `json:"creationTime"`
}

type apiSubmission struct {
	ID            string      `json:"id"`
	CourseID      string      `json:"courseId"`
	CourseWorkID  string      `json:"courseWorkId"`
	UserID        string      `json:"userId"`
	State         string      `json:"state"`
	Late          bool        `json:"late"`
	AssignedGrade *float64    `json:"assignedGrade"`
	DraftGrade    *float64    `json:"draftGrade"`
	CreationTime  interface{} `json:"creationTime"`
	UpdateTime    interface{} `json:"updateTime"`
}

type coursesPage struct {
	Courses       []apiCourse `json:"courses"`
	NextPageToken string      `json:"nextPageToken"`
	onItems       func([]apiCourse)
}

func (p *coursesPage) nextPage() string { return p.NextPageToken }
func (p *coursesPage) emit()            { p.onItems(p.Courses) }

type studentsPage struct {
	Students      []apiStudent `json:"students"`
	NextPageToken string       `json:"nextPageToken"`
	onItems       func([]apiStudent)
}

func (p *studentsPage) nextPage() string { return p.NextPageToken }
func (p *studentsPage) emit()            { p.onItems(p.Students) }

type courseWorkPage struct {
	CourseWork    []apiCourseWork `json:"courseWork"`
	NextPageToken string          `json:"nextPageToken"`
	onItems       func([]apiCourseWork)
}

func (p *courseWorkPage) nextPage() string { return p.NextPageToken }
func (p *courseWorkPage) emit()            { p.onItems(p.CourseWork) }

type submissionsPage struct {
	StudentSubmissions []apiSubmission `json:"studentSubmissions"`
	NextPageToken      string          `json:"nextPageToken"`
	onItems            func([]apiSubmission)
}

func (p *submissionsPage) nextPage() string { return p.NextPageToken }
func (p *submissionsPage) emit()            { p.onItems(p.StudentSubmissions) }
