// Package fixtures is the static demo dataset served when the app runs with mocks.
// Values are deterministic so every run shows the same dashboards.
package fixtures

import (
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/user"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func at(month time.Month, d, hour, min int) time.Time {
	return time.Date(2024, month, d, hour, min, 0, 0, time.UTC)
}

var (
	coordinators = []user.User{
		{
			ID:     "coord-1",
			Email:  "coordinador@semillerodigital.org",
			Name:   "Dr. Patricia Rodríguez",
			Role:   user.RoleCoordinator,
			Avatar: "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150",
		},
	}

	teachers = []user.User{
		{ID: "teacher-1", Email: "maria.garcia@semillerodigital.org", Name: "Prof. María García", Role: user.RoleTeacher, CellID: "cell-1", Avatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150"},
		{ID: "teacher-2", Email: "juan.perez@semillerodigital.org", Name: "Prof. Juan Pérez", Role: user.RoleTeacher, CellID: "cell-2", Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150"},
		{ID: "teacher-3", Email: "ana.lopez@semillerodigital.org", Name: "Prof. Ana López", Role: user.RoleTeacher, CellID: "cell-3", Avatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150"},
		{ID: "teacher-4", Email: "carlos.ruiz@semillerodigital.org", Name: "Prof. Carlos Ruiz", Role: user.RoleTeacher, CellID: "cell-4", Avatar: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150"},
	}

	// {name, email} per cell, in roster order
	studentsByCell = []struct {
		cellID, teacherID string
		people            [][2]string
	}{
		{"cell-1", "teacher-1", [][2]string{
			{"Ana Martínez", "ana.martinez"},
			{"Carlos López", "carlos.lopez"},
			{"María González", "maria.gonzalez"},
			{"Juan Pérez", "juan.perez.est"},
			{"Sofía Rodríguez", "sofia.rodriguez"},
			{"Diego Fernández", "diego.fernandez"},
			{"Lucía Torres", "lucia.torres"},
			{"Miguel Santos", "miguel.santos"},
		}},
		{"cell-2", "teacher-2", [][2]string{
			{"Valentina Morales", "valentina.morales"},
			{"Sebastián Herrera", "sebastian.herrera"},
			{"Camila Vargas", "camila.vargas"},
			{"Andrés Castillo", "andres.castillo"},
			{"Isabella Jiménez", "isabella.jimenez"},
			{"Nicolás Mendoza", "nicolas.mendoza"},
			{"Gabriela Ortiz", "gabriela.ortiz"},
			{"Felipe Ramos", "felipe.ramos"},
		}},
		{"cell-3", "teacher-3", [][2]string{
			{"Daniela Cruz", "daniela.cruz"},
			{"Alejandro Silva", "alejandro.silva"},
			{"Natalia Reyes", "natalia.reyes"},
			{"Ricardo Moreno", "ricardo.moreno"},
			{"Paola Gutiérrez", "paola.gutierrez"},
			{"Óscar Delgado", "oscar.delgado"},
			{"Andrea Vega", "andrea.vega"},
		}},
		{"cell-4", "teacher-4", [][2]string{
			{"Mateo Aguilar", "mateo.aguilar"},
			{"Valeria Paredes", "valeria.paredes"},
			{"Emilio Navarro", "emilio.navarro"},
			{"Mariana Campos", "mariana.campos"},
			{"Joaquín Rojas", "joaquin.rojas"},
			{"Carolina Medina", "carolina.medina"},
			{"Fernando Luna", "fernando.luna"},
			{"Alejandra Soto", "alejandra.soto"},
		}},
	}

	cellCourse = map[string]string{
		"cell-1": "course-1",
		"cell-2": "course-1",
		"cell-3": "course-2",
		"cell-4": "course-2",
	}
)

// Users returns the coordinator, the 4 teachers and the 31 students.
func Users() []user.User {
	users := make([]user.User, 0, 36)
	users = append(users, coordinators...)
	users = append(users, teachers...)
	n := 1
	for _, cell := range studentsByCell {
		for _, p := range cell.people {
			users = append(users, user.User{
				ID:                fmt.Sprintf("student-%d", n),
				Email:             p[1] + "@estudiante.com",
				Name:              p[0],
				Role:              user.RoleStudent,
				CellID:            cell.cellID,
				AssignedTeacherID: cell.teacherID,
			})
			n++
		}
	}
	return users
}

func Courses() []classroom.Course {
	courses := []classroom.Course{
		{
			ID:          "course-1",
			Name:        "E-commerce y Marketing Digital",
			Description: "Curso completo de comercio electrónico y estrategias de marketing digital para emprendedores",
			TeacherID:   "coord-1",
			Cells:       []string{"cell-1", "cell-2"},
			CreatedAt:   day(time.January, 1),
			UpdatedAt:   day(time.January, 20),
		},
		{
			ID:          "course-2",
			Name:        "Data Analytics y Business Intelligence",
			Description: "Análisis de datos, visualización y toma de decisiones basada en datos",
			TeacherID:   "coord-1",
			Cells:       []string{"cell-3", "cell-4"},
			CreatedAt:   day(time.January, 1),
			UpdatedAt:   day(time.January, 20),
		},
	}
	for _, usr := range Users() {
		if !usr.IsStudent() {
			continue
		}
		for i := range courses {
			if cellCourse[usr.CellID] == courses[i].ID {
				courses[i].Students = append(courses[i].Students, usr.ID)
			}
		}
	}
	return courses
}

func Cells() []classroom.Cell {
	cells := []classroom.Cell{
		{ID: "cell-1", Name: "Célula A - E-commerce", TeacherID: "teacher-1", CourseID: "course-1"},
		{ID: "cell-2", Name: "Célula B - E-commerce", TeacherID: "teacher-2", CourseID: "course-1"},
		{ID: "cell-3", Name: "Célula C - Data Analytics", TeacherID: "teacher-3", CourseID: "course-2"},
		{ID: "cell-4", Name: "Célula D - Data Analytics", TeacherID: "teacher-4", CourseID: "course-2"},
	}
	users := Users()
	for i := range cells {
		for _, usr := range users {
			if usr.IsStudent() && usr.CellID == cells[i].ID {
				cells[i].Students = append(cells[i].Students, usr.ID)
			}
		}
	}
	return cells
}

func Assignments() []classroom.Assignment {
	return []classroom.Assignment{
		{ID: "assign-1", CourseID: "course-1", Title: "Landing Page Design", Description: "Crear una landing page efectiva para un producto digital", DueDate: null.TimeFrom(day(time.January, 15)), MaxPoints: 10, CreatedAt: day(time.January, 8)},
		{ID: "assign-2", CourseID: "course-1", Title: "SEO Optimization", Description: "Optimizar contenido web para motores de búsqueda", DueDate: null.TimeFrom(day(time.January, 22)), MaxPoints: 10, CreatedAt: day(time.January, 15)},
		{ID: "assign-3", CourseID: "course-1", Title: "Social Media Strategy", Description: "Desarrollar estrategia integral de redes sociales", DueDate: null.TimeFrom(day(time.January, 29)), MaxPoints: 10, CreatedAt: day(time.January, 22)},
		{ID: "assign-4", CourseID: "course-2", Title: "Data Visualization Dashboard", Description: "Crear dashboard interactivo con Power BI o Tableau", DueDate: null.TimeFrom(day(time.January, 18)), MaxPoints: 10, CreatedAt: day(time.January, 10)},
		{ID: "assign-5", CourseID: "course-2", Title: "SQL Query Optimization", Description: "Optimizar consultas SQL para análisis de datos", DueDate: null.TimeFrom(day(time.January, 25)), MaxPoints: 10, CreatedAt: day(time.January, 18)},
		{ID: "assign-6", CourseID: "course-2", Title: "Predictive Analytics Model", Description: "Desarrollar modelo predictivo usando Python/R", DueDate: null.TimeFrom(day(time.February, 1)), MaxPoints: 10, CreatedAt: day(time.January, 25)},
	}
}

type outcome struct {
	status    classroom.Status
	grade     null.Float64
	submitted null.Time
}

func graded(grade float64, submitted time.Time) outcome {
	return outcome{classroom.StatusGraded, null.Float64From(grade), null.TimeFrom(submitted)}
}

func delivered(status classroom.Status, submitted time.Time) outcome {
	return outcome{status: status, submitted: null.TimeFrom(submitted)}
}

// outcomeFor mirrors each cell's performance profile: A high, B very high, C struggling, D good.
// i is the student's position within the cell, idx the assignment's position within the course.
func outcomeFor(cellID string, i, idx int) outcome {
	switch cellID {
	case "cell-1":
		switch idx {
		case 0:
			return graded(float64(8+i%3), day(time.January, 14))
		case 1:
			return delivered(classroom.StatusSubmitted, day(time.January, 21))
		}
		return outcome{status: classroom.StatusAssigned}
	case "cell-2":
		switch idx {
		case 0:
			return graded(float64(9+i%2), day(time.January, 13))
		case 1:
			return graded(float64(8+(i+1)%2), day(time.January, 20))
		}
		return delivered(classroom.StatusSubmitted, day(time.January, 28))
	case "cell-3":
		switch idx {
		case 0:
			if i%3 == 2 {
				return delivered(classroom.StatusLate, day(time.January, 20))
			}
			return graded(float64(6+i%4), day(time.January, 17))
		case 1:
			if i%5 < 2 {
				return outcome{status: classroom.StatusNotSubmitted}
			}
			return outcome{status: classroom.StatusDraft}
		}
		return outcome{status: classroom.StatusAssigned}
	default:
		switch idx {
		case 0:
			return graded(float64(7+i%3), day(time.January, 16))
		case 1:
			if i%5 == 4 {
				return delivered(classroom.StatusLate, day(time.January, 24))
			}
			return delivered(classroom.StatusSubmitted, day(time.January, 24))
		}
		return outcome{status: classroom.StatusDraft}
	}
}

// Submissions has one submission per student and course assignment.
func Submissions() []classroom.Submission {
	assignments := Assignments()
	subs := make([]classroom.Submission, 0, 31*3)

	n := 1
	for _, cell := range studentsByCell {
		courseAssignments := classroom.CourseAssignments(assignments, cellCourse[cell.cellID])
		for i := range cell.people {
			studentID := fmt.Sprintf("student-%d", n)
			for idx, a := range courseAssignments {
				o := outcomeFor(cell.cellID, i, idx)
				sub := classroom.Submission{
					ID:           fmt.Sprintf("sub-%s-%s", studentID, a.ID),
					AssignmentID: a.ID,
					StudentID:    studentID,
					SubmittedAt:  o.submitted,
					Grade:        o.grade,
					Status:       o.status,
					CellID:       cell.cellID,
				}
				if o.grade.Valid {
					sub.Feedback = "Buen trabajo. Hay aspectos que mejorar."
					if o.grade.Float64 >= 8 {
						sub.Feedback = "Buen trabajo. Excelente comprensión de los conceptos."
					}
				}
				subs = append(subs, sub)
			}
			n++
		}
	}
	return subs
}

func Notifications() []classroom.Notification {
	return []classroom.Notification{
		{ID: "notif-1", UserID: "teacher-1", Title: "Entregas Tardías en tu Célula", Message: "2 estudiantes tienen entregas tardías esta semana. Revisa el progreso de Carlos López y Juan Pérez.", Type: classroom.NotificationLateDelivery, CreatedAt: at(time.January, 20, 9, 0)},
		{ID: "notif-2", UserID: "coord-1", Title: "Célula C Requiere Atención", Message: "La Célula C - Data Analytics tiene un 69% de completado. Considera programar sesión de apoyo.", Type: classroom.NotificationCellAlert, CreatedAt: at(time.January, 19, 14, 30)},
		{ID: "notif-3", UserID: "teacher-2", Title: "Excelente Rendimiento", Message: "Tu Célula B tiene el mejor promedio del curso con 9.1/10. ¡Felicitaciones!", Type: classroom.NotificationAnnouncement, Read: true, CreatedAt: at(time.January, 18, 16, 45)},
		{ID: "notif-4", UserID: "teacher-3", Title: "Tareas por Revisar", Message: `4 estudiantes entregaron "Data Visualization Dashboard". Pendiente de calificación.`, Type: classroom.NotificationAssignment, CreatedAt: at(time.January, 17, 11, 20)},
		{ID: "notif-5", UserID: "student-1", Title: "Nueva Tarea Asignada", Message: `Se asignó "Social Media Strategy" con fecha límite 29 de enero.`, Type: classroom.NotificationAssignment, Read: true, CreatedAt: at(time.January, 22, 10, 0)},
		{ID: "notif-6", UserID: "student-3", Title: "Calificación Recibida", Message: `Recibiste 10/10 en "Landing Page Design". ¡Excelente trabajo!`, Type: classroom.NotificationGrade, CreatedAt: at(time.January, 16, 15, 30)},
	}
}

// Dataset returns a fresh copy of the whole demo dataset.
func Dataset() classroom.Dataset {
	return classroom.Dataset{
		Courses:       Courses(),
		Assignments:   Assignments(),
		Submissions:   Submissions(),
		Users:         Users(),
		Cells:         Cells(),
		Notifications: Notifications(),
	}
}

// Attendance returns ten weekly classes per student, absences following the cell's profile.
func Attendance() []classroom.AttendanceRecord {
	const classes = 10
	records := make([]classroom.AttendanceRecord, 0, 31*classes)

	n := 1
	for _, cell := range studentsByCell {
		courseID := cellCourse[cell.cellID]
		for i := range cell.people {
			studentID := fmt.Sprintf("student-%d", n)
			var absences, lates int
			switch cell.cellID {
			case "cell-1", "cell-2":
				absences, lates = i%2, i%3%2
			case "cell-3":
				absences, lates = 2+i%2, 1
			default:
				absences, lates = 1+i%2, i%2
			}
			for c := 0; c < classes; c++ {
				status := classroom.AttendancePresent
				switch {
				case c < absences:
					status = classroom.AttendanceAbsent
				case c < absences+lates:
					status = classroom.AttendanceLate
				}
				records = append(records, classroom.AttendanceRecord{
					ID:        fmt.Sprintf("att-%s-%02d", studentID, c+1),
					StudentID: studentID,
					CourseID:  courseID,
					Date:      day(time.January, 2).AddDate(0, 0, 7*c),
					Status:    status,
				})
			}
			n++
		}
	}
	return records
}
