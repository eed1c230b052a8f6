package progress

import (
	"sort"
	"time"

	"github.com/volatiletech/null/v8"
)

// StudentSummary rolls up a student's progress across all of their courses.
type StudentSummary struct {
	StudentID      string       `json:"studentId"`
	CellID         string       `json:"cellId,omitempty"`
	Courses        int          `json:"courses"`
	Completed      int          `json:"assignmentsCompleted"`
	Total          int          `json:"totalAssignments"`
	CompletionRate float64      `json:"completionRate"`
	AverageGrade   float64      `json:"averageGrade"`
	GradedCount    int          `json:"gradedCount"`
	AttendanceRate null.Float64 `json:"attendanceRate"`
	OnTimeRate     float64      `json:"onTimeRate"`
	Level          string       `json:"level"`
	LastActivity   time.Time    `json:"lastActivity"`
}

// Summarize groups progress records per student, sorted by student id.
// Completion and on-time rates are means over courses; the grade mean skips ungraded courses
// and the attendance mean skips courses with unknown attendance.
func Summarize(list []StudentProgress) []StudentSummary {
	byStudent := make(map[string][]StudentProgress)
	for _, p := range list {
		byStudent[p.StudentID] = append(byStudent[p.StudentID], p)
	}

	res := make([]StudentSummary, 0, len(byStudent))
	for studentID, records := range byStudent {
		sum := StudentSummary{StudentID: studentID, Courses: len(records)}

		var completion, grades, attendance, onTime []float64
		for _, p := range records {
			sum.Completed += p.AssignmentsCompleted
			sum.Total += p.TotalAssignments
			sum.GradedCount += p.GradedCount
			completion = append(completion, p.CompletionRate())
			onTime = append(onTime, p.OnTimeRate)
			if p.IsGraded() {
				grades = append(grades, p.AverageGrade)
			}
			if p.AttendanceRate.Valid {
				attendance = append(attendance, p.AttendanceRate.Float64)
			}
			if p.LastActivity.After(sum.LastActivity) {
				sum.LastActivity = p.LastActivity
			}
			if p.CellID != "" && (sum.CellID == "" || p.CellID < sum.CellID) {
				sum.CellID = p.CellID
			}
		}

		sum.CompletionRate = Mean(completion)
		sum.AverageGrade = Mean(grades)
		sum.OnTimeRate = Mean(onTime)
		if len(attendance) > 0 {
			sum.AttendanceRate = null.Float64From(Mean(attendance))
		}
		sum.Level = LevelFor(sum.CompletionRate)
		res = append(res, sum)
	}

	sort.Slice(res, func(i, j int) bool { return res[i].StudentID < res[j].StudentID })
	return res
}

// Overview is the program-wide headline numbers of the coordinator dashboard.
type Overview struct {
	Students          int          `json:"students"`
	CompletionRate    float64      `json:"completionRate"`
	AverageGrade      float64      `json:"averageGrade"`
	Excellent         int          `json:"excellent"`
	Good              int          `json:"good"`
	NeedsAttention    int          `json:"needsAttention"`
	AverageAttendance null.Float64 `json:"averageAttendance"`
}

func Overall(summaries []StudentSummary) Overview {
	ov := Overview{Students: len(summaries)}

	var completion, grades, attendance []float64
	for _, s := range summaries {
		completion = append(completion, s.CompletionRate)
		if s.GradedCount > 0 {
			grades = append(grades, s.AverageGrade)
		}
		if s.AttendanceRate.Valid {
			attendance = append(attendance, s.AttendanceRate.Float64)
		}
		switch s.Level {
		case LevelExcellent:
			ov.Excellent++
		case LevelGood:
			ov.Good++
		default:
			ov.NeedsAttention++
		}
	}
	ov.CompletionRate = Mean(completion)
	ov.AverageGrade = Mean(grades)
	if len(attendance) > 0 {
		ov.AverageAttendance = null.Float64From(Mean(attendance))
	}
	return ov
}
