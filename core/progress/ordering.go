package progress

import (
	"sort"

	"github.com/semillerodigital/educompass/core"
)

// OrderingFields are the StudentProgress fields a list can be sorted by.
var OrderingFields = []string{
	"studentId", "courseId", "cellId", "completionRate", "averageGrade", "attendanceRate", "onTimeRate", "lastActivity",
}

// Sort orders list in place. Ties fall back to (studentId, courseId) so results are stable.
func Sort(list []StudentProgress, ords []core.Ordering) {
	ords = append(append([]core.Ordering{}, ords...), core.Ordering{Field: "studentId", Ascending: true}, core.Ordering{Field: "courseId", Ascending: true})
	sort.SliceStable(list, func(i, j int) bool {
		for _, ord := range ords {
			c := compare(list[i], list[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compare(a, b StudentProgress, field string) int {
	switch field {
	case "studentId":
		return compareStrings(a.StudentID, b.StudentID)
	case "courseId":
		return compareStrings(a.CourseID, b.CourseID)
	case "cellId":
		return compareStrings(a.CellID, b.CellID)
	case "completionRate":
		return compareFloats(a.CompletionRate(), b.CompletionRate())
	case "averageGrade":
		return compareFloats(a.AverageGrade, b.AverageGrade)
	case "attendanceRate":
		// unknown attendance sorts first
		return compareFloats(nullRank(a.AttendanceRate.Valid, a.AttendanceRate.Float64), nullRank(b.AttendanceRate.Valid, b.AttendanceRate.Float64))
	case "onTimeRate":
		return compareFloats(a.OnTimeRate, b.OnTimeRate)
	case "lastActivity":
		switch {
		case a.LastActivity.Before(b.LastActivity):
			return -1
		case a.LastActivity.After(b.LastActivity):
			return 1
		}
	}
	return 0
}

func nullRank(valid bool, v float64) float64 {
	if !valid {
		return -1
	}
	return v
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
