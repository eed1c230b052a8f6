package cell

import (
	"sort"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/progress"
)

// Metrics is the coordinator's view of one cell.
type Metrics struct {
	CellID             string  `json:"cellId"`
	CellName           string  `json:"cellName"`
	TeacherID          string  `json:"teacherId"`
	TeacherName        string  `json:"teacherName"`
	TotalStudents      int     `json:"totalStudents"`
	TotalDeliveries    int     `json:"totalDeliveries"`
	LateDeliveries     int     `json:"lateDeliveries"`
	PendingAssignments int     `json:"pendingAssignments"`
	PendingReviews     int     `json:"pendingReviews"`
	AverageGrade       float64 `json:"averageGrade"`
	CompletionRate     float64 `json:"completionRate"`
	NeedingAttention   int     `json:"studentsNeedingAttention"`
}

// NeedsAttention escalates cells whose mean completion is under 75%.
func (m Metrics) NeedsAttention() bool {
	return m.CompletionRate < CellMinCompletion
}

// MetricsFor reduces a TeacherCell. An empty cell yields zero means.
func MetricsFor(tc TeacherCell) Metrics {
	m := Metrics{
		CellID:        tc.ID,
		CellName:      tc.Name,
		TeacherID:     tc.TeacherID,
		TeacherName:   tc.TeacherName,
		TotalStudents: len(tc.Students),
	}

	grades := make([]float64, 0, len(tc.Students))
	completion := make([]float64, 0, len(tc.Students))
	for _, s := range tc.Students {
		m.TotalDeliveries += s.count(classroom.Status.IsCompleted)
		m.LateDeliveries += s.count(classroom.Status.IsLate)
		m.PendingAssignments += s.count(classroom.Status.IsPending)
		m.PendingReviews += s.count(classroom.Status.IsAwaitingReview)
		if s.NeedsAttention() {
			m.NeedingAttention++
		}
		grades = append(grades, s.AverageGrade)
		completion = append(completion, s.CompletionRate)
	}
	m.AverageGrade = progress.Mean(grades)
	m.CompletionRate = progress.Mean(completion)
	return m
}

// AllMetrics computes the metrics of every teacher's cell, sorted by cell id.
func AllMetrics(ds classroom.Dataset) []Metrics {
	res := make([]Metrics, 0)
	for _, teacher := range ds.Teachers() {
		if tc, ok := ForTeacher(teacher.ID, ds); ok {
			res = append(res, MetricsFor(tc))
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CellID < res[j].CellID })
	return res
}

// Summary buckets cells for the coordinator overview.
type Summary struct {
	Cells          int     `json:"cells"`
	Students       int     `json:"students"`
	Excellent      int     `json:"excellent"`      // >= 90%
	OnTrack        int     `json:"onTrack"`        // 75% - 90%
	NeedsFollowUp  int     `json:"needsFollowUp"`  // < 75%
	CompletionRate float64 `json:"completionRate"` // mean over cells
	AverageGrade   float64 `json:"averageGrade"`
	Deliveries     int     `json:"deliveries"`
	LateDeliveries int     `json:"lateDeliveries"`
}

func Summarize(metrics []Metrics) Summary {
	sum := Summary{Cells: len(metrics)}
	completion := make([]float64, 0, len(metrics))
	grades := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		sum.Students += m.TotalStudents
		sum.Deliveries += m.TotalDeliveries
		sum.LateDeliveries += m.LateDeliveries
		switch {
		case m.CompletionRate >= CellExcellent:
			sum.Excellent++
		case m.NeedsAttention():
			sum.NeedsFollowUp++
		default:
			sum.OnTrack++
		}
		completion = append(completion, m.CompletionRate)
		grades = append(grades, m.AverageGrade)
	}
	sum.CompletionRate = progress.Mean(completion)
	sum.AverageGrade = progress.Mean(grades)
	return sum
}
