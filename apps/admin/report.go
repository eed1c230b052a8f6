package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core/cell"
	"github.com/semillerodigital/educompass/core/dashboard"
	"github.com/semillerodigital/educompass/core/progress"
)

func (cli *commandLine) report(ctx context.Context, svc *dashboard.Service, courseID string) error {
	snap, err := svc.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "loading dashboard data")
	}

	list := snap.Progress()
	if courseID != "" {
		list = progress.ForCourse(list, courseID)
	}
	summaries := progress.Summarize(list)

	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STUDENT\tCELL\tDONE\tCOMPLETION\tGRADE\tATTENDANCE\tLEVEL")
	for _, s := range summaries {
		grade := "-"
		if s.GradedCount > 0 {
			grade = fmt.Sprintf("%.1f", s.AverageGrade)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%.1f%%\t%s\t%s\t%s\n",
			s.StudentID, s.CellID, s.Completed, s.Total, s.CompletionRate, grade, percent(s.AttendanceRate), s.Level)
	}
	ov := progress.Overall(summaries)
	fmt.Fprintf(tw, "\nstudents: %d\tcompletion: %.1f%%\texcellent: %d\tgood: %d\tneeds attention: %d\n",
		ov.Students, ov.CompletionRate, ov.Excellent, ov.Good, ov.NeedsAttention)
	if err := tw.Flush(); err != nil {
		return err
	}

	metrics := snap.CellMetrics()
	if len(metrics) == 0 || courseID != "" {
		return nil
	}
	fmt.Fprintln(cli.out)
	tw = tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CELL\tTEACHER\tSTUDENTS\tCOMPLETION\tGRADE\tLATE\tTO REVIEW\tATTENTION")
	for _, m := range metrics {
		flag := ""
		if m.NeedsAttention() {
			flag = "!"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f%%\t%.1f\t%d\t%d\t%d %s\n",
			m.CellName, m.TeacherName, m.TotalStudents, m.CompletionRate, m.AverageGrade,
			m.LateDeliveries, m.PendingReviews, m.NeedingAttention, flag)
	}
	sum := cell.Summarize(metrics)
	fmt.Fprintf(tw, "\ncells: %d\tstudents: %d\tcompletion: %.1f%%\tneeds follow-up: %d\n",
		sum.Cells, sum.Students, sum.CompletionRate, sum.NeedsFollowUp)
	return tw.Flush()
}

func percent(f null.Float64) string {
	if !f.Valid {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", f.Float64)
}
