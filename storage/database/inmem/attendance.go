package inmemdb

import (
	"context"
	"sort"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/progress"
)

type attendanceRepository struct {
	db *attendanceTable
}

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) query(keep func(classroom.AttendanceRecord) bool) []classroom.AttendanceRecord {
	records := make([]classroom.AttendanceRecord, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		if keep(*rec) {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		if records[i].StudentID != records[j].StudentID {
			return records[i].StudentID < records[j].StudentID
		}
		return records[i].ID < records[j].ID
	})
	return records
}

func (repo *attendanceRepository) QueryRates(_ context.Context, courseIDs ...string) (progress.AttendanceRates, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	wanted := make(map[string]bool, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = true
	}
	records := repo.query(func(rec classroom.AttendanceRecord) bool { return wanted[rec.CourseID] })
	return progress.RatesFromRecords(records), nil
}

func (repo *attendanceRepository) QueryRecords(_ context.Context, courseID string) ([]classroom.AttendanceRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(rec classroom.AttendanceRecord) bool { return rec.CourseID == courseID }), nil
}

func (repo *attendanceRepository) SaveRecords(_ context.Context, records ...classroom.AttendanceRecord) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, rec := range records {
		rec := rec
		repo.db.table[rec.ID] = &rec
	}
	return nil
}
