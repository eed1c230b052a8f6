package inmemdb

import (
	"sync"

	"github.com/semillerodigital/educompass/core/classroom"
)

type (
	DB struct {
		attendance *attendanceTable
	}

	attendanceTable struct {
		mutex sync.RWMutex
		table map[string]*classroom.AttendanceRecord
	}
)

// Open returns an empty in-memory database.
func Open() *DB {
	return &DB{
		attendance: &attendanceTable{table: make(map[string]*classroom.AttendanceRecord)},
	}
}
