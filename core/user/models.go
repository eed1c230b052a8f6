package user

import (
	"sort"
	"strings"

	"github.com/semillerodigital/educompass/core"
)

// Roles
const (
	RoleStudent     = "student"
	RoleTeacher     = "teacher"
	RoleCoordinator = "coordinator"
)

var (
	AllRoles = []string{RoleCoordinator, RoleStudent, RoleTeacher} // sorted

	rolePriorities = map[string]int{
		RoleCoordinator: 30,
		RoleTeacher:     20,
		RoleStudent:     10,
	}

	Roles = []Role{
		{Name: "Estudiante", Value: RoleStudent},
		{Name: "Profesor", Value: RoleTeacher},
		{Name: "Coordinador", Value: RoleCoordinator},
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

func IsValidRole(role string) bool {
	i := sort.SearchStrings(AllRoles, role)
	return i < len(AllRoles) && AllRoles[i] == role
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// User is anyone taking part in the program: a student, the teacher mentoring a cell or a coordinator.
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	Avatar            string `json:"avatar,omitempty"`
	CellID            string `json:"cellId,omitempty"`
	AssignedTeacherID string `json:"assignedTeacherId,omitempty"`
}

func (u User) IsStudent() bool     { return u.Role == RoleStudent }
func (u User) IsTeacher() bool     { return u.Role == RoleTeacher }
func (u User) IsCoordinator() bool { return u.Role == RoleCoordinator }

// Outranks reports whether u may look at data owned by other.
func (u User) Outranks(other User) bool {
	return RolePriority(u.Role) > RolePriority(other.Role)
}

type QueryFilter struct {
	Search string `json:"search" query:"search"`
	Role   string `json:"role" query:"role" validate:"omitempty,role"`
	CellID string `json:"cell_id" query:"cell_id" validate:"omitempty,slug"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search, true /* lower */)
	qf.Role = core.CleanString(qf.Role, true /* lower */)
	qf.CellID = core.CleanString(qf.CellID)
}

// Filter applies an AND of the non-empty QueryFilter fields.
// Search does a case-insensitive match on one of User.Name or User.Email.
func Filter(users []User, qf QueryFilter) []User {
	qf.Clean()
	res := make([]User, 0, len(users))
	for _, usr := range users {
		if qf.Role != "" && usr.Role != qf.Role {
			continue
		}
		if qf.CellID != "" && usr.CellID != qf.CellID {
			continue
		}
		if qf.Search != "" &&
			!strings.Contains(strings.ToLower(usr.Name), qf.Search) &&
			!strings.Contains(strings.ToLower(usr.Email), qf.Search) {
			continue
		}
		res = append(res, usr)
	}
	return res
}

// Index maps users by ID. The first occurrence of a duplicated ID wins.
func Index(users []User) map[string]User {
	idx := make(map[string]User, len(users))
	for _, usr := range users {
		if _, ok := idx[usr.ID]; !ok {
			idx[usr.ID] = usr
		}
	}
	return idx
}
