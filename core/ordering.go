package core

import "strings"

// Ordering is one sort key of a list endpoint, e.g. "-averageGrade".
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	if ord.Ascending {
		return ord.Field
	}
	return "-" + ord.Field
}

// ParseOrdering splits a comma separated list of fields; a leading "-" means descending.
// Fields not present in allowed are dropped.
func ParseOrdering(s string, allowed ...string) []Ordering {
	var ords []Ordering
	for _, fld := range strings.Split(s, ",") {
		fld = CleanString(fld)
		if fld == "" {
			continue
		}
		ord := Ordering{Field: fld, Ascending: true}
		if strings.HasPrefix(fld, "-") {
			ord = Ordering{Field: fld[1:], Ascending: false}
		}
		if len(allowed) > 0 && !containsString(allowed, ord.Field) {
			continue
		}
		ords = append(ords, ord)
	}
	return ords
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// CleanString trims surrounding whitespace; lower also folds the result to lower case.
// Query params go through it before being compared with known values.
func CleanString(s string, lower ...bool) string {
	if s = strings.TrimSpace(s); len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}
