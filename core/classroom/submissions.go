package classroom

import "sort"

// SubmissionKey identifies the record of one student for one assignment.
type SubmissionKey struct {
	AssignmentID string
	StudentID    string
}

func (s Submission) Key() SubmissionKey {
	return SubmissionKey{AssignmentID: s.AssignmentID, StudentID: s.StudentID}
}

// Supersedes reports whether s wins over other when both record the same SubmissionKey:
// a graded record first, then the latest SubmittedAt, then the smallest ID.
func (s Submission) Supersedes(other Submission) bool {
	if s.Grade.Valid != other.Grade.Valid {
		return s.Grade.Valid
	}
	if s.SubmittedAt.Valid != other.SubmittedAt.Valid {
		return s.SubmittedAt.Valid
	}
	if s.SubmittedAt.Valid && !s.SubmittedAt.Time.Equal(other.SubmittedAt.Time) {
		return s.SubmittedAt.Time.After(other.SubmittedAt.Time)
	}
	return s.ID < other.ID
}

// IndexSubmissions keeps one submission per SubmissionKey. The result does not depend on the order of subs.
func IndexSubmissions(subs []Submission) map[SubmissionKey]Submission {
	idx := make(map[SubmissionKey]Submission, len(subs))
	for _, sub := range subs {
		k := sub.Key()
		if cur, ok := idx[k]; !ok || sub.Supersedes(cur) {
			idx[k] = sub
		}
	}
	return idx
}

// DedupeSubmissions returns the submissions kept by IndexSubmissions, sorted by ID.
func DedupeSubmissions(subs []Submission) []Submission {
	idx := IndexSubmissions(subs)
	res := make([]Submission, 0, len(idx))
	for _, sub := range idx {
		res = append(res, sub)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}
