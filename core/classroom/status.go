package classroom

// Status is the lifecycle stage of a student's response to an assignment.
type Status string

// Canonical submission states
const (
	StatusNotSubmitted Status = "sin_entregar"
	StatusAssigned     Status = "asignado"
	StatusDraft        Status = "borrador"
	StatusSubmitted    Status = "entregado"
	StatusGraded       Status = "evaluado"
	StatusLate         Status = "tarde"
)

// Legacy aliases, still found in older records
const (
	LegacyPending   Status = "pending"
	LegacySubmitted Status = "submitted"
	LegacyGraded    Status = "graded"
	LegacyLate      Status = "late"
)

// Severity is the color tier a status is rendered with.
type Severity string

const (
	SeverityGood    Severity = "good"
	SeverityWarn    Severity = "warn"
	SeverityBad     Severity = "bad"
	SeverityNeutral Severity = "neutral"
)

// Display is how a status is shown to users.
type Display struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

var (
	CanonicalStatuses = []Status{
		StatusNotSubmitted, StatusAssigned, StatusDraft, StatusSubmitted, StatusGraded, StatusLate,
	}
	LegacyStatuses = []Status{LegacyPending, LegacySubmitted, LegacyGraded, LegacyLate}

	unknownDisplay = Display{Label: "Desconocido", Severity: SeverityNeutral}

	legacyAliases = map[Status]Status{
		LegacyPending:   StatusAssigned,
		LegacySubmitted: StatusSubmitted,
		LegacyGraded:    StatusGraded,
		LegacyLate:      StatusLate,
	}

	statusDisplays = map[Status]Display{
		StatusNotSubmitted: {Label: "Sin Entregar", Severity: SeverityBad},
		StatusAssigned:     {Label: "Asignado", Severity: SeverityNeutral},
		StatusDraft:        {Label: "Borrador", Severity: SeverityWarn},
		StatusSubmitted:    {Label: "Entregado", Severity: SeverityGood},
		StatusGraded:       {Label: "Evaluado", Severity: SeverityGood},
		StatusLate:         {Label: "Entrega Tardía", Severity: SeverityWarn},

		LegacyPending:   {Label: "Pendiente", Severity: SeverityNeutral},
		LegacySubmitted: {Label: "Entregado", Severity: SeverityGood},
		LegacyGraded:    {Label: "Evaluado", Severity: SeverityGood},
		LegacyLate:      {Label: "Entrega Tardía", Severity: SeverityWarn},
	}
)

// Canonical folds legacy aliases onto the canonical vocabulary. Unknown values are returned as is.
func (s Status) Canonical() Status {
	if c, ok := legacyAliases[s]; ok {
		return c
	}
	return s
}

// IsCompleted reports whether the work counts as delivered: submitted on time or graded.
func (s Status) IsCompleted() bool {
	switch s.Canonical() {
	case StatusSubmitted, StatusGraded:
		return true
	}
	return false
}

// IsPending reports whether the student still owes the work.
func (s Status) IsPending() bool {
	switch s.Canonical() {
	case StatusAssigned, StatusNotSubmitted:
		return true
	}
	return false
}

// IsAwaitingReview reports whether the work was handed in on time but not graded yet.
func (s Status) IsAwaitingReview() bool {
	return s.Canonical() == StatusSubmitted
}

// IsLate reports whether the work was handed in after the due date.
func (s Status) IsLate() bool {
	return s.Canonical() == StatusLate
}

// Display never fails: unrecognized values get the "Desconocido"/neutral entry.
func (s Status) Display() Display {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return unknownDisplay
}

// StatusDisplays returns the full display table, legacy aliases included, keyed by status.
func StatusDisplays() map[Status]Display {
	res := make(map[Status]Display, len(statusDisplays))
	for k, v := range statusDisplays {
		res[k] = v
	}
	return res
}

// AttendanceStatus is the outcome of one class for a student.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

var attendanceDisplays = map[AttendanceStatus]Display{
	AttendancePresent: {Label: "Presente", Severity: SeverityGood},
	AttendanceAbsent:  {Label: "Ausente", Severity: SeverityBad},
	AttendanceLate:    {Label: "Tardanza", Severity: SeverityWarn},
}

// Display falls back to the "Desconocido"/neutral entry like Status.Display.
func (s AttendanceStatus) Display() Display {
	if d, ok := attendanceDisplays[s]; ok {
		return d
	}
	return unknownDisplay
}

// Attended reports whether the student was in class, on time or not.
func (s AttendanceStatus) Attended() bool {
	return s == AttendancePresent || s == AttendanceLate
}

// AttendanceDisplays returns the attendance display table.
func AttendanceDisplays() map[AttendanceStatus]Display {
	res := make(map[AttendanceStatus]Display, len(attendanceDisplays))
	for k, v := range attendanceDisplays {
		res[k] = v
	}
	return res
}
