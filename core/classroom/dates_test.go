package classroom

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core"
)

type warnRecorder struct {
	core.NopLogger
	warnings []string
}

func (r *warnRecorder) Warn(msg string, _ ...interface{}) { r.warnings = append(r.warnings, msg) }

var fixedNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func TestDateNormalizer_Normalize(t *testing.T) {
	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input interface{}
		want  null.Time
		warns bool
	}{
		{name: "nil", input: nil, want: null.Time{}},
		{name: "empty string", input: "  ", want: null.Time{}},
		{name: "zero time", input: time.Time{}, want: null.Time{}},
		{name: "nil time pointer", input: (*time.Time)(nil), want: null.Time{}},
		{name: "invalid null time", input: null.Time{}, want: null.Time{}},
		{name: "zero parts", input: DateParts{}, want: null.Time{}},
		{name: "time", input: jan15, want: null.TimeFrom(jan15)},
		{name: "time pointer", input: &jan15, want: null.TimeFrom(jan15)},
		{name: "valid null time", input: null.TimeFrom(jan15), want: null.TimeFrom(jan15)},
		{name: "date string", input: "2024-01-15", want: null.TimeFrom(jan15)},
		{name: "rfc3339", input: "2024-01-15T00:00:00Z", want: null.TimeFrom(jan15)},
		{name: "rfc3339 nano", input: "2024-01-15T00:00:00.000Z", want: null.TimeFrom(jan15)},
		{name: "parts", input: DateParts{Year: 2024, Month: 1, Day: 15}, want: null.TimeFrom(jan15)},
		{name: "parts pointer", input: &DateParts{Year: 2024, Month: 1, Day: 15}, want: null.TimeFrom(jan15)},
		{name: "json object", input: map[string]interface{}{"year": 2024.0, "month": 1.0, "day": 15.0}, want: null.TimeFrom(jan15)},
		{name: "epoch millis", input: jan15.UnixMilli(), want: null.TimeFrom(jan15)},
		{name: "garbage string", input: "next tuesday", want: null.TimeFrom(fixedNow), warns: true},
		{name: "impossible parts", input: DateParts{Year: 2024, Month: 2, Day: 30}, want: null.TimeFrom(fixedNow), warns: true},
		{name: "incomplete object", input: map[string]interface{}{"year": 2024.0}, want: null.TimeFrom(fixedNow), warns: true},
		{name: "unsupported type", input: true, want: null.TimeFrom(fixedNow), warns: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := new(warnRecorder)
			n := DateNormalizer{Now: func() time.Time { return fixedNow }, Logger: rec}

			got, err := n.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Valid, got.Valid)
			assert.True(t, tt.want.Time.Equal(got.Time), "want %v, got %v", tt.want.Time, got.Time)
			assert.Equal(t, tt.warns, len(rec.warnings) > 0)
		})
	}
}

func TestDateNormalizer_strict(t *testing.T) {
	n := DateNormalizer{Strict: true, Now: func() time.Time { return fixedNow }}

	_, err := n.Normalize("not a date")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidDate, errors.Cause(err))

	got, err := n.Normalize(nil)
	assert.NoError(t, err)
	assert.False(t, got.Valid)

	got, err = n.Normalize("2024-01-15")
	assert.NoError(t, err)
	assert.True(t, got.Valid)
}

func TestDateNormalizer_Time(t *testing.T) {
	n := DateNormalizer{Now: func() time.Time { return fixedNow }}

	got, err := n.Time(nil)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, got)

	got, err = n.Time("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDateNormalizer_location(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	n := DateNormalizer{Location: bogota}

	got, err := n.Normalize(DateParts{Year: 2024, Month: 1, Day: 15})
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC).Equal(got.Time))
}

func TestDateNormalizer_DueDate(t *testing.T) {
	n := DateNormalizer{}

	got, err := n.DueDate(nil, &TimeOfDay{Hours: 10})
	require.NoError(t, err)
	assert.False(t, got.Valid)

	got, err = n.DueDate(&DateParts{Year: 2024, Month: 1, Day: 15}, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.Time)

	got, err = n.DueDate(&DateParts{Year: 2024, Month: 1, Day: 15}, &TimeOfDay{Hours: 23, Minutes: 59})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC), got.Time)
}
