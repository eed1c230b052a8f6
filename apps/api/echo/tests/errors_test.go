package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/dashboard"
	"github.com/semillerodigital/educompass/core/user"
	"github.com/semillerodigital/educompass/tests"
)

// failingSource fails every course listing with err.
type failingSource struct {
	err error
}

func (s failingSource) ListCourses(context.Context) ([]classroom.Course, error) {
	return nil, s.err
}

func (s failingSource) ListStudents(context.Context, string) ([]user.User, error) {
	return nil, s.err
}

func (s failingSource) ListCourseWork(context.Context, string) ([]classroom.Assignment, error) {
	return nil, s.err
}

func (s failingSource) ListSubmissions(context.Context, string) ([]classroom.Submission, error) {
	return nil, s.err
}

func Test_dataSourceErrors(t *testing.T) {
	token := getToken(t, fixtureUser(t, "coord-1"))

	tests := []struct {
		name     string
		source   dashboard.Source
		wantCode int
		wantData httpErr
	}{
		{
			name:     "no credentials",
			wantCode: http.StatusUnauthorized,
			wantData: httpErr{Error: "authentication required"},
		},
		{
			name:     "expired token",
			source:   failingSource{core.NewUpstreamError(http.StatusUnauthorized, "/courses", errors.New("invalid credentials"))},
			wantCode: http.StatusUnauthorized,
			wantData: httpErr{Error: "authentication required"},
		},
		{
			name:     "missing scope",
			source:   failingSource{core.NewUpstreamError(http.StatusForbidden, "/courses", errors.New("insufficient scopes"))},
			wantCode: http.StatusForbidden,
			wantData: httpErr{Error: "permission denied"},
		},
		{
			name:     "upstream down",
			source:   failingSource{core.NewUpstreamError(http.StatusInternalServerError, "/courses", nil)},
			wantCode: http.StatusBadGateway,
			wantData: httpErr{Error: "upstream failure"},
		},
		{
			name:     "network failure",
			source:   failingSource{core.NewUpstreamError(0, "/courses", errors.New("connection refused"))},
			wantCode: http.StatusBadGateway,
			wantData: httpErr{Error: "upstream failure"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(dashboard.NewService(false, tt.source, nil, core.NopLogger{}))
			runHTTPTests(t, srv, []httpTest{
				{name: "progress", path: "/v1/progress", token: token, wantCode: tt.wantCode, wantData: testutil.MarshalObj(t, tt.wantData)},
				{name: "cells", path: "/v1/cells", token: token, wantCode: tt.wantCode, wantData: testutil.MarshalObj(t, tt.wantData)},
				{name: "mode", path: "/v1/mode", wantCode: http.StatusOK, wantData: []byte(`{"using_mocks":false}`)},
			})
		})
	}
}
