// Package testutil holds helpers shared by the HTTP and CLI tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/dashboard"
	"github.com/semillerodigital/educompass/core/user"
)

// Now is the instant fixture-backed tests run at: mid-course, a few days before several due dates.
var Now = time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)

// NewValidator returns a validator with every app validator & english translation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

// NewFixtureDashboard returns a dashboard over the demo fixtures, frozen at Now.
func NewFixtureDashboard(attendance dashboard.AttendanceRepository) *dashboard.Service {
	svc := dashboard.NewService(true, nil, attendance, core.NopLogger{})
	svc.SetClock(func() time.Time { return Now })
	return svc
}

func NewAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func NewRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return NewAuthRequest(method, path, "", data...)
}

func MarshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("MarshalObj(): %v", err)
	}
	return data
}

func JSONBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

// DecodeJSON unmarshals a recorded response body into out.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("DecodeJSON(): %v; body %s", err, rec.Body.String())
	}
}
