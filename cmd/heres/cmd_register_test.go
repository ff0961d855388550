package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"heres-tools/cmd/heres/api"
	"heres-tools/cmd/heres/registration"
	"heres-tools/pkg/lib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFrontend replays edits in order, one per collect call.
type scriptedFrontend struct {
	edits   []func(v *registration.Values)
	retries []bool
	seen    []registration.Errors
}

func (s *scriptedFrontend) interactive() bool { return true }

func (s *scriptedFrontend) collect(v *registration.Values, errs registration.Errors) error {
	s.seen = append(s.seen, errs)
	if len(s.edits) == 0 {
		return errAborted
	}
	s.edits[0](v)
	s.edits = s.edits[1:]
	return nil
}

func (s *scriptedFrontend) submit(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

func (s *scriptedFrontend) retry() (bool, error) {
	if len(s.retries) == 0 {
		return false, nil
	}
	again := s.retries[0]
	s.retries = s.retries[1:]
	return again, nil
}

func anaValues() registration.Values {
	return registration.Values{
		FirstName: "Ana",
		LastName1: "Gomez",
		LastName2: "Ruiz",
		Username:  "anag",
		BirthDate: "2010-05-01",
		Section:   "CJ",
		Group:     "A1",
		Consent:   true,
	}
}

func stubAPI(t *testing.T, status int, body string) (*api.Client, *atomic.Int32, *[]api.RegisterMemberRequest) {
	t.Helper()
	var (
		calls  atomic.Int32
		mu     sync.Mutex
		bodies []api.RegisterMemberRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		var req api.RegisterMemberRequest
		_ = json.Unmarshal(raw, &req)
		mu.Lock()
		bodies = append(bodies, req)
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL), &calls, &bodies
}

func newTestController(client *api.Client) *registration.Controller {
	return registration.NewController(registration.NewForm(), client, "Centro Juvenil HERES",
		registration.WithClock(func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }),
	)
}

func TestRunRegistration_NonInteractiveSuccess(t *testing.T) {
	client, calls, _ := stubAPI(t, http.StatusOK, `{"username":"anag"}`)
	ctrl := newTestController(client)
	var out bytes.Buffer

	err := runRegistration(context.Background(), ctrl, flagFrontend{}, anaValues(), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Registro completado")
	assert.Contains(t, out.String(), "anag")
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, registration.StateSuccess, ctrl.State())
}

func TestRunRegistration_NonInteractiveServerError(t *testing.T) {
	client, calls, _ := stubAPI(t, http.StatusBadRequest, `{"error":"username taken"}`)
	ctrl := newTestController(client)
	var out bytes.Buffer

	err := runRegistration(context.Background(), ctrl, flagFrontend{}, anaValues(), &out)

	require.Error(t, err)
	assert.Equal(t, "username taken", err.Error())
	assert.Contains(t, out.String(), "username taken")
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, anaValues(), ctrl.Form().Values())
	assert.True(t, ctrl.CanSubmit())
}

func TestRunRegistration_NonInteractiveInvalid(t *testing.T) {
	client, calls, _ := stubAPI(t, http.StatusOK, `{}`)
	ctrl := newTestController(client)
	v := anaValues()
	v.Consent = false
	var out bytes.Buffer

	err := runRegistration(context.Background(), ctrl, flagFrontend{}, v, &out)

	require.Error(t, err)
	assert.Equal(t, exitInvalid, lib.Code(err))
	assert.Contains(t, out.String(), registration.MsgConsentRequired)
	assert.Zero(t, calls.Load())
}

func TestRunRegistration_InteractiveCorrection(t *testing.T) {
	client, calls, bodies := stubAPI(t, http.StatusOK, `{}`)
	ctrl := newTestController(client)
	fe := &scriptedFrontend{edits: []func(v *registration.Values){
		func(v *registration.Values) { *v = anaValues(); v.Username = "abc"; v.Consent = false },
		func(v *registration.Values) { v.Username = "anagomez"; v.Consent = true },
	}}
	var out bytes.Buffer

	err := runRegistration(context.Background(), ctrl, fe, registration.Values{}, &out)

	require.NoError(t, err)
	require.Len(t, fe.seen, 2)
	assert.Empty(t, fe.seen[0])
	assert.Equal(t, registration.MsgUsernameTooShort, fe.seen[1][registration.FieldUsername])
	assert.Equal(t, registration.MsgConsentRequired, fe.seen[1][registration.FieldConsent])
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "anagomez", (*bodies)[0].Username)
}

func TestRunRegistration_InteractiveRetryAfterServerError(t *testing.T) {
	client, calls, _ := stubAPI(t, http.StatusConflict, `{"error":"username taken"}`)
	ctrl := newTestController(client)
	fe := &scriptedFrontend{
		edits: []func(v *registration.Values){
			func(v *registration.Values) { *v = anaValues() },
			func(v *registration.Values) { v.Username = "anag2" },
		},
		retries: []bool{true, false},
	}
	var out bytes.Buffer

	err := runRegistration(context.Background(), ctrl, fe, registration.Values{}, &out)

	require.EqualError(t, err, "username taken")
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "anag2", ctrl.Form().Values().Username)
}

func TestRunRegistration_SectionChangeDropsGroup(t *testing.T) {
	client, calls, bodies := stubAPI(t, http.StatusOK, `{}`)
	ctrl := newTestController(client)
	fe := &scriptedFrontend{edits: []func(v *registration.Values){
		func(v *registration.Values) { *v = anaValues(); v.Group = "J1"; v.Consent = false },
		func(v *registration.Values) { v.Section = "Chiqui"; v.Consent = true },
		func(v *registration.Values) { v.Group = "3º" },
	}}
	var out bytes.Buffer

	require.NoError(t, runRegistration(context.Background(), ctrl, fe, registration.Values{}, &out))
	require.Len(t, fe.seen, 3)
	assert.Equal(t, registration.MsgGroupRequired, fe.seen[2][registration.FieldGroup])
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Chiqui", (*bodies)[0].Seccion)
	assert.Equal(t, "3º", (*bodies)[0].Grupo)
}
