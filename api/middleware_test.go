package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtlabs/courtroom-sim-api/api"
)

func testOperator(t *testing.T) api.Operator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return api.Operator{Email: "operator@example.com", PasswordHash: string(hash)}
}

func TestValidateOperator(t *testing.T) {
	op := testOperator(t)

	info, err := op.ValidateOperator(context.Background(), nil, "operator@example.com", "hunter2")
	assert.NoError(t, err)
	assert.Equal(t, "operator@example.com", info.UserName())
}

func TestValidateOperatorWrongPassword(t *testing.T) {
	op := testOperator(t)

	_, err := op.ValidateOperator(context.Background(), nil, "operator@example.com", "wrong")
	assert.Error(t, err)
}

func TestValidateOperatorWrongEmail(t *testing.T) {
	op := testOperator(t)

	_, err := op.ValidateOperator(context.Background(), nil, "intruder@example.com", "hunter2")
	assert.Error(t, err)
}

func TestValidateOperatorUnconfigured(t *testing.T) {
	op := api.Operator{}

	_, err := op.ValidateOperator(context.Background(), nil, "operator@example.com", "hunter2")
	assert.Error(t, err)
}

func TestMiddlewareRejectsAnonymous(t *testing.T) {
	op := testOperator(t)
	op.SetupGoGuardian()

	handler := api.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req, err := http.NewRequest("GET", "/api/v1/sessions", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddlewareAcceptsBasicAuth(t *testing.T) {
	op := testOperator(t)
	op.SetupGoGuardian()

	handler := api.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req, err := http.NewRequest("GET", "/api/v1/sessions", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.SetBasicAuth("operator@example.com", "hunter2")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateTokenIssuesUsableBearer(t *testing.T) {
	op := testOperator(t)
	op.SetupGoGuardian()

	req, err := http.NewRequest("POST", "/api/v1/auth/token", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.SetBasicAuth("operator@example.com", "hunter2")
	rr := httptest.NewRecorder()
	http.HandlerFunc(op.CreateToken).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])

	handler := api.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req, err = http.NewRequest("GET", "/api/v1/sessions", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+body["token"])
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRevokeTokenMissingBearer(t *testing.T) {
	op := testOperator(t)
	op.SetupGoGuardian()

	req, err := http.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(api.RevokeToken).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
