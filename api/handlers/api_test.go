package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtlabs/courtroom-sim-api/api/handlers"
	"github.com/courtlabs/courtroom-sim-api/cases"
	"github.com/courtlabs/courtroom-sim-api/config"
	"github.com/courtlabs/courtroom-sim-api/models"
)

func TestHealthCheckHandler(t *testing.T) {
	conf := config.Config{CaseSource: "file"}
	app := handlers.App{Config: conf}
	router := app.New()

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.HealthCheckResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Alive)
}

func TestCaseHandlerSuccess(t *testing.T) {
	c := handlers.Case{Source: cases.NewFileSource(writeTestCase(t, testCaseJSON))}

	req, err := http.NewRequest("GET", "/api/v1/case", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "State v. Doe", got.Title)
	assert.Equal(t, "Sarah Chen", got.Plaintiff.Lawyer)
}

type failingSource struct{}

func (failingSource) Load(ctx context.Context) (*models.Case, error) {
	return nil, errors.New("mocked error")
}

func TestCaseHandlerLoadFailure(t *testing.T) {
	c := handlers.Case{Source: failingSource{}}

	req, err := http.NewRequest("GET", "/api/v1/case", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, `{"response": "failed to load case, mocked error"}`, rr.Body.String())
}

func TestSessionsHandler(t *testing.T) {
	hub := handlers.NewHub()
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := handlers.NewSession("abc", "State v. Doe", cancel)
	s.Finish()
	hub.Register(s)

	req, err := http.NewRequest("GET", "/api/v1/sessions", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	sessions := handlers.Sessions{Hub: hub}
	http.HandlerFunc(sessions.SessionsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got []handlers.SessionInfo
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	if assert.Len(t, got, 1) {
		assert.Equal(t, "abc", got[0].ID)
		assert.Equal(t, "State v. Doe", got[0].CaseTitle)
		assert.True(t, got[0].Finished)
	}
}

func TestSessionsHandlerEmptyHub(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/sessions", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	sessions := handlers.Sessions{Hub: handlers.NewHub()}
	http.HandlerFunc(sessions.SessionsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}
