package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/courtlabs/courtroom-sim-api/api"
	"github.com/courtlabs/courtroom-sim-api/api/scheduler"
	"github.com/courtlabs/courtroom-sim-api/cases"
	"github.com/courtlabs/courtroom-sim-api/config"
	"github.com/courtlabs/courtroom-sim-api/databases"
	"github.com/courtlabs/courtroom-sim-api/llm"
	"github.com/courtlabs/courtroom-sim-api/models"
)

// App stores the router and the session-wide collaborators, so it can be reused
type App struct {
	Router     *mux.Router
	Config     config.Config
	Hub        *Hub
	CaseSource cases.Source
	Provider   llm.Provider
	Scheduler  *scheduler.Scheduler
	dbHelper   databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	op := api.Operator{Email: a.Config.OperatorEmail, PasswordHash: a.Config.OperatorPasswordHash}
	op.SetupGoGuardian()

	r := mux.NewRouter()

	trial := Trial{Hub: a.Hub, CaseSource: a.CaseSource, Provider: a.Provider}
	trialCase := Case{Source: a.CaseSource}
	sessions := Sessions{Hub: a.Hub}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(15 * time.Second))

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(op.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/case", api.Middleware(http.HandlerFunc(trialCase.CaseHandler))).Methods("GET")
	apiCreate.Handle("/sessions", api.Middleware(http.HandlerFunc(sessions.SessionsHandler))).Methods("GET")

	// the trial stream carries its own session protocol, no bearer auth
	r.HandleFunc("/ws/trial", trial.TrialWebSocketHandler)

	return r
}

// Initialize is invoked by main to wire the case source, generation backend,
// session hub and router
func (a *App) Initialize() error {
	if a.Config.CaseSource == "mongo" {
		client, err := databases.NewClient(&a.Config)
		if err != nil {
			zap.S().With(err).Error("failed to create new client")
			return err
		}

		a.dbHelper = databases.NewDatabase(&a.Config, client)
		err = client.Connect()
		if err != nil {
			zap.S().With(err).Error("failed to connect to database")
			return err
		}
		zap.S().Info("courtroom-sim-api has connected to the database")
	}

	src, err := cases.New(&a.Config, a.dbHelper)
	if err != nil {
		zap.S().With(err).Error("failed to set up case source")
		return err
	}
	a.CaseSource = src

	provider, err := llm.New(&a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to set up generation backend")
		return err
	}
	a.Provider = provider

	a.Hub = NewHub()
	a.Scheduler = scheduler.New(a.Hub)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Sessions exported for testing purposes
type Sessions struct {
	Hub *Hub
}

// SessionInfo is the wire form of one registered session
type SessionInfo struct {
	ID        string    `json:"id"`
	CaseTitle string    `json:"case_title"`
	StartedAt time.Time `json:"started_at"`
	Finished  bool      `json:"finished"`
}

// SessionsHandler lists the trial sessions currently registered in the hub
func (s Sessions) SessionsHandler(w http.ResponseWriter, r *http.Request) {
	active := s.Hub.Sessions()
	out := make([]SessionInfo, 0, len(active))
	for _, session := range active {
		out = append(out, SessionInfo{
			ID:        session.ID,
			CaseTitle: session.CaseTitle,
			StartedAt: session.StartedAt,
			Finished:  session.Done(),
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
