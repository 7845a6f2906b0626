package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/courtlabs/courtroom-sim-api/api"
	"github.com/courtlabs/courtroom-sim-api/cases"
	"github.com/courtlabs/courtroom-sim-api/config"
)

// Case exported for testing purposes
type Case struct {
	Source cases.Source
}

// CaseHandler returns the case definition the service runs trials against
func (c Case) CaseHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	trialCase, err := c.Source.Load(ctx)
	if err != nil {
		config.ErrorStatus("failed to load case", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(trialCase)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
