package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/courtlabs/courtroom-sim-api/cases"
	"github.com/courtlabs/courtroom-sim-api/llm"
	"github.com/courtlabs/courtroom-sim-api/models"
	"github.com/courtlabs/courtroom-sim-api/simulation"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// Trial exported for testing purposes
type Trial struct {
	Hub        *Hub
	CaseSource cases.Source
	Provider   llm.Provider
}

// TrialWebSocketHandler runs one trial session over a websocket. The
// connection's read loop routes inbound set_role/user_input messages while
// the controller goroutine drives the trial; a disconnect cancels the
// session.
func (t Trial) TrialWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trialCase, err := t.CaseSource.Load(ctx)
	if err != nil {
		// setup-fatal: report to the operator log, never start the stream
		zap.S().Errorw("failed to load case, session will not start", "error", err)
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "invalid case definition"),
			deadline)
		return
	}

	participants := simulation.NewCourtroomParticipants(trialCase)
	script := simulation.BuildScript(trialCase)
	ctrl := simulation.NewController(trialCase, participants, script, t.Provider, newSocketSender(conn))

	session := NewSession(uuid.New().String(), trialCase.Title, cancel)
	t.Hub.Register(session)
	defer t.Hub.Unregister(session.ID)

	zap.S().Infow("trial session started",
		"session", session.ID,
		"case", trialCase.Title,
	)

	go func() {
		defer session.Finish()
		if err := ctrl.Run(ctx); err != nil {
			zap.S().Infow("trial session ended early", "session", session.ID, "reason", err)
			return
		}
		zap.S().Infow("trial session finished", "session", session.ID)
	}()

	// inbound router: keeps consuming control and utterance messages while
	// the controller may be blocked waiting for a human turn
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			zap.S().Debugw("client disconnected", "session", session.ID, "error", err)
			break
		}

		var msg models.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			zap.S().Debugw("discarding malformed inbound message", "session", session.ID, "error", err)
			continue
		}
		ctrl.HandleInbound(msg)
	}

	// disconnect cancels the session
	cancel()
}
