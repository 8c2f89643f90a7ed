package submit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"scenario-builder/internal/model"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newSubmissionServer runs a websocket endpoint that invokes handle with
// each received submission event.
func newSubmissionServer(t *testing.T, handle func(conn *websocket.Conn, ev map[string]json.RawMessage)) (*httptest.Server, string) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var ev map[string]json.RawMessage
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			handle(conn, ev)
		}
	}))
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	return srv, wsURL
}

func TestSubmitRoundTrip(t *testing.T) {
	var mu sync.Mutex
	var gotEvent string
	var gotPayload map[string]*string

	srv, wsURL := newSubmissionServer(t, func(conn *websocket.Conn, ev map[string]json.RawMessage) {
		mu.Lock()
		_ = json.Unmarshal(ev["event"], &gotEvent)
		_ = json.Unmarshal(ev["payload"], &gotPayload)
		mu.Unlock()
		_ = conn.WriteJSON(map[string]any{
			"event":       EventReturnScenarioID,
			"scenario_id": 42,
		})
	})
	defer srv.Close()

	c := NewCoordinator(wsURL, 2*time.Second, testLogger())
	require.Equal(t, StateIdle, c.State())

	payload := model.StartingValues{
		"scenario_name": model.StringPtr("Base Case"),
		"feature_fuels": model.StringPtr("yes"),
		"temporal":      nil,
	}
	id, err := c.Submit(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, "42", id)
	require.Equal(t, StateComplete, c.State())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, EventAddScenario, gotEvent)
	require.Equal(t, "Base Case", *gotPayload["scenario_name"])
	require.Equal(t, "yes", *gotPayload["feature_fuels"])
	require.Nil(t, gotPayload["temporal"])
}

func TestSubmitIgnoresUnrelatedEvents(t *testing.T) {
	srv, wsURL := newSubmissionServer(t, func(conn *websocket.Conn, _ map[string]json.RawMessage) {
		_ = conn.WriteJSON(map[string]any{"event": "heartbeat"})
		_ = conn.WriteJSON(map[string]any{
			"event":       EventReturnScenarioID,
			"scenario_id": "7",
		})
	})
	defer srv.Close()

	c := NewCoordinator(wsURL, 2*time.Second, testLogger())
	id, err := c.Submit(context.Background(), model.StartingValues{})
	require.NoError(t, err)
	require.Equal(t, "7", id)
}

func TestSubmitRejectsSecondInFlight(t *testing.T) {
	release := make(chan struct{})
	srv, wsURL := newSubmissionServer(t, func(conn *websocket.Conn, _ map[string]json.RawMessage) {
		<-release
		_ = conn.WriteJSON(map[string]any{
			"event":       EventReturnScenarioID,
			"scenario_id": 1,
		})
	})
	defer srv.Close()

	c := NewCoordinator(wsURL, 5*time.Second, testLogger())

	firstDone := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), model.StartingValues{})
		firstDone <- err
	}()

	require.Eventually(t, func() bool {
		return c.State() == StateAwaitingID
	}, 2*time.Second, 5*time.Millisecond)

	_, err := c.Submit(context.Background(), model.StartingValues{})
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-firstDone)
}

func TestSubmitTimesOutWithoutResponse(t *testing.T) {
	srv, wsURL := newSubmissionServer(t, func(_ *websocket.Conn, _ map[string]json.RawMessage) {
		// Never respond; the coordinator's deadline has to fire.
	})
	defer srv.Close()

	c := NewCoordinator(wsURL, 100*time.Millisecond, testLogger())
	_, err := c.Submit(context.Background(), model.StartingValues{})

	var timeoutErr *SubmissionTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	require.Equal(t, StateFailed, c.State())

	// A retry is allowed once the failed attempt has resolved.
	_, err = c.Submit(context.Background(), model.StartingValues{})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrSubmissionInFlight)
}

func TestSubmitConnectFailure(t *testing.T) {
	c := NewCoordinator("ws://127.0.0.1:1/scenarios", 500*time.Millisecond, testLogger())
	_, err := c.Submit(context.Background(), model.StartingValues{})

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, "connect", subErr.Op)
	require.Equal(t, StateFailed, c.State())
}
