// Package submit performs the scenario creation round-trip: open a
// websocket connection, emit one add_new_scenario event carrying the flat
// form payload, await the single return_new_scenario_id response, close.
// The connection's lifetime is bounded by one submission, which keeps
// success, failure and timeout each observable in isolation.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"scenario-builder/internal/model"
)

// State is the submission lifecycle position.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateSubmitted  State = "submitted"
	StateAwaitingID State = "awaiting_id"
	StateComplete   State = "complete"
	StateFailed     State = "failed"
)

// EventAddScenario and EventReturnScenarioID are the wire event names of the
// submission transport.
const (
	EventAddScenario      = "add_new_scenario"
	EventReturnScenarioID = "return_new_scenario_id"
)

// ErrSubmissionInFlight is returned when a second submission is attempted
// before the first has resolved. No connection is opened in that case.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// SubmissionError is a connection or protocol failure during submit. The
// form state is untouched; the user may retry.
type SubmissionError struct {
	Op  string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed (%s): %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// SubmissionTimeoutError means no identifier arrived within the bound. It
// is handled exactly like any other SubmissionError.
type SubmissionTimeoutError struct {
	Timeout time.Duration
}

func (e *SubmissionTimeoutError) Error() string {
	return fmt.Sprintf("no scenario id received within %s", e.Timeout)
}

// submitEvent is the outbound creation request.
type submitEvent struct {
	Event   string               `json:"event"`
	Payload model.StartingValues `json:"payload"`
}

// responseEvent is an inbound transport event. The identifier may arrive as
// a JSON number or string.
type responseEvent struct {
	Event      string          `json:"event"`
	ScenarioID json.RawMessage `json:"scenario_id"`
}

// parseScenarioID normalizes the identifier to its string form regardless of
// whether the transport sent it as a number or a string.
func parseScenarioID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("response carried no scenario id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", errors.New("response carried an empty scenario id")
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unparseable scenario id %s", raw)
	}
	return n.String(), nil
}

// Coordinator submits scenarios over a websocket endpoint. At most one
// submission is in flight per coordinator.
type Coordinator struct {
	URL     string
	Timeout time.Duration
	Dialer  *websocket.Dialer
	Logger  *log.Logger

	mu       sync.Mutex
	inFlight bool
	state    State
}

// NewCoordinator creates a coordinator for the given ws:// endpoint. A
// non-positive timeout defaults to 15s.
func NewCoordinator(url string, timeout time.Duration, logger *log.Logger) *Coordinator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		URL:     url,
		Timeout: timeout,
		Dialer:  websocket.DefaultDialer,
		Logger:  logger,
		state:   StateIdle,
	}
}

// State returns the current lifecycle position.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Submit sends the flat form payload and awaits the generated scenario
// identifier. A submission already in flight is rejected with
// ErrSubmissionInFlight before any connection is opened.
func (c *Coordinator) Submit(ctx context.Context, payload model.StartingValues) (string, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	c.inFlight = true
	c.state = StateConnecting
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	id, err := c.roundTrip(ctx, payload)
	if err != nil {
		c.setState(StateFailed)
		return "", err
	}
	c.setState(StateComplete)
	return id, nil
}

func (c *Coordinator) roundTrip(ctx context.Context, payload model.StartingValues) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	conn, resp, err := c.Dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		if resp != nil {
			return "", &SubmissionError{Op: "connect", Err: fmt.Errorf("%w (status %d)", err, resp.StatusCode)}
		}
		return "", &SubmissionError{Op: "connect", Err: err}
	}
	defer conn.Close()

	deadline := time.Now().Add(c.Timeout)
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return "", &SubmissionError{Op: "deadline", Err: err}
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return "", &SubmissionError{Op: "deadline", Err: err}
	}

	if err := conn.WriteJSON(submitEvent{Event: EventAddScenario, Payload: payload}); err != nil {
		return "", &SubmissionError{Op: "send", Err: err}
	}
	c.setState(StateSubmitted)
	c.Logger.Debug("scenario submitted, awaiting id", "endpoint", c.URL)
	c.setState(StateAwaitingID)

	for {
		var ev responseEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if isTimeout(err) {
				return "", &SubmissionTimeoutError{Timeout: c.Timeout}
			}
			return "", &SubmissionError{Op: "receive", Err: err}
		}
		if ev.Event != EventReturnScenarioID {
			// Unrelated transport chatter; keep waiting for our response.
			c.Logger.Debug("ignoring unexpected event", "event", ev.Event)
			continue
		}
		id, err := parseScenarioID(ev.ScenarioID)
		if err != nil {
			return "", &SubmissionError{Op: "receive", Err: err}
		}
		return id, nil
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
