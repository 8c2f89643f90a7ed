package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"scenario-builder/internal/model"
)

// Submitter performs the scenario creation round-trip and returns the new
// scenario's identifier.
type Submitter interface {
	Submit(ctx context.Context, payload model.StartingValues) (string, error)
}

// Navigator receives navigation intents. Routing itself is owned elsewhere;
// the session only says where it wants to go.
type Navigator interface {
	GoToScenario(id string)
	GoBack()
}

// ViewDataSink receives fire-and-forget requests to show the detail view of
// one setting row, identified by a "{table}-{row}" composite key.
type ViewDataSink interface {
	ShowRowDetail(compositeKey string)
}

// Session is one scenario-builder page session: it owns the form, the
// settings structure, the loader and the hydrator, and coordinates
// submission and the resulting navigation intent. All of its state is
// discarded when the session ends.
type Session struct {
	ID        string
	Form      *FormState
	Structure *Structure
	Loader    *Loader
	Watcher   *Watcher

	hydrator  *Hydrator
	submitter Submitter
	nav       Navigator
	view      ViewDataSink
	logger    *log.Logger

	mu               sync.Mutex
	lastHydrationErr error
}

// NewSession builds a session around the given collaborators.
func NewSession(provider OptionProvider, submitter Submitter, nav Navigator, view ViewDataSink, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		ID:        uuid.NewString(),
		Form:      NewFormState(),
		Structure: NewStructure(),
		Watcher:   NewWatcher(),
		submitter: submitter,
		nav:       nav,
		view:      view,
		logger:    logger,
	}
	s.Loader = NewLoader(provider, s.Structure, logger)
	s.hydrator = NewHydrator(s.Form, s.Watcher, s.recordHydrationError, logger)
	return s
}

// Start launches the hydration consumer and kicks off the initial option
// load in the background. It returns immediately; slot statuses report
// load progress.
func (s *Session) Start(ctx context.Context) {
	go s.hydrator.Run(ctx)
	go s.Loader.LoadAll(ctx)
}

// Submit packages the current form into one atomic creation request. On
// success the active edit-mode starting values are cleared to the empty
// sentinel (which also resets the form for the next "new scenario" entry)
// and a navigation intent to the new scenario is issued. On failure the
// form is left untouched so the user can retry.
func (s *Session) Submit(ctx context.Context) (string, error) {
	payload := s.Form.Snapshot()

	id, err := s.submitter.Submit(ctx, payload)
	if err != nil {
		return "", err
	}

	s.Watcher.Publish(EmptyStartingValues())
	if s.nav != nil {
		s.nav.GoToScenario(id)
	}
	s.logger.Info("scenario created", "scenario_id", id)
	return id, nil
}

// ShowRow issues the view-data intent for one setting row.
func (s *Session) ShowRow(table, row string) {
	if s.view == nil {
		return
	}
	s.view.ShowRowDetail(fmt.Sprintf("%s-%s", table, row))
}

// HydrationError returns the most recent hydration failure, if any. The
// error is cleared once read.
func (s *Session) HydrationError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.lastHydrationErr
	s.lastHydrationErr = nil
	return err
}

func (s *Session) recordHydrationError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHydrationErr = err
}
