package scenario

import (
	"context"

	"github.com/charmbracelet/log"

	"scenario-builder/internal/model"
)

// Watcher is a single-slot, latest-wins notification channel of
// starting-values snapshots. Publishing while an unconsumed snapshot is
// pending replaces it: consumers only ever care about the most recent
// snapshot, so intermediate values are not buffered.
type Watcher struct {
	ch chan model.StartingValues
}

// NewWatcher creates an empty watcher.
func NewWatcher() *Watcher {
	return &Watcher{ch: make(chan model.StartingValues, 1)}
}

// Publish makes sv the pending snapshot, displacing any unconsumed one.
func (w *Watcher) Publish(sv model.StartingValues) {
	for {
		select {
		case w.ch <- sv:
			return
		default:
		}
		select {
		case <-w.ch:
		default:
		}
	}
}

// Changes returns the consumer side of the watcher.
func (w *Watcher) Changes() <-chan model.StartingValues {
	return w.ch
}

// Hydrator reacts to published starting-values snapshots by bulk-copying
// them into the form. Hydration failures are forwarded to onError so the
// session can surface them; they are never just logged and dropped.
type Hydrator struct {
	form    *FormState
	watcher *Watcher
	onError func(error)
	logger  *log.Logger
}

// NewHydrator wires a hydrator to a form and a watcher. onError may be nil.
func NewHydrator(form *FormState, watcher *Watcher, onError func(error), logger *log.Logger) *Hydrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Hydrator{
		form:    form,
		watcher: watcher,
		onError: onError,
		logger:  logger,
	}
}

// Run consumes snapshots until ctx is cancelled.
func (h *Hydrator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sv := <-h.watcher.Changes():
			h.apply(sv)
		}
	}
}

func (h *Hydrator) apply(sv model.StartingValues) {
	if err := h.form.Hydrate(sv); err != nil {
		h.logger.Error("hydration failed", "error", err)
		if h.onError != nil {
			h.onError(err)
		}
		return
	}
	if sv.IsEmpty() {
		h.logger.Info("form reset to new-scenario mode")
	} else {
		h.logger.Info("form hydrated from saved scenario", "fields", len(sv))
	}
}
