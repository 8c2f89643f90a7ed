package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"scenario-builder/internal/model"
	"scenario-builder/internal/registry"
)

// OptionProvider is the read side of the external option service: one
// idempotent fetch per setting category.
type OptionProvider interface {
	FetchOptions(ctx context.Context, categoryKey string) ([]model.Option, error)
}

// Loader issues one fetch per setting category and attaches the results to
// the shared Structure. Each category is loaded independently; a failed
// fetch flags its own slot and never aborts its siblings.
type Loader struct {
	provider  OptionProvider
	structure *Structure
	logger    *log.Logger
}

// NewLoader creates a loader writing into structure.
func NewLoader(provider OptionProvider, structure *Structure, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		provider:  provider,
		structure: structure,
		logger:    logger,
	}
}

// LoadAll fetches every catalog category concurrently and returns once all
// fetches have settled. Failures are absorbed per category; the returned
// count says how many categories failed.
func (l *Loader) LoadAll(ctx context.Context) int {
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, cat := range registry.Categories() {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			if err := l.loadOne(ctx, key); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(cat.Key)
	}
	wg.Wait()

	if failed > 0 {
		l.logger.Warn("settings load finished with failures",
			"failed", failed, "total", registry.NumCategories())
	} else {
		l.logger.Info("settings load finished", "categories", registry.NumCategories())
	}
	return failed
}

// LoadCategory re-triggers a single category's fetch. This is the manual
// recovery path for a failed slot; there are no automatic retries.
func (l *Loader) LoadCategory(ctx context.Context, categoryKey string) error {
	if _, ok := registry.CategoryIndex(categoryKey); !ok {
		return fmt.Errorf("unknown setting category %q", categoryKey)
	}
	if err := l.structure.SetPending(categoryKey); err != nil {
		return err
	}
	return l.loadOne(ctx, categoryKey)
}

func (l *Loader) loadOne(ctx context.Context, categoryKey string) error {
	opts, err := l.provider.FetchOptions(ctx, categoryKey)
	if ctx.Err() != nil {
		// Session torn down while the fetch was in flight; discard the
		// result rather than writing into an abandoned structure.
		return ctx.Err()
	}
	if err != nil {
		l.logger.Warn("category load failed", "category", categoryKey, "error", err)
		if serr := l.structure.SetFailed(categoryKey, err); serr != nil {
			return serr
		}
		return err
	}
	return l.structure.SetLoaded(categoryKey, opts)
}
