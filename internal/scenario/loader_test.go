package scenario

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"scenario-builder/internal/model"
	"scenario-builder/internal/registry"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// providerFunc adapts a function to OptionProvider.
type providerFunc func(ctx context.Context, categoryKey string) ([]model.Option, error)

func (f providerFunc) FetchOptions(ctx context.Context, categoryKey string) ([]model.Option, error) {
	return f(ctx, categoryKey)
}

func oneOptionProvider() OptionProvider {
	return providerFunc(func(_ context.Context, key string) ([]model.Option, error) {
		return []model.Option{{ID: "1", Label: key + " v1"}}, nil
	})
}

func TestLoadAllFillsEverySlot(t *testing.T) {
	structure := NewStructure()
	loader := NewLoader(oneOptionProvider(), structure, testLogger())

	failed := loader.LoadAll(context.Background())
	require.Zero(t, failed)

	slots := structure.Slots()
	require.Len(t, slots, registry.NumCategories())
	for _, slot := range slots {
		require.Equal(t, model.StatusLoaded, slot.Status)
		require.Len(t, slot.Options, 1)
	}
	require.Len(t, structure.Loaded(), registry.NumCategories())
}

func TestLoadAllPreservesCanonicalOrder(t *testing.T) {
	// Completion order is scrambled with random delays; slot order must
	// still match the catalog.
	structure := NewStructure()
	loader := NewLoader(providerFunc(func(_ context.Context, key string) ([]model.Option, error) {
		time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
		return []model.Option{{ID: "1", Label: key}}, nil
	}), structure, testLogger())

	loader.LoadAll(context.Background())

	cats := registry.Categories()
	slots := structure.Slots()
	require.Len(t, slots, len(cats))
	for i, c := range cats {
		require.Equal(t, c.Key, slots[i].Key)
	}
}

func TestLoadAllIsolatesFailures(t *testing.T) {
	structure := NewStructure()
	loader := NewLoader(providerFunc(func(_ context.Context, key string) ([]model.Option, error) {
		if key == "fuels" {
			return nil, fmt.Errorf("provider unavailable")
		}
		return []model.Option{{ID: "1", Label: key}}, nil
	}), structure, testLogger())

	failed := loader.LoadAll(context.Background())
	require.Equal(t, 1, failed)

	slot, ok := structure.Slot("fuels")
	require.True(t, ok)
	require.Equal(t, model.StatusFailed, slot.Status)
	require.Contains(t, slot.Error, "provider unavailable")
	require.Empty(t, slot.Options)

	require.Len(t, structure.Loaded(), registry.NumCategories()-1)
}

func TestSlotPendingUntilFetchResolves(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	structure := NewStructure()
	loader := NewLoader(providerFunc(func(_ context.Context, key string) ([]model.Option, error) {
		if key == "temporal" {
			<-release
		}
		return []model.Option{{ID: "1", Label: key}}, nil
	}), structure, testLogger())

	done := make(chan struct{})
	go func() {
		loader.LoadAll(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		slot, _ := structure.Slot("load_zones")
		return slot.Status == model.StatusLoaded
	}, time.Second, 5*time.Millisecond)

	slot, _ := structure.Slot("temporal")
	require.Equal(t, model.StatusPending, slot.Status)
	require.Empty(t, slot.Options)

	once.Do(func() { close(release) })
	<-done

	slot, _ = structure.Slot("temporal")
	require.Equal(t, model.StatusLoaded, slot.Status)
}

func TestLoadCategoryRetriggersFailedSlot(t *testing.T) {
	var mu sync.Mutex
	fail := true
	structure := NewStructure()
	loader := NewLoader(providerFunc(func(_ context.Context, key string) ([]model.Option, error) {
		mu.Lock()
		defer mu.Unlock()
		if key == "prm" && fail {
			return nil, fmt.Errorf("transient error")
		}
		return []model.Option{{ID: "9", Label: key}}, nil
	}), structure, testLogger())

	require.Error(t, loader.LoadCategory(context.Background(), "prm"))
	slot, _ := structure.Slot("prm")
	require.Equal(t, model.StatusFailed, slot.Status)

	mu.Lock()
	fail = false
	mu.Unlock()

	require.NoError(t, loader.LoadCategory(context.Background(), "prm"))
	slot, _ = structure.Slot("prm")
	require.Equal(t, model.StatusLoaded, slot.Status)
	require.Len(t, slot.Options, 1)

	require.Error(t, loader.LoadCategory(context.Background(), "unknown"))
}

func TestLoaderDiscardsResultsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	structure := NewStructure()
	loader := NewLoader(providerFunc(func(ctx context.Context, key string) ([]model.Option, error) {
		cancel()
		<-ctx.Done()
		return []model.Option{{ID: "1", Label: key}}, nil
	}), structure, testLogger())

	loader.LoadAll(ctx)

	// Abandoned results must not be written into the structure.
	for _, slot := range structure.Slots() {
		require.Equal(t, model.StatusPending, slot.Status)
	}
}
