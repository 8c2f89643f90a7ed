package scenario

import (
	"fmt"
	"sync"

	"scenario-builder/internal/model"
	"scenario-builder/internal/registry"
)

// Structure is the ordered settings structure presented for review. One slot
// is pre-allocated per catalog category in canonical order, and each option
// load writes only its own slot, so presentation order never depends on
// which fetch happened to finish first.
type Structure struct {
	mu    sync.RWMutex
	slots []model.SettingCategory
}

// NewStructure allocates a slot per catalog category, all pending.
func NewStructure() *Structure {
	cats := registry.Categories()
	slots := make([]model.SettingCategory, len(cats))
	for i, c := range cats {
		slots[i] = model.SettingCategory{
			Key:    c.Key,
			Label:  c.Label,
			Status: model.StatusPending,
		}
	}
	return &Structure{slots: slots}
}

// SetLoaded records a successful option fetch for a category. A loaded
// category with zero options stays distinguishable from a pending or
// failed one via its status.
func (s *Structure) SetLoaded(categoryKey string, opts []model.Option) error {
	i, ok := registry.CategoryIndex(categoryKey)
	if !ok {
		return fmt.Errorf("unknown setting category %q", categoryKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[i].Options = append([]model.Option(nil), opts...)
	s.slots[i].Status = model.StatusLoaded
	s.slots[i].Error = ""
	return nil
}

// SetFailed flags a category whose fetch errored. Sibling slots are
// unaffected; the recovery path is a manual reload of this category.
func (s *Structure) SetFailed(categoryKey string, cause error) error {
	i, ok := registry.CategoryIndex(categoryKey)
	if !ok {
		return fmt.Errorf("unknown setting category %q", categoryKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[i].Options = nil
	s.slots[i].Status = model.StatusFailed
	if cause != nil {
		s.slots[i].Error = cause.Error()
	}
	return nil
}

// SetPending returns a category to the loading state ahead of a reload.
func (s *Structure) SetPending(categoryKey string) error {
	i, ok := registry.CategoryIndex(categoryKey)
	if !ok {
		return fmt.Errorf("unknown setting category %q", categoryKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[i].Options = nil
	s.slots[i].Status = model.StatusPending
	s.slots[i].Error = ""
	return nil
}

// Slots returns every slot in canonical order, including pending and
// failed ones. The returned slots do not alias internal state.
func (s *Structure) Slots() []model.SettingCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SettingCategory, len(s.slots))
	for i, slot := range s.slots {
		out[i] = copySlot(slot)
	}
	return out
}

// Loaded returns only the successfully loaded categories, in canonical order.
func (s *Structure) Loaded() []model.SettingCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.SettingCategory
	for _, slot := range s.slots {
		if slot.Status == model.StatusLoaded {
			out = append(out, copySlot(slot))
		}
	}
	return out
}

// Slot returns one category slot by key.
func (s *Structure) Slot(categoryKey string) (model.SettingCategory, bool) {
	i, ok := registry.CategoryIndex(categoryKey)
	if !ok {
		return model.SettingCategory{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlot(s.slots[i]), true
}

func copySlot(slot model.SettingCategory) model.SettingCategory {
	if slot.Options != nil {
		slot.Options = append([]model.Option(nil), slot.Options...)
	}
	return slot
}
