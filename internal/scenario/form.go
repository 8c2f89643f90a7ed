// Package scenario implements the scenario-builder page session: the
// composite form state, the canonically ordered settings structure, the
// concurrent option loader, and starting-value hydration for edit mode.
package scenario

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"scenario-builder/internal/model"
	"scenario-builder/internal/registry"
)

// HydrationMismatchError reports that a starting-values snapshot was missing
// fields the form schema requires. Hydration with a partial snapshot is
// refused outright: silently keeping stale defaults for the missing fields
// would corrupt an edited scenario.
type HydrationMismatchError struct {
	Missing []string
}

func (e *HydrationMismatchError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("starting values missing %d field(s): %s",
		len(missing), strings.Join(missing, ", "))
}

// FormState is the single composite record holding every scenario field:
// feature toggles, setting selections, name and description. All mutation
// goes through SetField, Hydrate and Reset; Snapshot is the read side used
// at submit time.
type FormState struct {
	mu     sync.RWMutex
	values map[string]*string
}

// NewFormState creates a form with every schema field present and unset.
func NewFormState() *FormState {
	f := &FormState{
		values: make(map[string]*string, len(registry.FormFields())),
	}
	for _, key := range registry.FormFields() {
		f.values[key] = nil
	}
	return f
}

// SetField records a single user selection. Unknown keys are rejected so a
// typo cannot silently create a field outside the schema.
func (f *FormState) SetField(key string, value *string) error {
	if !registry.IsFormField(key) {
		return fmt.Errorf("unknown form field %q", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = copyValue(value)
	return nil
}

// Field returns the current value of a form field.
func (f *FormState) Field(key string) (*string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return copyValue(v), ok
}

// Hydrate bulk-copies a starting-values snapshot into the form, driven by
// the registry field schema rather than per-field assignments. The empty
// sentinel (all-null or empty snapshot) resets every field to unset. A
// snapshot missing any schema field fails with HydrationMismatchError and
// leaves the form untouched. Hydrating twice with the same snapshot is a
// no-op the second time.
func (f *FormState) Hydrate(sv model.StartingValues) error {
	if sv.IsEmpty() {
		f.Reset()
		return nil
	}

	var missing []string
	for _, key := range registry.FormFields() {
		if _, ok := sv[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &HydrationMismatchError{Missing: missing}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range registry.FormFields() {
		f.values[key] = copyValue(sv[key])
	}
	return nil
}

// Reset returns every field to unset ("new scenario" mode).
func (f *FormState) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.values {
		f.values[key] = nil
	}
}

// Snapshot returns a copy of the full field mapping, suitable for the flat
// key-value submission payload. The copy does not alias form-owned values.
func (f *FormState) Snapshot() model.StartingValues {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make(model.StartingValues, len(f.values))
	for key, v := range f.values {
		out[key] = copyValue(v)
	}
	return out
}

// EmptyStartingValues builds the "no scenario being edited" sentinel: every
// schema field present and null.
func EmptyStartingValues() model.StartingValues {
	sv := make(model.StartingValues, len(registry.FormFields()))
	for _, key := range registry.FormFields() {
		sv[key] = nil
	}
	return sv
}

// copyValue clones a field value so callers never share backing storage
// with the form (starting-value snapshots are foreign-owned).
func copyValue(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}
