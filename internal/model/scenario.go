package model

// Option is one selectable value within a setting category.
// Options originate from the external option provider and are never
// created locally.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoryStatus tracks the load state of one setting category.
type CategoryStatus string

const (
	// StatusPending means the category's option fetch has not resolved yet.
	StatusPending CategoryStatus = "pending"
	// StatusLoaded means the fetch resolved; Options may still be empty.
	StatusLoaded CategoryStatus = "loaded"
	// StatusFailed means the fetch errored; the category has no options and
	// must be reloaded manually.
	StatusFailed CategoryStatus = "failed"
)

// SettingCategory is one dimension of scenario configuration (e.g. temporal
// resolution, fuel prices) together with the options retrieved for it.
type SettingCategory struct {
	Key     string         `json:"key"`
	Label   string         `json:"label"`
	Options []Option       `json:"options"`
	Status  CategoryStatus `json:"status"`
	Error   string         `json:"error,omitempty"`
}

// Feature describes one optional modeling subsystem (fuels, transmission,
// reserves, ...) and the form field that toggles it.
type Feature struct {
	Key         string `json:"key"`
	ToggleField string `json:"toggle_field"`
	Label       string `json:"label"`
}

// StartingValues is a snapshot of a previously saved scenario's field values,
// keyed by form field. nil means the field was unset. The snapshot is owned
// by the external edit-scenario feature; this module only reads it.
type StartingValues map[string]*string

// IsEmpty reports whether the snapshot is the "no scenario being edited"
// sentinel: every value nil (or no values at all).
func (sv StartingValues) IsEmpty() bool {
	for _, v := range sv {
		if v != nil {
			return false
		}
	}
	return true
}

// StringPtr is a convenience for building field values in literals and tests.
func StringPtr(s string) *string {
	return &s
}
