package models

import "scenario-builder/internal/model"

// SettingsResponse lists every setting-category slot in canonical order,
// including pending and failed ones.
type SettingsResponse struct {
	Categories []model.SettingCategory `json:"categories"`
	Count      int                     `json:"count"`
}

// FeaturesResponse lists the optional-feature catalog.
type FeaturesResponse struct {
	Features []model.Feature `json:"features"`
	Count    int             `json:"count"`
}

// FormResponse is the full current form state.
type FormResponse struct {
	Fields map[string]*string `json:"fields"`
}

// SubmitResponse carries the identifier minted for a created scenario.
type SubmitResponse struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
