// Package registry holds the static catalogs that define the shape of a
// scenario: the optional features and the setting categories with their
// selection fields. Both catalogs are fixed at compile time; the option
// provider supplies the choices for each category at runtime.
package registry

import "scenario-builder/internal/model"

// FieldScenarioName and FieldScenarioDescription are the two free-text form
// fields that exist outside the feature/category catalogs.
const (
	FieldScenarioName        = "scenario_name"
	FieldScenarioDescription = "scenario_description"
)

// Category is one setting table: a category of scenario configuration backed
// by a single option fetch. Fields lists the form fields (table rows) whose
// selections all draw from this category's option set.
type Category struct {
	Key    string
	Label  string
	Fields []string
}

// features is the fixed list of optional modeling subsystems. Order is the
// presentation order of the feature toggles.
var features = []model.Feature{
	{Key: "fuels", ToggleField: "feature_fuels", Label: "Fuels"},
	{Key: "multi_stage", ToggleField: "feature_multi_stage", Label: "Multi-Stage Commitment"},
	{Key: "transmission", ToggleField: "feature_transmission", Label: "Transmission"},
	{Key: "transmission_hurdle_rates", ToggleField: "feature_transmission_hurdle_rates", Label: "Transmission Hurdle Rates"},
	{Key: "simultaneous_flow_limits", ToggleField: "feature_simultaneous_flow_limits", Label: "Simultaneous Flow Limits"},
	{Key: "lf_reserves_up", ToggleField: "feature_lf_reserves_up", Label: "Load-Following Reserves Up"},
	{Key: "lf_reserves_down", ToggleField: "feature_lf_reserves_down", Label: "Load-Following Reserves Down"},
	{Key: "regulation_up", ToggleField: "feature_regulation_up", Label: "Regulation Up"},
	{Key: "regulation_down", ToggleField: "feature_regulation_down", Label: "Regulation Down"},
	{Key: "frequency_response", ToggleField: "feature_frequency_response", Label: "Frequency Response"},
	{Key: "spinning_reserves", ToggleField: "feature_spinning_reserves", Label: "Spinning Reserves"},
	{Key: "rps", ToggleField: "feature_rps", Label: "RPS"},
	{Key: "carbon_cap", ToggleField: "feature_carbon_cap", Label: "Carbon Cap"},
	{Key: "track_carbon_imports", ToggleField: "feature_track_carbon_imports", Label: "Track Carbon Imports"},
	{Key: "prm", ToggleField: "feature_prm", Label: "PRM"},
	{Key: "elcc_surface", ToggleField: "feature_elcc_surface", Label: "ELCC Surface"},
	{Key: "local_capacity", ToggleField: "feature_local_capacity", Label: "Local Capacity"},
}

// categories is the canonical review order of the setting tables. The slot
// index of each category in the scenario structure is its index here,
// regardless of the order option fetches complete in.
var categories = []Category{
	{Key: "temporal", Label: "Temporal", Fields: []string{
		"temporal",
	}},
	{Key: "load_zones", Label: "Load Zones", Fields: []string{
		"load_zones", "project_load_zones", "transmission_load_zones",
	}},
	{Key: "system_load", Label: "System Load", Fields: []string{
		"load_profile",
	}},
	{Key: "project_capacity", Label: "Project Capacity", Fields: []string{
		"project_portfolio", "project_existing_capacity",
		"project_existing_fixed_costs", "project_new_costs",
		"project_new_potential", "project_availability",
	}},
	{Key: "project_opchar", Label: "Project Operational Characteristics", Fields: []string{
		"project_operational_chars",
	}},
	{Key: "fuels", Label: "Fuels", Fields: []string{
		"fuels", "fuel_prices",
	}},
	{Key: "transmission_capacity", Label: "Transmission Capacity", Fields: []string{
		"transmission_portfolio", "transmission_existing_capacity",
	}},
	{Key: "transmission_opchar", Label: "Transmission Operational Characteristics", Fields: []string{
		"transmission_operational_chars",
	}},
	{Key: "transmission_hurdle_rates", Label: "Transmission Hurdle Rates", Fields: []string{
		"transmission_hurdle_rates",
	}},
	{Key: "transmission_sim_flow_limits", Label: "Transmission Simultaneous-Flow Limits", Fields: []string{
		"transmission_simultaneous_flow_limits",
		"transmission_simultaneous_flow_limit_line_groups",
	}},
	{Key: "lf_reserves_up", Label: "Load-Following Reserves Up", Fields: []string{
		"lf_reserves_up_bas", "project_lf_reserves_up_bas", "lf_reserves_up_profile",
	}},
	{Key: "lf_reserves_down", Label: "Load-Following Reserves Down", Fields: []string{
		"lf_reserves_down_bas", "project_lf_reserves_down_bas", "lf_reserves_down_profile",
	}},
	{Key: "regulation_up", Label: "Regulation Up", Fields: []string{
		"regulation_up_bas", "project_regulation_up_bas", "regulation_up_profile",
	}},
	{Key: "regulation_down", Label: "Regulation Down", Fields: []string{
		"regulation_down_bas", "project_regulation_down_bas", "regulation_down_profile",
	}},
	{Key: "spinning_reserves", Label: "Spinning Reserves", Fields: []string{
		"spinning_reserves_bas", "project_spinning_reserves_bas", "spinning_reserves_profile",
	}},
	{Key: "frequency_response", Label: "Frequency Response", Fields: []string{
		"frequency_response_bas", "project_frequency_response_bas", "frequency_response_profile",
	}},
	{Key: "rps", Label: "RPS", Fields: []string{
		"rps_areas", "project_rps_areas", "rps_targets",
	}},
	{Key: "carbon_cap", Label: "Carbon Cap", Fields: []string{
		"carbon_cap_zones", "project_carbon_cap_zones",
		"transmission_carbon_cap_zones", "carbon_cap_targets",
	}},
	{Key: "prm", Label: "PRM", Fields: []string{
		"prm_areas", "project_prm_areas", "prm_requirements",
		"project_elcc_chars", "elcc_surface", "project_prm_energy_only",
	}},
	{Key: "local_capacity", Label: "Local Capacity", Fields: []string{
		"local_capacity_areas", "project_local_capacity_areas",
		"local_capacity_requirements", "project_local_capacity_chars",
	}},
	{Key: "tuning", Label: "Tuning", Fields: []string{
		"tuning",
	}},
}

var categoryIndex = func() map[string]int {
	m := make(map[string]int, len(categories))
	for i, c := range categories {
		m[c.Key] = i
	}
	return m
}()

// formFields is the full ordered field schema: name and description first,
// then feature toggles, then the category selection fields in canonical
// category order. This table is the single source of truth for which keys
// exist in the scenario form; hydration and submission both iterate it.
var formFields = func() []string {
	fields := []string{FieldScenarioName, FieldScenarioDescription}
	for _, f := range features {
		fields = append(fields, f.ToggleField)
	}
	for _, c := range categories {
		fields = append(fields, c.Fields...)
	}
	return fields
}()

var formFieldSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(formFields))
	for _, f := range formFields {
		m[f] = struct{}{}
	}
	return m
}()

// Features returns the optional-feature catalog in presentation order.
func Features() []model.Feature {
	out := make([]model.Feature, len(features))
	copy(out, features)
	return out
}

// Categories returns the setting-category catalog in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByKey looks up a category; ok is false for unknown keys.
func CategoryByKey(key string) (Category, bool) {
	i, ok := categoryIndex[key]
	if !ok {
		return Category{}, false
	}
	return categories[i], true
}

// CategoryIndex returns the canonical slot index of a category.
func CategoryIndex(key string) (int, bool) {
	i, ok := categoryIndex[key]
	return i, ok
}

// NumCategories returns the size of the category catalog.
func NumCategories() int {
	return len(categories)
}

// FormFields returns every form field key in schema order.
func FormFields() []string {
	out := make([]string, len(formFields))
	copy(out, formFields)
	return out
}

// IsFormField reports whether key is part of the scenario form schema.
func IsFormField(key string) bool {
	_, ok := formFieldSet[key]
	return ok
}
