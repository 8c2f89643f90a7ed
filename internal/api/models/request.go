package models

// SetFieldRequest is the body of PUT /api/v1/form/fields.
// A null value clears the field back to unset.
type SetFieldRequest struct {
	Key   string  `json:"key" binding:"required"`
	Value *string `json:"value"`
}

// StartingValuesRequest is the body of POST /api/v1/starting-values: the
// flat field snapshot published by the external edit-scenario feature.
// An empty or all-null body is the "new scenario" sentinel.
type StartingValuesRequest map[string]*string

// ViewRowRequest is the body of POST /api/v1/view.
type ViewRowRequest struct {
	Table string `json:"table" binding:"required"`
	Row   string `json:"row" binding:"required"`
}
