package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormFieldsUniqueAndComplete(t *testing.T) {
	fields := FormFields()
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		_, dup := seen[f]
		require.False(t, dup, "duplicate form field %q", f)
		seen[f] = struct{}{}
	}

	// name + description + 17 feature toggles + 56 category fields
	require.Len(t, Features(), 17)
	require.Len(t, fields, 2+17+56)

	require.Contains(t, seen, FieldScenarioName)
	require.Contains(t, seen, FieldScenarioDescription)
	for _, f := range Features() {
		require.Contains(t, seen, f.ToggleField)
	}
	for _, c := range Categories() {
		for _, field := range c.Fields {
			require.Contains(t, seen, field)
		}
	}
}

func TestCategoryIndexMatchesCatalogOrder(t *testing.T) {
	for i, c := range Categories() {
		idx, ok := CategoryIndex(c.Key)
		require.True(t, ok)
		require.Equal(t, i, idx)

		got, ok := CategoryByKey(c.Key)
		require.True(t, ok)
		require.Equal(t, c.Label, got.Label)
	}

	_, ok := CategoryIndex("nope")
	require.False(t, ok)
	require.Equal(t, len(Categories()), NumCategories())
}

func TestIsFormField(t *testing.T) {
	require.True(t, IsFormField("feature_fuels"))
	require.True(t, IsFormField("temporal"))
	require.True(t, IsFormField("project_portfolio"))
	require.False(t, IsFormField("feature_fusion"))
	require.False(t, IsFormField(""))
}
