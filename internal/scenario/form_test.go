package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scenario-builder/internal/model"
	"scenario-builder/internal/registry"
)

func TestNewFormStateAllFieldsUnset(t *testing.T) {
	form := NewFormState()

	snap := form.Snapshot()
	require.Len(t, snap, len(registry.FormFields()))
	for _, key := range registry.FormFields() {
		v, ok := form.Field(key)
		require.True(t, ok, "missing field %q", key)
		require.Nil(t, v, "field %q should default to unset", key)
	}
}

func TestSetField(t *testing.T) {
	form := NewFormState()

	require.NoError(t, form.SetField("scenario_name", model.StringPtr("Base Case")))
	v, ok := form.Field("scenario_name")
	require.True(t, ok)
	require.Equal(t, "Base Case", *v)

	require.NoError(t, form.SetField("scenario_name", nil))
	v, _ = form.Field("scenario_name")
	require.Nil(t, v)

	require.Error(t, form.SetField("not_a_field", model.StringPtr("x")))
}

func TestHydrateCopiesEveryField(t *testing.T) {
	form := NewFormState()

	sv := EmptyStartingValues()
	sv["scenario_name"] = model.StringPtr("Base Case")
	sv["feature_fuels"] = model.StringPtr("yes")
	sv["temporal"] = model.StringPtr("2")

	require.NoError(t, form.Hydrate(sv))

	name, _ := form.Field("scenario_name")
	require.Equal(t, "Base Case", *name)
	fuels, _ := form.Field("feature_fuels")
	require.Equal(t, "yes", *fuels)
	temporal, _ := form.Field("temporal")
	require.Equal(t, "2", *temporal)
	desc, _ := form.Field("scenario_description")
	require.Nil(t, desc)
}

func TestHydrateIsIdempotent(t *testing.T) {
	form := NewFormState()

	sv := EmptyStartingValues()
	sv["scenario_name"] = model.StringPtr("Base Case")
	sv["feature_rps"] = model.StringPtr("no")

	require.NoError(t, form.Hydrate(sv))
	first := form.Snapshot()
	require.NoError(t, form.Hydrate(sv))
	require.Equal(t, first, form.Snapshot())
}

func TestHydrateMismatchLeavesFormUnchanged(t *testing.T) {
	form := NewFormState()
	require.NoError(t, form.SetField("scenario_name", model.StringPtr("keep me")))
	before := form.Snapshot()

	sv := EmptyStartingValues()
	sv["feature_fuels"] = model.StringPtr("yes")
	delete(sv, "temporal")
	delete(sv, "rps_targets")

	err := form.Hydrate(sv)
	var mismatch *HydrationMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.ElementsMatch(t, []string{"temporal", "rps_targets"}, mismatch.Missing)
	require.Equal(t, before, form.Snapshot())
}

func TestHydrateEmptySentinelResets(t *testing.T) {
	form := NewFormState()
	require.NoError(t, form.SetField("scenario_name", model.StringPtr("stale")))
	require.NoError(t, form.SetField("feature_prm", model.StringPtr("yes")))

	require.NoError(t, form.Hydrate(EmptyStartingValues()))
	for _, key := range registry.FormFields() {
		v, _ := form.Field(key)
		require.Nil(t, v, "field %q should be reset", key)
	}

	// An entirely empty snapshot is the same sentinel.
	require.NoError(t, form.SetField("temporal", model.StringPtr("1")))
	require.NoError(t, form.Hydrate(model.StartingValues{}))
	v, _ := form.Field("temporal")
	require.Nil(t, v)
}

func TestSnapshotDoesNotAliasFormValues(t *testing.T) {
	form := NewFormState()
	require.NoError(t, form.SetField("scenario_name", model.StringPtr("original")))

	snap := form.Snapshot()
	*snap["scenario_name"] = "mutated"

	v, _ := form.Field("scenario_name")
	require.Equal(t, "original", *v)
}
