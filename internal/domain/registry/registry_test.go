package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelab/combust/internal/domain/registry"
)

func TestDefault_KnownSpecies(t *testing.T) {
	t.Parallel()

	reg := registry.Default()

	ch4, ok := reg.Species("CH4")
	require.True(t, ok)
	assert.Equal(t, "74-82-8", ch4.CAS)
	assert.Equal(t, "methane", ch4.ChemName)
	assert.Equal(t, "C", ch4.SMILES)

	_, ok = reg.Species("C60")
	assert.False(t, ok)
}

func TestDefault_ReactorKinds(t *testing.T) {
	t.Parallel()

	reg := registry.Default()

	name, ok := reg.ReactorKind("JSR")
	require.True(t, ok)
	assert.Equal(t, "Jet Stirred Reactor", name)

	assert.Contains(t, reg.ReactorKinds(), "shock_tube")
}

func TestRequiredParamsFor(t *testing.T) {
	t.Parallel()

	reg := registry.Default()

	cases := []struct {
		reactor string
		want    []string
	}{
		{"JSR", []string{"temperature", "pressure", "residence_time", "volume"}},
		{"shock_tube", []string{"temperature", "pressure", "ignition_delay"}},
		{"unknown_kind", []string{"temperature", "pressure", "composition"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.reactor, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, reg.RequiredParamsFor(tc.reactor))
		})
	}
}

func TestIsCompositionUnit(t *testing.T) {
	t.Parallel()

	reg := registry.Default()

	assert.True(t, reg.IsCompositionUnit("mole_fraction"))
	assert.True(t, reg.IsCompositionUnit("ppm"))
	assert.False(t, reg.IsCompositionUnit("K"))
}

func TestWithSpecies_MergeDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := registry.Default()
	extended := base.WithSpecies(map[string]registry.SpeciesInfo{
		"C2H6": {CAS: "74-84-0", ChemName: "ethane", InChI: "1S/C2H6/c1-2/h1-2H3", SMILES: "CC"},
		"CH4":  {CAS: "override", ChemName: "methane", InChI: "x", SMILES: "C"},
	})

	_, ok := base.Species("C2H6")
	assert.False(t, ok, "base registry must stay unchanged")

	added, ok := extended.Species("C2H6")
	require.True(t, ok)
	assert.Equal(t, "ethane", added.ChemName)

	overridden, _ := extended.Species("CH4")
	assert.Equal(t, "override", overridden.CAS)
}

func TestDefault_MeasurementVocabularies(t *testing.T) {
	t.Parallel()

	reg := registry.Default()

	assert.Contains(t, reg.IgnitionCriteria(), "dp/dt_max")
	assert.Contains(t, reg.UncertaintyTypes(), "relative")

	name, ok := reg.IgnitionType("reflected_shock")
	require.True(t, ok)
	assert.Equal(t, "reflected shock", name)

	_, ok = reg.IgnitionType("unknown")
	assert.False(t, ok)

	method, ok := reg.DiagnosticMethod("laser_absorption")
	require.True(t, ok)
	assert.Equal(t, "laser absorption", method)

	_, ok = reg.DiagnosticMethod("unknown")
	assert.False(t, ok)
}

func TestWithSpecies_KeepsMeasurementVocabularies(t *testing.T) {
	t.Parallel()

	extended := registry.Default().WithSpecies(map[string]registry.SpeciesInfo{
		"C2H6": {CAS: "74-84-0"},
	})

	assert.NotEmpty(t, extended.IgnitionCriteria())
	assert.NotEmpty(t, extended.UncertaintyTypes())
	_, ok := extended.IgnitionType("spark")
	assert.True(t, ok)
}
