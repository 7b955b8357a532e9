package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSpeciesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	content := `species:
  C2H5OH:
    cas: 64-17-5
    chem_name: ethanol
    smiles: CCO
  nC7H16:
    cas: 142-82-5
    chem_name: n-heptane
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	species, err := LoadSpeciesFile(path)
	require.NoError(t, err)
	require.Len(t, species, 2)

	// Preferred keys keep their exact casing.
	assert.Equal(t, SpeciesInfo{CAS: "64-17-5", ChemName: "ethanol", SMILES: "CCO"}, species["C2H5OH"])
	assert.Equal(t, "142-82-5", species["nC7H16"].CAS)
}

func TestLoadSpeciesFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	content := `species:
  CH4:
    cas: override-cas
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	extra, err := LoadSpeciesFile(path)
	require.NoError(t, err)

	reg := Default().WithSpecies(extra)
	info, ok := reg.Species("CH4")
	require.True(t, ok)
	assert.Equal(t, "override-cas", info.CAS)

	// Untouched defaults survive the merge.
	_, ok = reg.Species("O2")
	assert.True(t, ok)
}

func TestLoadSpeciesFile_MissingFile(t *testing.T) {
	_, err := LoadSpeciesFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSpeciesFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	require.NoError(t, os.WriteFile(path, []byte("species: [not a map"), 0o644))

	_, err := LoadSpeciesFile(path)
	assert.Error(t, err)
}
