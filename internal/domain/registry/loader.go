package registry

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flarelab/combust/pkg/errors"
)

// speciesFile is the YAML shape of a species-extension file. Parsed with
// yaml.v3 rather than viper because viper lowercases map keys, which would
// corrupt case-sensitive preferred keys such as "CH4".
type speciesFile struct {
	Species map[string]speciesEntry `yaml:"species"`
}

type speciesEntry struct {
	CAS      string `yaml:"cas"`
	ChemName string `yaml:"chem_name"`
	InChI    string `yaml:"inchi"`
	SMILES   string `yaml:"smiles"`
}

// LoadSpeciesFile reads a YAML species-extension file and returns its entries
// keyed by preferred key. The expected shape:
//
//	species:
//	  C2H5OH:
//	    cas: 64-17-5
//	    chem_name: ethanol
//	    inchi: 1S/C2H6O/c1-2-3/h3H,2H2,1H3
//	    smiles: CCO
func LoadSpeciesFile(path string) (map[string]SpeciesInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "failed to read species file")
	}

	var out speciesFile
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "failed to parse species file")
	}

	species := make(map[string]SpeciesInfo, len(out.Species))
	for key, e := range out.Species {
		species[key] = SpeciesInfo{
			CAS:      e.CAS,
			ChemName: e.ChemName,
			InChI:    e.InChI,
			SMILES:   e.SMILES,
		}
	}
	return species, nil
}
