package registry

// Built-in vocabulary tables. These mirror the ReSpecTh community vocabulary
// the platform was built against; deployments can extend the species table
// through the registry section of the configuration file.

var defaultReactorKinds = map[string]string{
	"JSR":            "Jet Stirred Reactor",
	"FR":             "Flow Reactor",
	"PFR":            "Plug Flow Reactor",
	"CSTR":           "Continuously Stirred Tank Reactor",
	"shock_tube":     "Shock Tube",
	"RCM":            "Rapid Compression Machine",
	"flat_flame":     "Flat Flame Burner",
	"counterflow":    "Counterflow Burner",
	"spherical_bomb": "Spherical Bomb",
	"engine":         "Engine",
}

var defaultSpecies = map[string]SpeciesInfo{
	"CH4": {CAS: "74-82-8", ChemName: "methane", InChI: "1S/CH4/h1H4", SMILES: "C"},
	"O2":  {CAS: "7782-44-7", ChemName: "oxygen", InChI: "1S/O2/c1-2", SMILES: "O=O"},
	"N2":  {CAS: "7727-37-9", ChemName: "nitrogen", InChI: "1S/N2/c1-2", SMILES: "N#N"},
	"CO":  {CAS: "630-08-0", ChemName: "carbon monoxide", InChI: "1S/CO/c1-2", SMILES: "[C-]#[O+]"},
	"CO2": {CAS: "124-38-9", ChemName: "carbon dioxide", InChI: "1S/CO2/c2-1-3", SMILES: "C(=O)=O"},
	"H2O": {CAS: "7732-18-5", ChemName: "water", InChI: "1S/H2O/h1H2", SMILES: "O"},
	"H2":  {CAS: "1333-74-0", ChemName: "hydrogen", InChI: "1S/H2/h1H", SMILES: "[H][H]"},
	"NH3": {CAS: "7664-41-7", ChemName: "ammonia", InChI: "1S/H3N/h1H3", SMILES: "N"},
	"NO":  {CAS: "10102-43-9", ChemName: "nitric oxide", InChI: "1S/NO/c1-2", SMILES: "[N]=O"},
	"NO2": {CAS: "10102-44-0", ChemName: "nitrogen dioxide", InChI: "1S/NO2/c2-1-3", SMILES: "N(=O)[O]"},
	"N2O": {CAS: "10024-97-2", ChemName: "nitrous oxide", InChI: "1S/N2O/c1-2-3", SMILES: "N#[N+][O-]"},
	"Ar":  {CAS: "7440-37-1", ChemName: "argon", InChI: "1S/Ar", SMILES: "[Ar]"},
	"He":  {CAS: "7440-59-7", ChemName: "helium", InChI: "1S/He", SMILES: "[He]"},
}

var defaultUnits = map[string][]string{
	"temperature": {"K", "C", "F", "R"},
	"pressure":    {"atm", "bar", "Pa", "kPa", "MPa", "Torr", "psi"},
	"composition": {"mole_fraction", "ppm", "ppb", "mass_fraction", "percent"},
	"time":        {"s", "ms", "us", "ns", "min", "h"},
	"flow_rate":   {"sccm", "slpm", "mol/s", "kg/s"},
	"volume":      {"cm3", "m3", "L", "mL"},
	"length":      {"m", "cm", "mm", "inch", "ft"},
}

var defaultRequiredParams = map[string][]string{
	"JSR":        {"temperature", "pressure", "residence_time", "volume"},
	"FR":         {"temperature", "pressure", "flow_rate", "length", "diameter"},
	"shock_tube": {"temperature", "pressure", "ignition_delay"},
	"RCM":        {"compressed_temperature", "compressed_pressure", "ignition_delay"},
	"default":    {"temperature", "pressure", "composition"},
}

var defaultExperimentTypes = []string{
	"ignition_delay",
	"flame_speed",
	"laminar_flame_speed",
	"species_profile",
	"temperature_profile",
	"pressure_profile",
}

// OptionalScalarParams is the whitelist of optional scalar common properties
// the encoder emits from a draft's optional-parameter set.
var OptionalScalarParams = []string{
	"equivalence_ratio",
	"fuel",
	"oxidizer",
	"diluent",
}

var defaultIgnitionCriteria = []string{"OH*", "CH*", "pressure_rise", "dp/dt_max", "temperature_rise"}

var defaultIgnitionTypes = map[string]string{
	"reflected_shock": "reflected shock",
	"incident_shock":  "incident shock",
	"compression":     "compression ignition",
	"spark":           "spark ignition",
}

var defaultDiagnosticMethods = map[string]string{
	"pressure_transducer": "pressure transducer",
	"OH_emission":         "OH* emission",
	"CH_emission":         "CH* emission",
	"laser_absorption":    "laser absorption",
}

var defaultUncertaintyTypes = []string{"absolute", "relative", "percentage"}

// Default returns the built-in registry.
func Default() *Registry {
	return &Registry{
		reactorKinds:      defaultReactorKinds,
		species:           defaultSpecies,
		units:             defaultUnits,
		requiredParams:    defaultRequiredParams,
		experimentTypes:   defaultExperimentTypes,
		ignitionCriteria:  defaultIgnitionCriteria,
		ignitionTypes:     defaultIgnitionTypes,
		diagnosticMethods: defaultDiagnosticMethods,
		uncertaintyTypes:  defaultUncertaintyTypes,
	}
}

// WithSpecies returns a copy of the registry with extra species merged in.
// Existing keys are overridden; the receiver is not mutated.
func (r *Registry) WithSpecies(extra map[string]SpeciesInfo) *Registry {
	merged := make(map[string]SpeciesInfo, len(r.species)+len(extra))
	for k, v := range r.species {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	clone := *r
	clone.species = merged
	return &clone
}
