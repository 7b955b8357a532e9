// Package registry holds the static schema vocabulary the codec consults:
// reactor kinds, known chemical species with their identifiers, unit
// categories, and required-parameter sets per reactor kind. The tables are
// versioned configuration data, populated once at process start and treated
// as read-only afterwards; concurrent readers need no coordination.
package registry

// SpeciesInfo carries the identifiers of one known chemical species.
type SpeciesInfo struct {
	CAS      string `json:"cas" mapstructure:"cas"`
	ChemName string `json:"chem_name" mapstructure:"chem_name"`
	InChI    string `json:"inchi" mapstructure:"inchi"`
	SMILES   string `json:"smiles" mapstructure:"smiles"`
}

// Registry is an immutable set of schema vocabulary tables.
type Registry struct {
	reactorKinds      map[string]string
	species           map[string]SpeciesInfo
	units             map[string][]string
	requiredParams    map[string][]string
	experimentTypes   []string
	ignitionCriteria  []string
	ignitionTypes     map[string]string
	diagnosticMethods map[string]string
	uncertaintyTypes  []string
}

// ReactorKind returns the display name for a reactor kind tag.
func (r *Registry) ReactorKind(kind string) (string, bool) {
	name, ok := r.reactorKinds[kind]
	return name, ok
}

// ReactorKinds returns the known reactor kind tags, order unspecified.
func (r *Registry) ReactorKinds() []string {
	kinds := make([]string, 0, len(r.reactorKinds))
	for k := range r.reactorKinds {
		kinds = append(kinds, k)
	}
	return kinds
}

// Species returns the identifier set for a species key.
func (r *Registry) Species(key string) (SpeciesInfo, bool) {
	info, ok := r.species[key]
	return info, ok
}

// Units returns the unit vocabulary for a category such as "temperature" or
// "composition". The returned slice must not be modified.
func (r *Registry) Units(category string) []string {
	return r.units[category]
}

// IsCompositionUnit reports whether u belongs to the composition unit
// vocabulary.
func (r *Registry) IsCompositionUnit(u string) bool {
	for _, known := range r.units["composition"] {
		if known == u {
			return true
		}
	}
	return false
}

// RequiredParamsFor returns the required-parameter set for a reactor kind,
// falling back to the default set for unknown kinds.
func (r *Registry) RequiredParamsFor(reactor string) []string {
	if params, ok := r.requiredParams[reactor]; ok {
		return params
	}
	return r.requiredParams["default"]
}

// ExperimentTypes returns the known experiment-type tags in declaration order.
func (r *Registry) ExperimentTypes() []string {
	return r.experimentTypes
}

// IgnitionCriteria returns the recognized ignition-delay determination
// criteria in declaration order.
func (r *Registry) IgnitionCriteria() []string {
	return r.ignitionCriteria
}

// IgnitionType returns the display name for an ignition-type tag.
func (r *Registry) IgnitionType(tag string) (string, bool) {
	name, ok := r.ignitionTypes[tag]
	return name, ok
}

// DiagnosticMethod returns the display name for a diagnostic-method tag.
func (r *Registry) DiagnosticMethod(tag string) (string, bool) {
	name, ok := r.diagnosticMethods[tag]
	return name, ok
}

// UncertaintyTypes returns the recognized uncertainty classifications in
// declaration order.
func (r *Registry) UncertaintyTypes() []string {
	return r.uncertaintyTypes
}
