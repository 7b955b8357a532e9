// Package respecth defines the data model for ReSpecTh-style combustion
// experiment records: the decoded ExperimentRecord aggregate, the
// interactively assembled DraftRecord, and the Scalar value type they share.
// No codec logic lives here, only plain data types that are safe to import
// from any layer without creating circular dependencies.
package respecth

// Metadata holds the file-level metadata of a record. All fields are optional
// strings; a missing element decodes to an empty string.
type Metadata struct {
	Author           string  `json:"author"`
	DOI              string  `json:"doi,omitempty"`
	Version          Version `json:"version"`
	FirstPublication string  `json:"first_publication,omitempty"`
	LastModification string  `json:"last_modification,omitempty"`
}

// Version is the major.minor pair of the fileVersion block.
type Version struct {
	Major string `json:"major"`
	Minor string `json:"minor"`
}

// Apparatus describes the reactor the experiment ran in.
type Apparatus struct {
	// Kind is the reactor-type tag, e.g. "JSR" or "shock_tube".
	Kind string `json:"kind"`
	// Type is the free-form type attribute of the apparatus element.
	Type string `json:"type,omitempty"`
}

// Bibliography is the optional bibliographyLink block.
type Bibliography struct {
	Description  string      `json:"description,omitempty"`
	ReferenceDOI string      `json:"reference_doi,omitempty"`
	Details      *BibDetails `json:"details,omitempty"`
}

// BibDetails holds the nested citation details.
type BibDetails struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	Journal string `json:"journal,omitempty"`
	Year    string `json:"year,omitempty"`
}

// PropertyValue is one scalar common property (temperature, pressure,
// reactor-specific parameter). Value is numeric when the source text parses
// as a floating-point literal, textual otherwise.
type PropertyValue struct {
	Value Scalar `json:"value"`
	Units string `json:"units,omitempty"`
	Name  string `json:"name"`
}

// ComponentAmount is one species' share of the initial composition.
type ComponentAmount struct {
	Amount float64 `json:"amount"`
	Units  string  `json:"units"`
}

// Composition maps a species key to its amount in the initial mixture.
type Composition map[string]ComponentAmount

// SpeciesLink attaches a chemical-species identity to a property or
// composition entry.
type SpeciesLink struct {
	PreferredKey string `json:"preferred_key"`
	CAS          string `json:"cas,omitempty"`
	ChemName     string `json:"chem_name,omitempty"`
	InChI        string `json:"inchi,omitempty"`
	SMILES       string `json:"smiles,omitempty"`
}

// PropertyDescriptor declares one column of a data group. ID is the XML
// element tag used inside each data point and is unique within its group
// (last declaration wins on degenerate duplicates). ColumnName is derived:
// species-linked columns render as "{species_key} ({units})", otherwise
// "{label-or-name} ({units})" with the parenthetical omitted when Units is
// empty.
type PropertyDescriptor struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Label      string       `json:"label,omitempty"`
	Units      string       `json:"units,omitempty"`
	Species    *SpeciesLink `json:"species,omitempty"`
	ColumnName string       `json:"column_name"`
}

// Row maps a derived column name to the cell value of one data point.
type Row map[string]Scalar

// Table is the column-ordered tabular reconstruction of a data group. Rows is
// row-major; every inner slice has len(Columns) entries, with zero-value
// Scalars standing in for cells the source row omitted.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]Scalar `json:"rows"`
}

// Statistics summarizes a non-empty table. It is absent, not zero-filled,
// when the group has no data points.
type Statistics struct {
	NumPoints int      `json:"num_points"`
	Columns   []string `json:"columns"`
	Shape     [2]int   `json:"shape"`
}

// DataGroup is one named table of synchronized measurements.
type DataGroup struct {
	ID         string               `json:"id"`
	Label      string               `json:"label,omitempty"`
	Properties []PropertyDescriptor `json:"properties"`
	Rows       []Row                `json:"rows,omitempty"`
	Table      *Table               `json:"table,omitempty"`
	Statistics *Statistics          `json:"statistics,omitempty"`
}

// ExperimentRecord is the top-level aggregate produced by one decode call.
// It is owned exclusively by that call and never mutated afterwards; new
// documents are produced by encoding a separately built DraftRecord.
type ExperimentRecord struct {
	Metadata           Metadata                 `json:"metadata"`
	ExperimentType     string                   `json:"experiment_type"`
	Apparatus          Apparatus                `json:"apparatus"`
	Bibliography       *Bibliography            `json:"bibliography,omitempty"`
	CommonProperties   map[string]PropertyValue `json:"common_properties"`
	InitialComposition Composition              `json:"initial_composition,omitempty"`
	DataGroups         []DataGroup              `json:"data_groups"`
}

// NumDataPoints sums the point counts across all data groups.
func (r *ExperimentRecord) NumDataPoints() int {
	n := 0
	for _, dg := range r.DataGroups {
		n += len(dg.Rows)
	}
	return n
}
