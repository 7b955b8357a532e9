package respecth

// DraftRecord is an in-progress, interactively assembled record. It is a
// distinct construction path from decoding: fragments are accumulated by the
// calling application (dashboard, CLI) and handed to the encoder in a single
// call. Drafts and decoded records never alias each other.
type DraftRecord struct {
	BasicInfo  *BasicInfo        `json:"basic_info,omitempty"`
	Conditions *Conditions       `json:"conditions,omitempty"`
	Optional   map[string]string `json:"optional,omitempty"`
	DataGroups []DataGroupDraft  `json:"data_groups,omitempty"`
}

// BasicInfo holds the author, experiment-type, and reactor fragment of a
// draft.
type BasicInfo struct {
	Author         string     `json:"author"`
	DOI            string     `json:"doi,omitempty"`
	ExperimentType string     `json:"experiment_type"`
	Reactor        string     `json:"reactor"`
	Description    string     `json:"description,omitempty"`
	Reference      *Reference `json:"reference,omitempty"`
}

// Reference is a draft-side literature citation. It is emitted to the
// bibliography block only when both Author and Title are present.
type Reference struct {
	Author  string `json:"author,omitempty"`
	Title   string `json:"title,omitempty"`
	Journal string `json:"journal,omitempty"`
	Year    int    `json:"year,omitempty"`
	DOI     string `json:"doi,omitempty"`
}

// Quantity is a value with its unit tag.
type Quantity struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// CompositionEntry is one species of a draft's initial composition. The
// identifier fields are enriched from the schema registry when Species
// matches a known species; a caller-supplied identifier takes precedence
// over the registry's.
type CompositionEntry struct {
	Species  string  `json:"species"`
	Amount   float64 `json:"amount"`
	Units    string  `json:"units"`
	CAS      string  `json:"cas,omitempty"`
	ChemName string  `json:"chem_name,omitempty"`
	InChI    string  `json:"inchi,omitempty"`
	SMILES   string  `json:"smiles,omitempty"`
}

// Conditions holds the required experimental conditions of a draft.
type Conditions struct {
	Temperature   Quantity           `json:"temperature"`
	Pressure      Quantity           `json:"pressure"`
	Composition   []CompositionEntry `json:"composition,omitempty"`
	ReactorParams map[string]float64 `json:"reactor_params,omitempty"`
}

// ColumnSpec declares one column of a draft data group. Species, when set,
// names a registry key whose identifiers are attached as a speciesLink on the
// encoded property declaration.
type ColumnSpec struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Label   string `json:"label,omitempty"`
	Units   string `json:"units,omitempty"`
	Species string `json:"species,omitempty"`
}

// DataGroupDraft is one in-progress data group: an X axis, any number of Y
// columns in insertion order, and rows keyed by column name. A row that
// lacks a value for some column simply omits that key; the encoder writes no
// placeholder element for it.
type DataGroupDraft struct {
	ID       string               `json:"id"`
	Label    string               `json:"label"`
	XAxis    ColumnSpec           `json:"x_axis"`
	YColumns []ColumnSpec         `json:"y_columns,omitempty"`
	Rows     []map[string]float64 `json:"rows,omitempty"`
}

// Columns returns the draft group's column specs in encode order: X first,
// then the Y columns in insertion order. An unset X axis is skipped.
func (d *DataGroupDraft) Columns() []ColumnSpec {
	cols := make([]ColumnSpec, 0, len(d.YColumns)+1)
	if d.XAxis.ID != "" || d.XAxis.Name != "" {
		cols = append(cols, d.XAxis)
	}
	cols = append(cols, d.YColumns...)
	return cols
}
