package record

import (
	"fmt"
	"strconv"

	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
	"github.com/flarelab/combust/pkg/types/respecth"
)

// initialCompositionName is the reserved common-property name that carries
// the initial mixture composition.
const initialCompositionName = "initial composition"

// moleFractionSumTolerance is the accepted deviation of a mole-fraction
// composition sum from 1.0 before a soft warning is emitted.
const moleFractionSumTolerance = 0.01

// Decoder turns a well-formed ReSpecTh document into an ExperimentRecord.
// Decoding is a pure, synchronous pass over the in-memory document; a single
// Decoder is safe for concurrent use.
type Decoder struct {
	log logging.Logger
}

// NewDecoder constructs a Decoder. Pass logging.NewNopLogger() when log
// output is unwanted.
func NewDecoder(log logging.Logger) *Decoder {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Decoder{log: log.Named("decoder")}
}

// Decode parses data and produces the normalized record. The only hard
// failure is a document that is not well-formed XML (CodeMalformedDocument);
// every other discrepancy degrades to defaults and is visible only through
// the returned record's completeness. Soft findings (currently the
// mole-fraction sum check) come back as human-readable warnings.
//
// Decode does not re-run the structural validation; callers gate on Validate
// first.
func (d *Decoder) Decode(data []byte) (*respecth.ExperimentRecord, []string, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, nil, err
	}

	rec := &respecth.ExperimentRecord{
		Metadata:       decodeMetadata(root),
		ExperimentType: root.childText("experimentType", ""),
		Apparatus:      decodeApparatus(root),
		Bibliography:   decodeBibliography(root),
	}

	var warnings []string
	rec.CommonProperties, rec.InitialComposition = decodeCommonProperties(root)
	if w := compositionSumWarning(rec.InitialComposition); w != "" {
		warnings = append(warnings, w)
		d.log.Warn("composition check", logging.String("warning", w))
	}

	for _, dgEl := range root.findAll("dataGroup") {
		dg := d.decodeDataGroup(dgEl)
		rec.DataGroups = append(rec.DataGroups, dg)
	}

	return rec, warnings, nil
}

func decodeMetadata(root *element) respecth.Metadata {
	md := respecth.Metadata{
		Author:           root.childText("fileAuthor", ""),
		DOI:              root.childText("fileDOI", ""),
		FirstPublication: root.childText("firstPublicationDate", ""),
		LastModification: root.childText("lastModificationDate", ""),
	}
	if fv := root.child("fileVersion"); fv != nil {
		md.Version = respecth.Version{
			Major: fv.childText("major", ""),
			Minor: fv.childText("minor", ""),
		}
	}
	return md
}

func decodeApparatus(root *element) respecth.Apparatus {
	app := root.child("apparatus")
	if app == nil {
		return respecth.Apparatus{}
	}
	return respecth.Apparatus{
		Kind: app.childText("kind", ""),
		Type: app.attr("type"),
	}
}

func decodeBibliography(root *element) *respecth.Bibliography {
	bib := root.child("bibliographyLink")
	if bib == nil {
		return nil
	}
	out := &respecth.Bibliography{
		Description:  bib.childText("description", ""),
		ReferenceDOI: bib.childText("referenceDOI", ""),
	}
	if details := bib.child("details"); details != nil {
		out.Details = &respecth.BibDetails{
			Author:  details.childText("author", ""),
			Title:   details.childText("title", ""),
			Journal: details.childText("journal", ""),
			Year:    details.childText("year", ""),
		}
	}
	return out
}

// decodeCommonProperties reads the scalar common properties, keyed by label
// when present and by name otherwise, and splits out the reserved initial
// composition property into its own structure.
func decodeCommonProperties(root *element) (map[string]respecth.PropertyValue, respecth.Composition) {
	props := make(map[string]respecth.PropertyValue)
	var comp respecth.Composition

	cp := root.child("commonProperties")
	if cp == nil {
		return props, comp
	}

	for _, prop := range cp.childAll("property") {
		name := prop.attr("name")
		if name == initialCompositionName {
			comp = decodeComposition(prop)
			continue
		}

		var value respecth.Scalar
		if v := prop.child("value"); v != nil {
			value = respecth.Coerce(v.trimmedText())
		} else {
			value = respecth.Coerce(prop.trimmedText())
		}

		key := prop.attr("label")
		if key == "" {
			key = name
		}
		props[key] = respecth.PropertyValue{
			Value: value,
			Units: prop.attr("units"),
			Name:  name,
		}
	}

	return props, comp
}

func decodeComposition(prop *element) respecth.Composition {
	comp := make(respecth.Composition)
	for _, component := range prop.childAll("component") {
		link := component.child("speciesLink")
		amount := component.child("amount")
		if link == nil || amount == nil {
			continue
		}
		value := 0.0
		if v, err := strconv.ParseFloat(amount.trimmedText(), 64); err == nil {
			value = v
		}
		comp[link.attr("preferredKey")] = respecth.ComponentAmount{
			Amount: value,
			Units:  amount.attr("units"),
		}
	}
	return comp
}

// compositionSumWarning reports a non-empty message when every component is
// expressed as a mole fraction and the amounts do not sum to 1.0 within the
// tolerance. This is advisory only; decode never fails on it.
func compositionSumWarning(comp respecth.Composition) string {
	if len(comp) == 0 {
		return ""
	}
	sum := 0.0
	for _, c := range comp {
		if c.Units != "mole_fraction" {
			return ""
		}
		sum += c.Amount
	}
	if dev := sum - 1.0; dev > moleFractionSumTolerance || dev < -moleFractionSumTolerance {
		return fmt.Sprintf("mole fraction sum is %.4f, expected 1.0", sum)
	}
	return ""
}

// decodeDataGroup reads one dataGroup element: its declared properties, its
// data points as rows keyed by derived column name, and the reconstructed
// table. Duplicate property ids bind last-wins; data-point fields with no
// declared property are kept as row-only columns under their raw tag.
func (d *Decoder) decodeDataGroup(el *element) respecth.DataGroup {
	dg := respecth.DataGroup{
		ID:    el.attr("id"),
		Label: el.attr("label"),
	}

	byID := make(map[string]respecth.PropertyDescriptor)
	for _, propEl := range el.childAll("property") {
		p := decodePropertyDescriptor(propEl)
		dg.Properties = append(dg.Properties, p)
		byID[p.ID] = p
	}

	var extraOrder []string
	extraSeen := make(map[string]bool)

	for _, dp := range el.childAll("dataPoint") {
		row := make(respecth.Row)
		recognized := 0
		var rowExtras []string
		for _, field := range dp.children {
			value := respecth.Coerce(field.trimmedText())
			if p, ok := byID[field.name]; ok {
				row[p.ColumnName] = value
				recognized++
			} else {
				row[field.name] = value
				rowExtras = append(rowExtras, field.name)
			}
		}
		// A point carrying none of the declared columns is noise, not data.
		if recognized == 0 {
			continue
		}
		for _, col := range rowExtras {
			if !extraSeen[col] {
				extraSeen[col] = true
				extraOrder = append(extraOrder, col)
			}
		}
		dg.Rows = append(dg.Rows, row)
	}

	dg.Table, dg.Statistics = buildTable(dg.Properties, dg.Rows, extraOrder)

	if dg.Statistics != nil {
		d.log.Debug("decoded data group",
			logging.String("id", dg.ID),
			logging.Int("points", dg.Statistics.NumPoints),
			logging.Int("columns", len(dg.Statistics.Columns)))
	}
	return dg
}
