package record

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strconv"
	"strings"

	"github.com/flarelab/combust/internal/domain/registry"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
	"github.com/flarelab/combust/pkg/errors"
	"github.com/flarelab/combust/pkg/types/respecth"
)

// node is the encoder-side element: attributes keep declaration order so the
// same draft always serializes to byte-identical output.
type node struct {
	name     string
	attrs    [][2]string
	text     string
	children []*node
}

func newNode(name string) *node {
	return &node{name: name}
}

func (n *node) setAttr(key, value string) *node {
	n.attrs = append(n.attrs, [2]string{key, value})
	return n
}

func (n *node) setText(text string) *node {
	n.text = text
	return n
}

func (n *node) add(child *node) *node {
	n.children = append(n.children, child)
	return child
}

// addText appends a child element holding only text.
func (n *node) addText(name, text string) *node {
	return n.add(newNode(name).setText(text))
}

// Encoder assembles a DraftRecord into a canonical ReSpecTh document. It
// consults the schema registry for species identifier enrichment and nothing
// else; an Encoder is safe for concurrent use.
//
// Encoding is best-effort: missing optional draft fragments degrade to
// defaults ("Unknown" author, empty experiment type) rather than failing.
// The only rejected input is an internally inconsistent draft, such as a
// data group that declares no columns at all. Completeness policy ("at
// least one data group", filled conditions) is the caller's gate, not the
// Encoder's.
type Encoder struct {
	reg *registry.Registry
	log logging.Logger
}

// NewEncoder constructs an Encoder over the given registry.
func NewEncoder(reg *registry.Registry, log logging.Logger) *Encoder {
	if reg == nil {
		reg = registry.Default()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Encoder{reg: reg, log: log.Named("encoder")}
}

// Encode serializes a draft to UTF-8 XML text with deterministic 4-space
// indentation and no interior blank lines.
func (e *Encoder) Encode(draft *respecth.DraftRecord) ([]byte, error) {
	if draft == nil {
		return nil, errors.InvalidParam("draft must not be nil")
	}
	for i := range draft.DataGroups {
		dg := &draft.DataGroups[i]
		cols := dg.Columns()
		if len(cols) == 0 {
			return nil, errors.New(errors.CodeDraftInconsistent, "data group declares no columns").
				WithDetail("id=" + dg.ID)
		}
		// An empty column ID would serialize as <property id=""> with
		// nameless data-point children, producing non-well-formed output.
		for _, col := range cols {
			if col.ID == "" {
				return nil, errors.New(errors.CodeDraftInconsistent, "data group column has no id").
					WithDetail("group=" + dg.ID + " column=" + col.Name)
			}
		}
	}

	root := newNode("experiment")

	basic := draft.BasicInfo
	if basic == nil {
		basic = &respecth.BasicInfo{}
	}

	author := basic.Author
	if author == "" {
		author = "Unknown"
	}
	root.addText("fileAuthor", author)
	if basic.DOI != "" {
		root.addText("fileDOI", basic.DOI)
	}

	version := root.add(newNode("fileVersion"))
	version.addText("major", "1")
	version.addText("minor", "0")

	root.addText("experimentType", basic.ExperimentType)

	reactor := basic.Reactor
	if reactor == "" {
		reactor = "JSR"
	}
	root.add(newNode("apparatus")).addText("kind", reactor)

	e.encodeBibliography(root, basic.Reference)
	e.encodeCommonProperties(root, draft)

	for i := range draft.DataGroups {
		e.encodeDataGroup(root, &draft.DataGroups[i])
	}

	out := serialize(root)
	e.log.Debug("encoded draft",
		logging.Int("data_groups", len(draft.DataGroups)),
		logging.Int("bytes", len(out)))
	return out, nil
}

// encodeBibliography emits the bibliographyLink block, but only when the
// reference names both an author and a title.
func (e *Encoder) encodeBibliography(root *node, ref *respecth.Reference) {
	if ref == nil || ref.Author == "" || ref.Title == "" {
		return
	}
	bib := root.add(newNode("bibliographyLink"))
	details := bib.add(newNode("details"))
	details.addText("author", ref.Author)
	details.addText("title", ref.Title)
	if ref.Journal != "" {
		details.addText("journal", ref.Journal)
	}
	if ref.Year != 0 {
		details.addText("year", strconv.Itoa(ref.Year))
	}
	if ref.DOI != "" {
		bib.addText("referenceDOI", ref.DOI)
	}
}

func (e *Encoder) encodeCommonProperties(root *node, draft *respecth.DraftRecord) {
	cp := root.add(newNode("commonProperties"))

	cond := draft.Conditions
	if cond == nil {
		cond = &respecth.Conditions{}
	}

	if cond.Temperature.Value != 0 || cond.Temperature.Units != "" {
		prop := cp.add(newNode("property").
			setAttr("name", "temperature").
			setAttr("label", "T").
			setAttr("units", cond.Temperature.Units).
			setAttr("sourcetype", "reported"))
		prop.addText("value", formatFloat(cond.Temperature.Value))
	}
	if cond.Pressure.Value != 0 || cond.Pressure.Units != "" {
		prop := cp.add(newNode("property").
			setAttr("name", "pressure").
			setAttr("label", "P").
			setAttr("units", cond.Pressure.Units).
			setAttr("sourcetype", "reported"))
		prop.addText("value", formatFloat(cond.Pressure.Value))
	}

	// Reactor-specific parameters, filtered to positive values. Names are
	// sorted so the same draft always yields the same byte stream.
	params := make([]string, 0, len(cond.ReactorParams))
	for name, value := range cond.ReactorParams {
		if value > 0 {
			params = append(params, name)
		}
	}
	sort.Strings(params)
	for _, name := range params {
		prop := cp.add(newNode("property").
			setAttr("name", strings.ReplaceAll(name, "_", " ")).
			setAttr("sourcetype", "reported"))
		prop.addText("value", formatFloat(cond.ReactorParams[name]))
	}

	// Whitelisted optional scalar parameters, in whitelist order.
	for _, key := range registry.OptionalScalarParams {
		value, ok := draft.Optional[key]
		if !ok || value == "" {
			continue
		}
		prop := cp.add(newNode("property").
			setAttr("name", strings.ReplaceAll(key, "_", " ")).
			setAttr("sourcetype", "reported"))
		prop.addText("value", value)
	}

	if len(cond.Composition) > 0 {
		comp := cp.add(newNode("property").
			setAttr("name", initialCompositionName).
			setAttr("sourcetype", "reported"))
		for _, entry := range cond.Composition {
			component := comp.add(newNode("component"))
			component.add(e.speciesLinkNode(entry.Species, respecth.SpeciesLink{
				CAS:      entry.CAS,
				ChemName: entry.ChemName,
				InChI:    entry.InChI,
				SMILES:   entry.SMILES,
			}))
			component.add(newNode("amount").
				setAttr("units", entry.Units).
				setText(formatFloat(entry.Amount)))
		}
	}
}

// speciesLinkNode builds a speciesLink element for the given species key.
// Identifiers explicitly supplied by the caller win over the registry's.
func (e *Encoder) speciesLinkNode(key string, supplied respecth.SpeciesLink) *node {
	ids := supplied
	if info, ok := e.reg.Species(key); ok {
		if ids.CAS == "" {
			ids.CAS = info.CAS
		}
		if ids.ChemName == "" {
			ids.ChemName = info.ChemName
		}
		if ids.InChI == "" {
			ids.InChI = info.InChI
		}
		if ids.SMILES == "" {
			ids.SMILES = info.SMILES
		}
	}

	link := newNode("speciesLink").setAttr("preferredKey", key)
	if ids.CAS != "" {
		link.setAttr("CAS", ids.CAS)
	}
	if ids.ChemName != "" {
		link.setAttr("chemName", ids.ChemName)
	}
	if ids.InChI != "" {
		link.setAttr("InChI", ids.InChI)
	}
	if ids.SMILES != "" {
		link.setAttr("SMILES", ids.SMILES)
	}
	return link
}

func (e *Encoder) encodeDataGroup(root *node, dg *respecth.DataGroupDraft) {
	el := root.add(newNode("dataGroup").
		setAttr("id", dg.ID).
		setAttr("label", dg.Label))

	// Column declarations: X axis first, then Y columns in insertion order.
	cols := dg.Columns()
	for _, col := range cols {
		label := col.Label
		if label == "" {
			label = col.Name
		}
		prop := el.add(newNode("property").
			setAttr("id", col.ID).
			setAttr("name", col.Name).
			setAttr("label", label).
			setAttr("units", col.Units).
			setAttr("sourcetype", "digitized"))
		if col.Species != "" {
			prop.add(e.speciesLinkNode(col.Species, respecth.SpeciesLink{}))
		}
	}

	for _, row := range dg.Rows {
		dp := el.add(newNode("dataPoint"))
		for _, col := range cols {
			value, ok := row[col.Name]
			if !ok {
				continue
			}
			dp.addText(col.ID, formatFloat(value))
		}
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// serialize renders the tree with 4-space indentation, one element per line,
// leaf elements inline, and no blank lines. Text and attribute values are
// XML-escaped.
func serialize(root *node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, root, 0)
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *node, depth int) {
	indent := strings.Repeat("    ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(n.name)
	for _, attr := range n.attrs {
		buf.WriteByte(' ')
		buf.WriteString(attr[0])
		buf.WriteString(`="`)
		buf.WriteString(escapeXML(attr[1]))
		buf.WriteByte('"')
	}

	if len(n.children) == 0 && n.text == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteByte('>')

	if len(n.children) == 0 {
		buf.WriteString(escapeXML(n.text))
		buf.WriteString("</")
		buf.WriteString(n.name)
		buf.WriteString(">\n")
		return
	}

	buf.WriteByte('\n')
	for _, child := range n.children {
		writeNode(buf, child, depth+1)
	}
	buf.WriteString(indent)
	buf.WriteString("</")
	buf.WriteString(n.name)
	buf.WriteString(">\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
