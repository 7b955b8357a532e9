package record

import (
	"fmt"

	"github.com/flarelab/combust/pkg/types/respecth"
)

// resolveColumnName derives the stable, human-meaningful column identity for
// one declared property:
//
//   - species-linked columns render as "{species_key} ({units})"
//   - otherwise "{label} ({units})", falling back to name when the label is
//     empty, with the parenthetical omitted when units is empty
//
// Two properties in one data group must never resolve to the same column
// name; when degenerate source data collides anyway, the later declaration's
// data points overwrite the earlier's under that name (last-write-wins).
func resolveColumnName(p respecth.PropertyDescriptor) string {
	if p.Species != nil {
		return fmt.Sprintf("%s (%s)", p.Species.PreferredKey, p.Units)
	}
	base := p.Label
	if base == "" {
		base = p.Name
	}
	if p.Units == "" {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, p.Units)
}

// decodePropertyDescriptor reads one property declaration of a data group.
func decodePropertyDescriptor(el *element) respecth.PropertyDescriptor {
	p := respecth.PropertyDescriptor{
		ID:    el.attr("id"),
		Name:  el.attr("name"),
		Label: el.attr("label"),
		Units: el.attr("units"),
	}
	if link := el.child("speciesLink"); link != nil {
		p.Species = &respecth.SpeciesLink{
			PreferredKey: link.attr("preferredKey"),
			CAS:          link.attr("CAS"),
			ChemName:     link.attr("chemName"),
			InChI:        link.attr("InChI"),
			SMILES:       link.attr("SMILES"),
		}
	}
	p.ColumnName = resolveColumnName(p)
	return p
}
