package record

import "github.com/flarelab/combust/pkg/types/respecth"

// CheckDraft applies the export completeness policy to a draft: basic info
// with author, experiment type and reactor, conditions with positive
// temperature and pressure and at least one composition entry, and at least
// one data group. The Encoder itself is more permissive (it degrades to
// defaults); this gate is what interactive callers run before offering an
// export.
//
// The returned missing list enumerates unmet requirements; warnings carry
// advisory findings that do not block export, currently the mole-fraction
// sum check.
func CheckDraft(draft *respecth.DraftRecord) (missing []string, warnings []string) {
	if draft == nil {
		return []string{"draft is empty"}, nil
	}

	switch {
	case draft.BasicInfo == nil:
		missing = append(missing, "basic info is not filled in")
	case draft.BasicInfo.Author == "" || draft.BasicInfo.ExperimentType == "" || draft.BasicInfo.Reactor == "":
		missing = append(missing, "basic info requires author, experiment type, and reactor")
	}

	switch {
	case draft.Conditions == nil:
		missing = append(missing, "experimental conditions are not filled in")
	default:
		if draft.Conditions.Temperature.Value <= 0 || draft.Conditions.Pressure.Value <= 0 {
			missing = append(missing, "conditions require positive temperature and pressure")
		}
		if len(draft.Conditions.Composition) == 0 {
			missing = append(missing, "conditions require at least one composition entry")
		}
		if w := draftCompositionWarning(draft.Conditions.Composition); w != "" {
			warnings = append(warnings, w)
		}
	}

	if len(draft.DataGroups) == 0 {
		missing = append(missing, "at least one data group is required")
	}

	return missing, warnings
}

func draftCompositionWarning(entries []respecth.CompositionEntry) string {
	if len(entries) == 0 {
		return ""
	}
	comp := make(respecth.Composition, len(entries))
	for _, e := range entries {
		comp[e.Species] = respecth.ComponentAmount{Amount: e.Amount, Units: e.Units}
	}
	return compositionSumWarning(comp)
}
