package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flarelab/combust/internal/domain/record"
	"github.com/flarelab/combust/pkg/types/respecth"
)

func TestCheckDraft_CompleteDraftPasses(t *testing.T) {
	t.Parallel()

	missing, warnings := record.CheckDraft(sampleDraft())
	assert.Empty(t, missing)
	assert.Empty(t, warnings)
}

func TestCheckDraft_NilDraft(t *testing.T) {
	t.Parallel()

	missing, warnings := record.CheckDraft(nil)
	assert.Equal(t, []string{"draft is empty"}, missing)
	assert.Empty(t, warnings)
}

func TestCheckDraft_EmptyDraftListsEverything(t *testing.T) {
	t.Parallel()

	missing, _ := record.CheckDraft(&respecth.DraftRecord{})
	assert.Equal(t, []string{
		"basic info is not filled in",
		"experimental conditions are not filled in",
		"at least one data group is required",
	}, missing)
}

func TestCheckDraft_PartialFragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(d *respecth.DraftRecord)
		missing string
	}{
		{
			name:    "author blank",
			mutate:  func(d *respecth.DraftRecord) { d.BasicInfo.Author = "" },
			missing: "basic info requires author, experiment type, and reactor",
		},
		{
			name:    "reactor blank",
			mutate:  func(d *respecth.DraftRecord) { d.BasicInfo.Reactor = "" },
			missing: "basic info requires author, experiment type, and reactor",
		},
		{
			name:    "zero temperature",
			mutate:  func(d *respecth.DraftRecord) { d.Conditions.Temperature.Value = 0 },
			missing: "conditions require positive temperature and pressure",
		},
		{
			name:    "negative pressure",
			mutate:  func(d *respecth.DraftRecord) { d.Conditions.Pressure.Value = -1 },
			missing: "conditions require positive temperature and pressure",
		},
		{
			name:    "no composition",
			mutate:  func(d *respecth.DraftRecord) { d.Conditions.Composition = nil },
			missing: "conditions require at least one composition entry",
		},
		{
			name:    "no data groups",
			mutate:  func(d *respecth.DraftRecord) { d.DataGroups = nil },
			missing: "at least one data group is required",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			draft := sampleDraft()
			tt.mutate(draft)
			missing, _ := record.CheckDraft(draft)
			assert.Equal(t, []string{tt.missing}, missing)
		})
	}
}

func TestCheckDraft_CompositionSumWarning(t *testing.T) {
	t.Parallel()

	draft := sampleDraft()
	draft.Conditions.Composition = []respecth.CompositionEntry{
		{Species: "CH4", Amount: 0.3, Units: "mole_fraction"},
		{Species: "O2", Amount: 0.5, Units: "mole_fraction"},
	}

	missing, warnings := record.CheckDraft(draft)
	assert.Empty(t, missing)
	assert.Equal(t, []string{"mole fraction sum is 0.8000, expected 1.0"}, warnings)
}

func TestCheckDraft_WarningDoesNotBlock(t *testing.T) {
	t.Parallel()

	draft := sampleDraft()
	draft.Conditions.Composition[0].Amount = 0.1

	missing, warnings := record.CheckDraft(draft)
	assert.Empty(t, missing, "an advisory warning must not appear in the missing list")
	assert.NotEmpty(t, warnings)
}
