package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelab/combust/internal/domain/record"
)

func TestValidate_CompleteDocument(t *testing.T) {
	t.Parallel()

	ok, errs := record.Validate([]byte(sampleDocument))
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_MissingRequiredElements(t *testing.T) {
	t.Parallel()

	doc := `<experiment>
    <fileAuthor>J. Smith</fileAuthor>
    <dataGroup id="dg1"><dataPoint><x1>300</x1></dataPoint></dataGroup>
</experiment>`

	ok, errs := record.Validate([]byte(doc))
	require.False(t, ok)
	assert.Equal(t, []string{
		"missing required element: experimentType",
		"missing required element: apparatus",
		"missing required element: commonProperties",
	}, errs)
}

func TestValidate_NoDataGroups(t *testing.T) {
	t.Parallel()

	doc := `<experiment>
    <experimentType>ignition_delay</experimentType>
    <apparatus><kind>shock_tube</kind></apparatus>
    <commonProperties/>
</experiment>`

	ok, errs := record.Validate([]byte(doc))
	require.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "no data groups found", errs[0])
}

func TestValidate_DataGroupFoundAtAnyDepth(t *testing.T) {
	t.Parallel()

	doc := `<experiment>
    <experimentType>species_profile</experimentType>
    <apparatus><kind>JSR</kind></apparatus>
    <commonProperties/>
    <wrapper>
        <dataGroup id="dg1"/>
    </wrapper>
</experiment>`

	ok, errs := record.Validate([]byte(doc))
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_MalformedXMLReportsSingleError(t *testing.T) {
	t.Parallel()

	ok, errs := record.Validate([]byte(`<experiment><unclosed>`))
	require.False(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "XML parse error")
}

func TestValidate_EmptyInput(t *testing.T) {
	t.Parallel()

	ok, errs := record.Validate(nil)
	require.False(t, ok)
	require.Len(t, errs, 1)
}
