package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionType_IsStructural(t *testing.T) {
	for _, st := range StructuralTypes {
		assert.True(t, st.IsStructural(), st.String())
	}
	assert.False(t, SectionSkills.IsStructural())
	assert.False(t, SectionType("summary").IsStructural())
}

func TestFitReport_Section(t *testing.T) {
	var nilReport *FitReport
	assert.Nil(t, nilReport.Section(SectionJob))

	report := &FitReport{Sections: []SectionFit{{Type: SectionProject, Target: 4}}}
	require.NotNil(t, report.Section(SectionProject))
	assert.Equal(t, 4, report.Section(SectionProject).Target)
	assert.Nil(t, report.Section(SectionJob))
}

func TestFitReport_JSONOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(FitReport{Fits: true, Pages: 1, Targets: []int{6}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"fits":true,"pages":1,"shrink_attempts":0,"targets":[6],"sections":null}`, string(data))
}
