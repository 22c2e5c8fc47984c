package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateString_Bullets(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: `{"bullets": ["Built a cache", "Led a team"]}`},
		{name: "empty list", input: `{"bullets": []}`},
		{name: "missing field", input: `{"items": []}`, wantErr: true},
		{name: "wrong item type", input: `{"bullets": [1, 2]}`, wantErr: true},
		{name: "array root", input: `["Built a cache"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateString(Bullets, tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.NotEmpty(t, validationErr.Errors)
			assert.Contains(t, err.Error(), Bullets)
		})
	}
}

func TestValidateString_SkillCategories(t *testing.T) {
	assert.NoError(t, ValidateString(SkillCategories, `{"Languages": ["Go"], "Tools": []}`))
	assert.Error(t, ValidateString(SkillCategories, `{"Languages": "Go"}`))
}

func TestValidateBytes_MalformedJSON(t *testing.T) {
	err := ValidateBytes(Bullets, []byte(`{"bullets": [`))

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, Bullets, loadErr.Schema)
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	err := ValidateBytes("nope.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "unknown schema")
}
