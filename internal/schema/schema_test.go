package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePreset_Migrated(t *testing.T) {
	data := []byte(`{
		"mapping": {
			"1,30,1": ["a", "keyboard"],
			"2,8,-1": ["wheel(down, 1)", "mouse"]
		}
	}`)
	assert.NoError(t, ValidatePreset(data))
}

func TestValidatePreset_EmptyMapping(t *testing.T) {
	assert.NoError(t, ValidatePreset([]byte(`{"mapping": {}}`)))
	assert.NoError(t, ValidatePreset([]byte(`{"other": "field"}`)))
}

func TestValidatePreset_LegacyShapesRejected(t *testing.T) {
	cases := map[string]string{
		"bare symbol value": `{"mapping": {"1,30,1": "a"}}`,
		"two-component key": `{"mapping": {"1,30": ["a", "keyboard"]}}`,
		"one-element value": `{"mapping": {"1,30,1": ["a"]}}`,
		"non-string target": `{"mapping": {"1,30,1": ["a", 5]}}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidatePreset([]byte(data)))
		})
	}
}

func TestValidatePreset_MalformedJSON(t *testing.T) {
	assert.Error(t, ValidatePreset([]byte(`{"mapping": `)))
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig([]byte(`{"version": "1.6.0", "autoload": {}}`)))
	assert.NoError(t, ValidateConfig([]byte(`{"autoload": {}}`)), "version is optional")
	assert.Error(t, ValidateConfig([]byte(`{"version": "so-new"}`)))
	assert.Error(t, ValidateConfig([]byte(`{"version": 16}`)))
}
