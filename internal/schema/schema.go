// Package schema validates configuration files against the current on-disk
// format using CUE.
//
// Validation is advisory: the migration engine never refuses to run over an
// invalid tree (that is what migration is for), but the check command and
// the test suite use these schemas to confirm a migrated tree actually
// conforms to the current format.
package schema

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// presetSchema constrains a fully migrated preset: every mapping key is a
// "type,code,value" triple and every value is a [symbol, target] pair.
const presetSchema = `
{
	mapping?: close({
		[=~"^[0-9]+,[0-9]+,-?[0-9]+$"]: [string, string]
	})
	...
}
`

// configSchema constrains the root config file. Fields beyond version are
// opaque to the migration engine and pass through unconstrained.
const configSchema = `
{
	version?: =~"^[0-9]+\\.[0-9]+\\.[0-9]+$"
	...
}
`

var (
	once         sync.Once
	presetValue  cue.Value
	configValue  cue.Value
	compileError error
)

func compiled() (cue.Value, cue.Value, error) {
	once.Do(func() {
		ctx := cuecontext.New()
		presetValue = ctx.CompileString(presetSchema)
		if err := presetValue.Err(); err != nil {
			compileError = fmt.Errorf("compile preset schema: %w", err)
			return
		}
		configValue = ctx.CompileString(configSchema)
		if err := configValue.Err(); err != nil {
			compileError = fmt.Errorf("compile config schema: %w", err)
		}
	})
	return presetValue, configValue, compileError
}

// ValidatePreset checks a migrated preset document (raw JSON bytes)
// against the preset schema.
func ValidatePreset(data []byte) error {
	schema, _, err := compiled()
	if err != nil {
		return err
	}
	return validate(schema, data)
}

// ValidateConfig checks a config.json document against the config schema.
func ValidateConfig(data []byte) error {
	_, schema, err := compiled()
	if err != nil {
		return err
	}
	return validate(schema, data)
}

func validate(schema cue.Value, data []byte) error {
	ctx := schema.Context()
	doc := ctx.CompileBytes(data)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	unified := schema.Unify(doc)
	if err := unified.Err(); err != nil {
		return err
	}
	return unified.Validate(cue.Concrete(true))
}
