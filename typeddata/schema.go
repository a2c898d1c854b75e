package typeddata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/space.json
var spaceSchemaJSON string

var spaceSchema = jsonschema.MustCompileString("space.json", spaceSchemaJSON)

// checkSettings validates space settings before they are signed. The hub rejects settings
// that do not match the schema.
func checkSettings(settings string) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(settings)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if err := spaceSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: settings: %w", ErrInvalidPayload, err)
	}
	return nil
}
