package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PayloadSchema returns a JSON-Schema (draft 2020-12 subset) for the
// accounting payload, as a generic map. Used locally before export or post;
// the accounting API applies its own validation on top.
func PayloadSchema() map[string]any {
	line := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"Description": map[string]any{"type": "string", "minLength": 1},
			"Quantity":    map[string]any{"type": "number", "minimum": 0},
			"UnitAmount":  map[string]any{"type": "number", "minimum": 0},
			"AccountCode": map[string]any{"type": "string", "pattern": `^\d+$`},
		},
		"required": []string{"Description", "Quantity", "UnitAmount", "AccountCode"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"Type": map[string]any{"type": "string", "enum": []string{payloadType}},
			"Contact": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"Name": map[string]any{"type": "string"},
				},
				"required": []string{"Name"},
			},
			// Date may legitimately carry non-ISO text (the kept-original
			// fallback), so no pattern here.
			"Date":          map[string]any{"type": "string"},
			"DueDate":       map[string]any{"type": "string"},
			"LineItems":     map[string]any{"type": "array", "items": line},
			"InvoiceNumber": map[string]any{"type": "string"},
			"CurrencyCode":  map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
			"Total":         map[string]any{"type": "number", "minimum": 0},
		},
		"required": []string{"Type", "Contact", "Date", "LineItems", "CurrencyCode"},
	}
}

// ValidatePayload validates payload JSON against PayloadSchema.
func ValidatePayload(data []byte) error {
	b, err := json.Marshal(PayloadSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}
