package schema

import "encoding/json"

// Per-action-family schemas for the {"argument": n} body of a
// PUT devices/{id}/actions/{action} request. The valid range of the
// argument is keyed by which action carries it.
var (
	speedArgument = json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"argument": {"type": "integer", "minimum": 0, "maximum": 8}
		},
		"required": ["argument"],
		"additionalProperties": false
	}`)

	percentageArgument = json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"argument": {"type": "integer", "minimum": 0, "maximum": 100}
		},
		"required": ["argument"],
		"additionalProperties": false
	}`)

	directionArgument = json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"argument": {"type": "integer", "enum": [-1, 1]}
		},
		"required": ["argument"],
		"additionalProperties": false
	}`)

	noArgument = json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"argument": {"type": "integer"}
		},
		"additionalProperties": false
	}`)
)

// ActionArgumentSchema returns the JSON Schema for the body of the
// named action. Unrecognized actions get the permissive no-argument
// schema: the bridge itself decides whether it understands them.
func ActionArgumentSchema(action string) json.RawMessage {
	switch action {
	case "SetSpeed":
		return speedArgument
	case "SetBrightness", "SetPosition":
		return percentageArgument
	case "SetDirection":
		return directionArgument
	default:
		return noArgument
	}
}
