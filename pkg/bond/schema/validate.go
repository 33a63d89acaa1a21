// Package schema validates action request bodies against JSON Schema
// documents keyed by the action's identity.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator validates action bodies against per-action JSON Schemas.
// Compiled schemas are cached by action name.
type Validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator creates a new Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{
		cache: make(map[string]*jsonschema.Schema),
	}
}

// ValidateAction validates the body of a device action request against
// the schema for that action. Returns nil if valid, or an error
// describing the validation failures.
func (v *Validator) ValidateAction(action string, body map[string]any) error {
	compiled, err := v.compile(action)
	if err != nil {
		return fmt.Errorf("failed to compile schema for %s: %w", action, err)
	}

	return compiled.Validate(body)
}

func (v *Validator) compile(action string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	if s, ok := v.cache[action]; ok {
		v.mu.RUnlock()
		return s, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	// Double-check after acquiring write lock
	if s, ok := v.cache[action]; ok {
		return s, nil
	}

	var schemaMap any
	if err := json.Unmarshal(ActionArgumentSchema(action), &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaMap); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}

	v.cache[action] = compiled
	return compiled, nil
}
