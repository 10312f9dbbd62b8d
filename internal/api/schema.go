package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizSchemaURL = "schema://quiz-payload.json"

// quizSchema describes GET /api/quiz/{id}. A missing or null questions list
// is an empty quiz. The cross-field rule that correct indexes into options
// is checked by the quiz gateway.
var quizSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"roadmap_item_id": map[string]any{"type": "integer"},
		"questions": map[string]any{
			"type": []any{"array", "null"},
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "options", "correct"},
				"properties": map[string]any{
					"question": map[string]any{"type": "string"},
					"options": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string"},
					},
					"correct": map[string]any{"type": "integer", "minimum": 0},
				},
			},
		},
	},
}

var (
	quizSchemaOnce     sync.Once
	quizSchemaCompiled *jsonschema.Schema
	quizSchemaErr      error
)

func compiledQuizSchema() (*jsonschema.Schema, error) {
	quizSchemaOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go literals.
		defBytes, err := json.Marshal(quizSchema)
		if err != nil {
			quizSchemaErr = fmt.Errorf("marshal quiz schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			quizSchemaErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(quizSchemaURL, def); err != nil {
			quizSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		quizSchemaCompiled, quizSchemaErr = c.Compile(quizSchemaURL)
	})
	return quizSchemaCompiled, quizSchemaErr
}

// validateQuizPayload checks raw against the quiz schema.
func validateQuizPayload(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledQuizSchema()
	if err != nil {
		return fmt.Errorf("compile quiz schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
