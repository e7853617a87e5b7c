// internal/categories/symptomreporting/payload.go
package symptomreporting

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"salamatbot/internal/models"
)

// PayloadKind tags the interpretation of one raw model completion.
type PayloadKind string

const (
	// PayloadQuestion continues the interview with a follow-up question.
	PayloadQuestion PayloadKind = "question"
	// PayloadClassification terminates the interview with a triage category.
	PayloadClassification PayloadKind = "classification"
	// PayloadPlain means the completion was not a valid control payload and
	// is relayed to the user verbatim as a question turn.
	PayloadPlain PayloadKind = "plain"
)

// controlPayloadSchema accepts the two control shapes the interview prompt
// demands. Anything else, including a classification with a category outside
// the closed five-value set, fails validation and is relayed as plain text.
const controlPayloadSchema = `{
  "type": "object",
  "required": ["type"],
  "oneOf": [
    {
      "properties": {
        "type": {"const": "question"},
        "message": {"type": "string"},
        "options": {"type": "array", "items": {"type": "string"}, "maxItems": 6}
      },
      "required": ["type", "message"]
    },
    {
      "properties": {
        "type": {"const": "classification"},
        "category": {"enum": ["EMERGENCY", "URGENT", "SEMI_URGENT", "NON_URGENT", "SELF_CARE"]}
      },
      "required": ["type", "category"]
    }
  ]
}`

var controlSchemaLoader = gojsonschema.NewStringLoader(controlPayloadSchema)

// ModelPayload is one parsed model completion.
type ModelPayload struct {
	Kind     PayloadKind
	Message  string
	Options  []string
	Category models.TriageCategory
	Raw      string
}

type rawControl struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

// ParseModelPayload interprets a raw completion. It never fails: completions
// that are not valid control payloads come back as PayloadPlain carrying the
// original text.
func ParseModelPayload(content string) ModelPayload {
	trimmed := strings.TrimSpace(content)
	plain := ModelPayload{Kind: PayloadPlain, Message: trimmed, Raw: trimmed}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return plain
	}

	result, err := gojsonschema.Validate(controlSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil || !result.Valid() {
		return plain
	}

	var control rawControl
	if err := json.Unmarshal([]byte(trimmed), &control); err != nil {
		return plain
	}

	switch control.Type {
	case "question":
		return ModelPayload{
			Kind:    PayloadQuestion,
			Message: control.Message,
			Options: control.Options,
			Raw:     trimmed,
		}
	case "classification":
		category, ok := models.ParseTriageCategory(control.Category)
		if !ok {
			return plain
		}
		return ModelPayload{Kind: PayloadClassification, Category: category, Raw: trimmed}
	default:
		return plain
	}
}
