package canvas

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resumecanvas/internal/errors"
)

// documentSchema is the JSON Schema every canvas document must satisfy before
// it reaches the linearizer. Geometry fields are required here because a
// missing coordinate is indistinguishable from zero after unmarshaling.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["elements", "sections"],
  "properties": {
    "elements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "x", "y", "width", "height"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"enum": ["", "text", "image"]},
          "content": {"type": "string"},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "width": {"type": "number"},
          "height": {"type": "number"},
          "parentSection": {"type": "string"},
          "atsField": {"type": "string"},
          "semanticTag": {"type": "string"}
        }
      }
    },
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "x", "y", "width", "height"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "width": {"type": "number"},
          "height": {"type": "number"},
          "contentType": {"enum": ["", "text", "list-items", "list-sections"]},
          "direction": {"enum": ["", "vertical", "horizontal"]},
          "parentSection": {"type": "string"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// ValidateJSON checks raw document JSON against the canvas schema and returns
// a model error listing every violation.
func ValidateJSON(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errors.NewModelError(errors.ErrCodeInvalidDocument,
			"Failed to validate document", err)
	}
	if result.Valid() {
		return nil
	}

	var msgs []string
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return errors.NewModelError(errors.ErrCodeInvalidDocument,
		"Document failed schema validation: "+strings.Join(msgs, "; "), nil)
}

// Validate checks structural invariants the schema cannot express: id
// uniqueness within each collection. Ids may collide across collections
// because every lookup is scoped by type.
func (d *Document) Validate() error {
	elementIDs := make(map[string]bool, len(d.Elements))
	for _, el := range d.Elements {
		if el.ID == "" {
			return errors.NewModelError(errors.ErrCodeInvalidDocument,
				"Element with empty id", nil)
		}
		if elementIDs[el.ID] {
			return errors.NewModelError(errors.ErrCodeInvalidDocument,
				"Duplicate element id: "+el.ID, nil)
		}
		elementIDs[el.ID] = true
	}

	sectionIDs := make(map[string]bool, len(d.Sections))
	for _, sec := range d.Sections {
		if sec.ID == "" {
			return errors.NewModelError(errors.ErrCodeInvalidDocument,
				"Section with empty id", nil)
		}
		if sectionIDs[sec.ID] {
			return errors.NewModelError(errors.ErrCodeInvalidDocument,
				"Duplicate section id: "+sec.ID, nil)
		}
		sectionIDs[sec.ID] = true
	}

	return nil
}
