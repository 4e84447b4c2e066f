package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMissingBody is returned when a request that needs a body has none.
var ErrMissingBody = errors.New("request body is required")

const (
	todoCreateSchemaURL = "todo-create.json"
	todoCreateSchema    = `{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "complete": {"type": "boolean"}
  },
  "required": ["title"],
  "additionalProperties": false
}`

	todoPatchSchemaURL = "todo-patch.json"
	todoPatchSchema    = `{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "complete": {"type": "boolean"}
  },
  "minProperties": 1,
  "additionalProperties": false
}`
)

var (
	createSchema = jsonschema.MustCompileString(todoCreateSchemaURL, todoCreateSchema)
	patchSchema  = jsonschema.MustCompileString(todoPatchSchemaURL, todoPatchSchema)
)

// ParseTodoCreate validates a create request body and decodes it.
func ParseTodoCreate(body []byte) (*APITodo, error) {
	if err := validateBody(createSchema, body); err != nil {
		return nil, err
	}

	apiTodo := &APITodo{}
	if err := json.Unmarshal(body, apiTodo); err != nil {
		return nil, errors.Wrap(err, "decoding todo")
	}

	return apiTodo, nil
}

// ParseTodoPatch validates an update request body and decodes it.
func ParseTodoPatch(body []byte) (*APITodoPatch, error) {
	if err := validateBody(patchSchema, body); err != nil {
		return nil, err
	}

	patch := &APITodoPatch{}
	if err := json.Unmarshal(body, patch); err != nil {
		return nil, errors.Wrap(err, "decoding todo update")
	}

	return patch, nil
}

func validateBody(schema *jsonschema.Schema, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrMissingBody
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return errors.Wrap(err, "malformed JSON body")
	}

	if err := schema.Validate(doc); err != nil {
		return schemaError(err)
	}

	return nil
}

// schemaError reduces a schema validation failure to its first leaf cause.
func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Wrap(err, "validating body")
	}

	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}

	location := strings.TrimPrefix(ve.InstanceLocation, "/")
	if location == "" {
		return errors.Errorf("invalid body: %s", ve.Message)
	}

	return errors.Errorf("invalid field '%s': %s", location, ve.Message)
}
