package taskstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchemaJSON describes the persisted task list.
// Unknown keys are rejected so a rewrite never drops data it did not understand.
const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["description"],
    "properties": {
      "description": {"type": "string"},
      "done": {"type": "boolean"},
      "created": {"type": "string"}
    },
    "additionalProperties": false
  }
}`

var documentSchema = jsonschema.MustCompileString("tasks.schema.json", documentSchemaJSON)

// decode parses and validates a persisted document.
func decode(data []byte) ([]Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := documentSchema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// encode renders tasks with 4-space indentation and a trailing newline.
func encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// schemaError reduces a schema validation failure to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	path := jsonPointerToPath(ve.InstanceLocation)
	if path == "" {
		path = "document"
	}
	return fmt.Errorf("%s: %s", path, ve.Message)
}

// jsonPointerToPath turns "/0/done" into "[0].done".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
