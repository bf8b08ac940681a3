package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParamsError is reported to clients as JSON-RPC "Invalid params".
type ParamsError struct {
	Message string
}

func (e *ParamsError) Error() string {
	return e.Message
}

// requireParams checks that params is a JSON object carrying every field.
func requireParams(params json.RawMessage, fields ...string) error {
	if len(fields) == 0 {
		if len(params) > 0 && !gjson.ValidBytes(params) {
			return &ParamsError{Message: "'params' must be valid JSON"}
		}
		return nil
	}

	if len(params) == 0 {
		return &ParamsError{Message: fmt.Sprintf("'params' is required with fields: %s", strings.Join(fields, ", "))}
	}

	if !gjson.ValidBytes(params) || !gjson.ParseBytes(params).IsObject() {
		return &ParamsError{Message: "'params' must be a JSON object"}
	}

	for _, field := range fields {
		if !gjson.GetBytes(params, field).Exists() {
			return &ParamsError{Message: fmt.Sprintf("'%s' is required", field)}
		}
	}

	return nil
}

// decodeParams unmarshals params into v. Absent params leave v untouched.
func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return nil
	}

	if err := json.Unmarshal(params, v); err != nil {
		return &ParamsError{Message: fmt.Sprintf("invalid parameters: %v", err)}
	}

	return nil
}
