package models

import (
	"encoding/json"
	"errors"
)

// JSON holds a raw JSON document the backend treats as opaque, such as an
// agent's tool configuration.
type JSON json.RawMessage

// MarshalJSON implements json.Marshaler interface.
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("JSON: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// Decode unmarshals the document into v.
func (j JSON) Decode(v any) error {
	if len(j) == 0 {
		return nil
	}
	return json.Unmarshal(j, v)
}

// IsNull reports whether the document is empty or the JSON null.
func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// String returns the JSON as a string.
func (j JSON) String() string {
	return string(j)
}
