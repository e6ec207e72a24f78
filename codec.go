package tether

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// TextCodec decodes raw watcher data into a possibly absent text value.
// A nil result is an absent value; the ValueSource delivers it as "".
type TextCodec interface {
	// Decode converts data into a text value.
	Decode(data []byte) (*string, error)

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// RawCodec treats data as the text itself, without a trailing line break.
// It never yields an absent value.
type RawCodec struct{}

// Decode returns data as text with trailing CR/LF removed.
func (RawCodec) Decode(data []byte) (*string, error) {
	text := strings.TrimRight(string(data), "\r\n")
	return &text, nil
}

// ContentType returns the plain text MIME type.
func (RawCodec) ContentType() string {
	return "text/plain"
}

// Ensure RawCodec implements TextCodec.
var _ TextCodec = RawCodec{}

// JSONCodec decodes a JSON string. JSON null is an absent value.
type JSONCodec struct{}

// Decode parses data as a JSON string or null.
func (JSONCodec) Decode(data []byte) (*string, error) {
	var text *string
	if err := json.Unmarshal(data, &text); err != nil {
		return nil, err
	}
	return text, nil
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements TextCodec.
var _ TextCodec = JSONCodec{}

// YAMLCodec decodes a YAML scalar. An empty document or null (~) is an
// absent value.
type YAMLCodec struct{}

// Decode parses data as a YAML scalar.
func (YAMLCodec) Decode(data []byte) (*string, error) {
	var text *string
	if err := yaml.Unmarshal(data, &text); err != nil {
		return nil, err
	}
	return text, nil
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements TextCodec.
var _ TextCodec = YAMLCodec{}
