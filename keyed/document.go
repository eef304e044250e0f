package keyed

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON object into a Decoder.
func ParseJSON(data []byte) (*MapDecoder, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing json document: %w", err)
	}

	return NewDecoder(doc)
}

// ParseYAML decodes a YAML mapping into a Decoder.
func ParseYAML(data []byte) (*MapDecoder, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml document: %w", err)
	}

	return NewDecoder(doc)
}

// MarshalJSON renders the encoded document as indented JSON.
func MarshalJSON(e *MapEncoder) ([]byte, error) {
	return json.MarshalIndent(e.Map(), "", "  ")
}

// MarshalYAML renders the encoded document as YAML.
func MarshalYAML(e *MapEncoder) ([]byte, error) {
	return yaml.Marshal(e.Map())
}
