package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads from r and returns the raw records.
	Parse(r io.Reader) ([]Record, error)
	// Serialize converts records to bytes.
	Serialize(records []Record) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers, keyed by file
// extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// Record is the on-disk shape of an entry. ID and CreatedDate are loosely
// typed so fixtures can write `id: 1` or `id: "1"`, and dates either as epoch
// milliseconds or RFC 3339 text.
type Record struct {
	ID          any    `json:"id" yaml:"id"`
	CreatedDate any    `json:"createdDate,omitempty" yaml:"createdDate,omitempty"`
	EmotionID   int    `json:"emotionId" yaml:"emotionId"`
	Content     string `json:"content" yaml:"content"`
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON seed files.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Parse(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []Record
	decoder := json.NewDecoder(bytes.NewReader(data))
	// Keep large ids and timestamps exact.
	decoder.UseNumber()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return records, nil
}

func (s *JSONSerializer) Serialize(records []Record) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML seed files.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return records, nil
}

func (s *YAMLSerializer) Serialize(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(records); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
