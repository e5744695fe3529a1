package dsl

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/TM9657/flowdoc/docs"
	"github.com/TM9657/flowdoc/model"
)

// Parse reads a document file from the given path and unmarshals it.
// JSON and YAML are both accepted; JSON is detected by extension.
func Parse(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".json") {
		return ParseJSON(data)
	}
	return ParseFromString(string(data))
}

// ParseFromString unmarshals a YAML string into a Document struct.
func ParseFromString(yamlStr string) (*model.Document, error) {
	var doc model.Document
	if err := yaml.Unmarshal([]byte(yamlStr), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseJSON unmarshals JSON bytes (the editor substrate's wire format)
// into a Document struct.
func ParseJSON(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate runs JSON-Schema validation against the embedded document schema.
func Validate(doc *model.Document) error {
	// Marshal the document to JSON for validation
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	// Compile the embedded schema
	schema, err := jsonschema.CompileString("document.schema.json", docs.DocumentSchema)
	if err != nil {
		return err
	}
	// Unmarshal JSON into a generic interface for validation
	var v any
	if err := json.Unmarshal(jsonBytes, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}

// Load reads, parses, and validates a document file in one step.
func Load(path string) (*model.Document, error) {
	doc, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
