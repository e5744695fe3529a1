// Package convert translates documents between their YAML authoring format
// and the editor's JSON wire format.
package convert

import (
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLToJSON converts a YAML document to pretty-printed JSON suitable for the
// editor wire format.
func YAMLToJSON(in []byte) (string, error) {
	var data any
	if err := yaml.Unmarshal(in, &data); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

// JSONToYAML converts editor JSON back to the YAML authoring format, using the
// same indentation rules as the rest of the codebase.
func JSONToYAML(in []byte) (string, error) {
	var buf bytes.Buffer
	if err := jsonToYAML(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// jsonToYAML converts JSON bytes to YAML and writes to the provided writer.
func jsonToYAML(w io.Writer, jsonData []byte) error {
	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
