package convert

import (
	"strings"
	"testing"
)

const sampleYAML = `name: run-notes
flow_name: tweet-summarizer
nodes:
  - type: paragraph
    children:
      - type: text
        text: hello
`

func TestYAMLToJSON(t *testing.T) {
	out, err := YAMLToJSON([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("YAMLToJSON failed: %v", err)
	}
	if !strings.Contains(out, `"name": "run-notes"`) {
		t.Errorf("missing name field: %s", out)
	}
	if !strings.Contains(out, `"type": "paragraph"`) {
		t.Errorf("missing node type: %s", out)
	}
}

func TestJSONToYAML(t *testing.T) {
	jsonIn := `{"name":"run-notes","nodes":[{"type":"text","text":"hi"}]}`
	out, err := JSONToYAML([]byte(jsonIn))
	if err != nil {
		t.Fatalf("JSONToYAML failed: %v", err)
	}
	if !strings.Contains(out, "name: run-notes") {
		t.Errorf("missing name field: %s", out)
	}
	if !strings.Contains(out, "type: text") {
		t.Errorf("missing node type: %s", out)
	}
}

func TestRoundTrip(t *testing.T) {
	jsonStr, err := YAMLToJSON([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("YAMLToJSON failed: %v", err)
	}
	yamlBack, err := JSONToYAML([]byte(jsonStr))
	if err != nil {
		t.Fatalf("JSONToYAML failed: %v", err)
	}
	if strings.TrimSpace(yamlBack) == "" {
		t.Fatal("round-tripped YAML is empty")
	}
	if !strings.Contains(yamlBack, "tweet-summarizer") {
		t.Errorf("field lost in round trip: %s", yamlBack)
	}
}

func TestYAMLToJSON_Invalid(t *testing.T) {
	if _, err := YAMLToJSON([]byte("a: [unclosed")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestJSONToYAML_Invalid(t *testing.T) {
	if _, err := JSONToYAML([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
