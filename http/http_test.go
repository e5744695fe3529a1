package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TM9657/flowdoc/event"
	"github.com/TM9657/flowdoc/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServerWith(storage.NewMemoryStorage(), event.NewInProcEventBus(), nil)
	if err != nil {
		t.Fatalf("NewServerWith failed: %v", err)
	}
	return srv
}

const testDocJSON = `{
	"name": "run-notes",
	"flow_name": "tweet-summarizer",
	"nodes": [
		{"type": "paragraph", "children": [
			{"type": "text", "text": "See "},
			{"type": "focus_node", "nodeId": "fetch_tweet", "nodeName": "Fetch Tweet", "children": [{"type": "text", "text": ""}]}
		]},
		{"type": "code_block", "language": "go", "children": [
			{"type": "code_line", "children": [{"type": "text", "text": "foo"}]},
			{"type": "code_line", "children": [{"type": "text", "text": "bar"}, {"type": "text", "text": "baz"}]}
		]}
	]
}`

func saveTestDocument(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest("POST", "/documents", strings.NewReader(testDocJSON))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("save failed with %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid save response: %v", err)
	}
	if resp["id"] == "" {
		t.Fatal("save response missing id")
	}
	return resp["id"]
}

func TestSaveAndGetDocument(t *testing.T) {
	h := newTestServer(t).Handler()
	id := saveTestDocument(t, h)

	req := httptest.NewRequest("GET", "/documents/"+id, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed with %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"fetch_tweet"`) {
		t.Errorf("document lost reference node: %s", rec.Body.String())
	}
}

func TestSaveDocument_RejectsInvalid(t *testing.T) {
	h := newTestServer(t).Handler()
	// focus_node without nodeId fails schema validation
	body := `{"name":"x","nodes":[{"type":"focus_node","children":[{"type":"text","text":""}]}]}`
	req := httptest.NewRequest("POST", "/documents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid document, got %d", rec.Code)
	}
}

func TestListDocuments_FlowFilter(t *testing.T) {
	h := newTestServer(t).Handler()
	saveTestDocument(t, h)

	req := httptest.NewRequest("GET", "/documents?flow=tweet-summarizer", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed with %d", rec.Code)
	}
	var docs []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("expected 1 document, got %d", len(docs))
	}

	req = httptest.NewRequest("GET", "/documents?flow=other", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty list, got %s", body)
	}
}

func TestRenderHTMLEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	id := saveTestDocument(t, h)

	req := httptest.NewRequest("GET", "/documents/"+id+"/html", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("html render failed with %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-node-id="fetch_tweet"`) {
		t.Errorf("reference attributes missing: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Errorf("bare render should not include page shell: %s", body)
	}

	req = httptest.NewRequest("GET", "/documents/"+id+"/html?page=1", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "<title>run-notes</title>") {
		t.Errorf("page render missing title: %s", rec.Body.String())
	}
}

func TestRenderTextEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	id := saveTestDocument(t, h)

	req := httptest.NewRequest("GET", "/documents/"+id+"/text", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("text render failed with %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "foo\nbarbaz") {
		t.Errorf("unexpected extraction: %q", rec.Body.String())
	}
}

func TestCopyEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	id := saveTestDocument(t, h)

	req := httptest.NewRequest("POST", "/documents/"+id+"/copy", strings.NewReader(`{"block":0}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("copy failed with %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid copy response: %v", err)
	}
	if resp["text"] != "foo\nbarbaz" || resp["state"] != "copied" {
		t.Errorf("unexpected copy response: %v", resp)
	}
}

func TestCopyEndpoint_IndexOutOfRange(t *testing.T) {
	h := newTestServer(t).Handler()
	id := saveTestDocument(t, h)

	req := httptest.NewRequest("POST", "/documents/"+id+"/copy", strings.NewReader(`{"block":5}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range block, got %d", rec.Code)
	}
}

func TestReferencesEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	id := saveTestDocument(t, h)

	req := httptest.NewRequest("GET", "/documents/"+id+"/references", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("references failed with %d", rec.Code)
	}
	var refs []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &refs); err != nil {
		t.Fatalf("invalid references response: %v", err)
	}
	if len(refs) != 1 || refs[0]["nodeId"] != "fetch_tweet" || refs[0]["nodeName"] != "Fetch Tweet" {
		t.Errorf("unexpected references: %v", refs)
	}

	req = httptest.NewRequest("GET", "/documents/"+id+"/references?format=mermaid", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "fetch_tweet") {
		t.Errorf("mermaid export missing node: %s", rec.Body.String())
	}
}

func TestDeleteDocument(t *testing.T) {
	h := newTestServer(t).Handler()
	id := saveTestDocument(t, h)

	req := httptest.NewRequest("DELETE", "/documents/"+id, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed with %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/documents/"+id, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestGetDocument_InvalidID(t *testing.T) {
	h := newTestServer(t).Handler()
	req := httptest.NewRequest("GET", "/documents/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid id, got %d", rec.Code)
	}
}

func TestValidateEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	yamlDoc := "name: notes\nnodes:\n  - type: paragraph\n    children:\n      - type: text\n        text: hi\n"
	req := httptest.NewRequest("POST", "/validate", strings.NewReader(yamlDoc))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("validate failed with %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"valid":true`) {
		t.Errorf("unexpected validate response: %s", rec.Body.String())
	}

	req = httptest.NewRequest("POST", "/validate", strings.NewReader("nodes: []\n"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for document without name, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t).Handler()
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz returned %d", rec.Code)
	}
}
