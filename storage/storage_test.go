package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/TM9657/flowdoc/model"
	"github.com/google/uuid"
)

func testDocument(name, flowName string) *model.Document {
	ref, _ := model.NewReferenceNode("fetch_tweet", "Fetch Tweet")
	return &model.Document{
		ID:       uuid.New(),
		Name:     name,
		FlowName: flowName,
		Nodes: []*model.Node{
			model.NewParagraph(model.NewText("See ", ""), ref),
			model.NewCodeBlock("go", model.NewCodeLine(model.NewText("x := 1", ""))),
		},
		CreatedAt: time.Now().Truncate(time.Second),
	}
}

func runStorageContract(t *testing.T, s Storage) {
	ctx := context.Background()
	doc := testDocument("notes", "tweet-summarizer")

	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	got, err := s.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got.ID != doc.ID || got.Name != "notes" || got.FlowName != "tweet-summarizer" {
		t.Errorf("document fields lost in round trip: %+v", got)
	}
	if len(got.Nodes) != 2 || got.Nodes[1].Type != model.TypeCodeBlock {
		t.Errorf("node tree lost in round trip: %+v", got.Nodes)
	}
	if text := model.CodeBlockText(got.Nodes[1]); text != "x := 1" {
		t.Errorf("extracted code text after round trip = %q", text)
	}

	// Upsert keeps a single row per id.
	doc.Name = "notes-v2"
	now := time.Now().Truncate(time.Second)
	doc.UpdatedAt = &now
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument update failed: %v", err)
	}
	got, err = s.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument after update failed: %v", err)
	}
	if got.Name != "notes-v2" || got.UpdatedAt == nil {
		t.Errorf("update not persisted: %+v", got)
	}

	other := testDocument("other", "different-flow")
	if err := s.SaveDocument(ctx, other); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	all, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 documents, got %d", len(all))
	}
	byFlow, err := s.ListDocumentsByFlow(ctx, "tweet-summarizer")
	if err != nil {
		t.Fatalf("ListDocumentsByFlow failed: %v", err)
	}
	if len(byFlow) != 1 || byFlow[0].ID != doc.ID {
		t.Errorf("flow filter wrong: %+v", byFlow)
	}

	if err := s.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if _, err := s.GetDocument(ctx, doc.ID); err == nil {
		t.Error("expected error getting deleted document")
	}
}

func TestMemoryStorage_Contract(t *testing.T) {
	runStorageContract(t, NewMemoryStorage())
}

func TestMemoryStorage_GetMissing(t *testing.T) {
	m := NewMemoryStorage()
	if _, err := m.GetDocument(context.Background(), uuid.New()); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}
