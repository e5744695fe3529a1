package storage

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/TM9657/flowdoc/model"
	"github.com/google/uuid"
)

// MemoryStorage implements Storage in-memory (for fallback/dev mode)
type MemoryStorage struct {
	docs map[uuid.UUID]*model.Document
	mu   sync.Mutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		docs: make(map[uuid.UUID]*model.Document),
	}
}

func (m *MemoryStorage) SaveDocument(ctx context.Context, doc *model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return nil
}

func (m *MemoryStorage) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return doc, nil
}

func (m *MemoryStorage) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Document
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStorage) ListDocumentsByFlow(ctx context.Context, flowName string) ([]*model.Document, error) {
	all, err := m.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Document
	for _, doc := range all {
		if doc.FlowName == flowName {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MemoryStorage) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *MemoryStorage) Close() error { return nil }
