package storage

import (
	"context"

	"github.com/TM9657/flowdoc/model"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Storage interface {
	SaveDocument(ctx context.Context, doc *model.Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error)
	ListDocuments(ctx context.Context) ([]*model.Document, error)
	ListDocumentsByFlow(ctx context.Context, flowName string) ([]*model.Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	Close() error
}
