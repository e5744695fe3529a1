package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/TM9657/flowdoc/model"
	"github.com/TM9657/flowdoc/utils"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresStorage implements Storage on top of PostgreSQL.
type PostgresStorage struct {
	db *sql.DB
}

var _ Storage = (*PostgresStorage)(nil)

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, utils.Errorf("postgres unreachable: %w", err)
	}
	sqlStmt := `
CREATE TABLE IF NOT EXISTS documents (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	flow_name TEXT,
	nodes JSONB NOT NULL DEFAULT '[]',
	created_at BIGINT NOT NULL,
	updated_at BIGINT
);
CREATE INDEX IF NOT EXISTS idx_documents_flow ON documents(flow_name);
`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStorage{db: db}, nil
}

func (s *PostgresStorage) SaveDocument(ctx context.Context, doc *model.Document) error {
	nodes, err := json.Marshal(doc.Nodes)
	if err != nil {
		return utils.Errorf("failed to marshal document nodes: %w", err)
	}
	var updatedAt any
	if doc.UpdatedAt != nil {
		updatedAt = doc.UpdatedAt.Unix()
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO documents (id, name, flow_name, nodes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT(id) DO UPDATE SET name=excluded.name, flow_name=excluded.flow_name, nodes=excluded.nodes, created_at=excluded.created_at, updated_at=excluded.updated_at
`, doc.ID.String(), doc.Name, doc.FlowName, nodes, doc.CreatedAt.Unix(), updatedAt)
	return err
}

func (s *PostgresStorage) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, flow_name, nodes, created_at, updated_at FROM documents WHERE id=$1`, id.String())
	return scanDocument(row)
}

func (s *PostgresStorage) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	return s.queryDocuments(ctx, `SELECT id, name, flow_name, nodes, created_at, updated_at FROM documents ORDER BY created_at DESC`)
}

func (s *PostgresStorage) ListDocumentsByFlow(ctx context.Context, flowName string) ([]*model.Document, error) {
	return s.queryDocuments(ctx, `SELECT id, name, flow_name, nodes, created_at, updated_at FROM documents WHERE flow_name=$1 ORDER BY created_at DESC`, flowName)
}

func (s *PostgresStorage) queryDocuments(ctx context.Context, query string, args ...any) ([]*model.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PostgresStorage) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id=$1`, id.String())
	return err
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
