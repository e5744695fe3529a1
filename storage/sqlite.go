package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/TM9657/flowdoc/model"
	"github.com/TM9657/flowdoc/utils"
	"github.com/google/uuid"
)

// SqliteStorage implements Storage using SQLite as the backend.
type SqliteStorage struct {
	db *sql.DB
}

var _ Storage = (*SqliteStorage)(nil)

func NewSqliteStorage(dsn string) (*SqliteStorage, error) {
	// Only create parent directories if not using in-memory SQLite (":memory:").
	if dsn != ":memory:" && dsn != "" {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, utils.Errorf("failed to create db directory %q: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Create tables if not exist
	sqlStmt := `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	name TEXT,
	flow_name TEXT,
	nodes JSON,
	created_at INTEGER,
	updated_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_documents_flow ON documents(flow_name);
`
	_, err = db.Exec(sqlStmt)
	if err != nil {
		return nil, err
	}
	return &SqliteStorage{db: db}, nil
}

func (s *SqliteStorage) SaveDocument(ctx context.Context, doc *model.Document) error {
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
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name=excluded.name, flow_name=excluded.flow_name, nodes=excluded.nodes, created_at=excluded.created_at, updated_at=excluded.updated_at
`, doc.ID.String(), doc.Name, doc.FlowName, nodes, doc.CreatedAt.Unix(), updatedAt)
	return err
}

func (s *SqliteStorage) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, flow_name, nodes, created_at, updated_at FROM documents WHERE id=?`, id.String())
	return scanDocument(row)
}

func (s *SqliteStorage) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	return s.queryDocuments(ctx, `SELECT id, name, flow_name, nodes, created_at, updated_at FROM documents ORDER BY created_at DESC`)
}

func (s *SqliteStorage) ListDocumentsByFlow(ctx context.Context, flowName string) ([]*model.Document, error) {
	return s.queryDocuments(ctx, `SELECT id, name, flow_name, nodes, created_at, updated_at FROM documents WHERE flow_name=? ORDER BY created_at DESC`, flowName)
}

func (s *SqliteStorage) queryDocuments(ctx context.Context, query string, args ...any) ([]*model.Document, error) {
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var doc model.Document
	var idStr string
	var nodes []byte
	var createdAt int64
	var updatedAt sql.NullInt64
	if err := row.Scan(&idStr, &doc.Name, &doc.FlowName, &nodes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, utils.Errorf("invalid document id %q: %w", idStr, err)
	}
	doc.ID = id
	if err := json.Unmarshal(nodes, &doc.Nodes); err != nil {
		return nil, err
	}
	doc.CreatedAt = time.Unix(createdAt, 0)
	if updatedAt.Valid {
		t := time.Unix(updatedAt.Int64, 0)
		doc.UpdatedAt = &t
	}
	return &doc, nil
}

func (s *SqliteStorage) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id=?`, id.String())
	return err
}

// Close closes the underlying SQL database connection.
func (s *SqliteStorage) Close() error {
	return s.db.Close()
}
