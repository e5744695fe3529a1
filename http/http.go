// Package http exposes the document service over a plain net/http API.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TM9657/flowdoc/config"
	"github.com/TM9657/flowdoc/dsl"
	"github.com/TM9657/flowdoc/event"
	"github.com/TM9657/flowdoc/graph"
	"github.com/TM9657/flowdoc/model"
	"github.com/TM9657/flowdoc/render"
	"github.com/TM9657/flowdoc/storage"
	"github.com/TM9657/flowdoc/telemetry"
	"github.com/TM9657/flowdoc/templater"
	"github.com/TM9657/flowdoc/utils"
	"github.com/google/uuid"
)

// Server wires storage, events, and rendering behind HTTP handlers.
type Server struct {
	store storage.Storage
	bus   event.EventBus
	tmpl  *templater.Templater
	cfg   *config.Config
}

// NewServer builds a Server from config, initializing the storage backend
// and event bus it names.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var store storage.Storage
	var err error
	switch strings.ToLower(cfg.Storage.Driver) {
	case "", "memory":
		store = storage.NewMemoryStorage()
	case "sqlite":
		store, err = storage.NewSqliteStorage(cfg.Storage.DSN)
	case "postgres":
		store, err = storage.NewPostgresStorage(cfg.Storage.DSN)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	bus, err := event.NewEventBusFromConfig(&cfg.Event)
	if err != nil {
		return nil, err
	}
	tmpl, err := templater.NewTemplater()
	if err != nil {
		return nil, err
	}
	return &Server{store: store, bus: bus, tmpl: tmpl, cfg: cfg}, nil
}

// NewServerWith builds a Server from preconstructed dependencies. Used by tests.
func NewServerWith(store storage.Storage, bus event.EventBus, cfg *config.Config) (*Server, error) {
	tmpl, err := templater.NewTemplater()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{store: store, bus: bus, tmpl: tmpl, cfg: cfg}, nil
}

// Handler returns the routed HTTP handler with telemetry middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/documents", telemetry.WrapHandler("documents", http.HandlerFunc(s.documentsHandler)))
	mux.Handle("/documents/", telemetry.WrapHandler("document", http.HandlerFunc(s.documentHandler)))
	mux.Handle("/validate", telemetry.WrapHandler("validate", http.HandlerFunc(s.validateHandler)))
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteHTTPJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	mux.Handle("/metrics", telemetry.MetricsHandler())
	return mux
}

// StartServer loads config and serves the document API on addr.
func StartServer(addr string) error {
	cfg, err := config.LoadConfigOrDefault(config.DefaultConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	srv, err := NewServer(cfg)
	if err != nil {
		return err
	}
	telemetry.Init(cfg)
	utils.Info("flowdoc API listening on %s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

// GET /documents (list, optional ?flow= filter)
// POST /documents (save)
func (s *Server) documentsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listDocuments(w, r)
	case http.MethodPost:
		s.saveDocument(w, r)
	default:
		utils.WriteHTTPError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	var docs []*model.Document
	var err error
	if flow := r.URL.Query().Get("flow"); flow != "" {
		docs, err = s.store.ListDocumentsByFlow(r.Context(), flow)
	} else {
		docs, err = s.store.ListDocuments(r.Context())
	}
	if err != nil {
		utils.WriteHTTPError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if docs == nil {
		docs = []*model.Document{}
	}
	utils.WriteHTTPJSON(w, http.StatusOK, docs)
}

func (s *Server) saveDocument(w http.ResponseWriter, r *http.Request) {
	var doc model.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		utils.WriteHTTPError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dsl.Validate(&doc); err != nil {
		utils.WriteHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
		doc.CreatedAt = time.Now()
	} else {
		now := time.Now()
		doc.UpdatedAt = &now
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = now
		}
	}
	if err := s.store.SaveDocument(r.Context(), &doc); err != nil {
		utils.WriteHTTPError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.bus.Publish(event.TopicDocumentSaved, map[string]any{
		"id":        doc.ID.String(),
		"flow_name": doc.FlowName,
	}); err != nil {
		utils.Warn("publish %s failed: %v", event.TopicDocumentSaved, err)
	}
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"id": doc.ID.String()})
}

// documentHandler dispatches /documents/{id} and its subresources.
func (s *Server) documentHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/documents/")
	idStr, sub, _ := strings.Cut(rest, "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteHTTPError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	if sub == "" {
		switch r.Method {
		case http.MethodGet:
			s.getDocument(w, r, id)
		case http.MethodDelete:
			s.deleteDocument(w, r, id)
		default:
			utils.WriteHTTPError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		utils.WriteHTTPError(w, http.StatusNotFound, "document not found")
		return
	}
	switch sub {
	case "html":
		s.renderHTML(w, r, doc)
	case "text":
		s.renderText(w, doc)
	case "copy":
		s.copyBlock(w, r, doc)
	case "references":
		s.references(w, r, doc)
	default:
		utils.WriteHTTPError(w, http.StatusNotFound, "unknown subresource: "+sub)
	}
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		utils.WriteHTTPError(w, http.StatusNotFound, "document not found")
		return
	}
	utils.WriteHTTPJSON(w, http.StatusOK, doc)
}

func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := s.store.DeleteDocument(r.Context(), id); err != nil {
		utils.WriteHTTPError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.bus.Publish(event.TopicDocumentDeleted, map[string]any{"id": id.String()}); err != nil {
		utils.Warn("publish %s failed: %v", event.TopicDocumentDeleted, err)
	}
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /documents/{id}/html[?page=1]
func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, doc *model.Document) {
	renderer := render.NewHTMLRenderer(nil)
	renderer.Attrs = s.cfg.Render.Attrs
	body, err := renderer.Render(doc)
	if err != nil {
		utils.WriteHTTPError(w, http.StatusInternalServerError, err.Error())
		return
	}
	telemetry.CountRender("html")
	out := body
	if r.URL.Query().Get("page") != "" {
		title := s.cfg.Render.Title
		if title == "" {
			title = doc.Name
		}
		out, err = s.tmpl.RenderPage(title, body)
		if err != nil {
			utils.WriteHTTPError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

// GET /documents/{id}/text
func (s *Server) renderText(w http.ResponseWriter, doc *model.Document) {
	telemetry.CountRender("text")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(model.PlainText(doc)))
}

// POST /documents/{id}/copy { "block": <index> }
// Re-extracts the code block's current text on every call, so repeated copies
// after edits always return fresh content.
func (s *Server) copyBlock(w http.ResponseWriter, r *http.Request, doc *model.Document) {
	if r.Method != http.MethodPost {
		utils.WriteHTTPError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Block int `json:"block"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteHTTPError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var blocks []*model.Node
	for _, n := range doc.Nodes {
		model.Walk(n, func(node *model.Node) bool {
			if node.Type == model.TypeCodeBlock {
				blocks = append(blocks, node)
			}
			return true
		})
	}
	if req.Block < 0 || req.Block >= len(blocks) {
		utils.WriteHTTPError(w, http.StatusBadRequest, fmt.Sprintf("code block index %d out of range", req.Block))
		return
	}
	text := model.CodeBlockText(blocks[req.Block])
	telemetry.CountCopy()
	if err := s.bus.Publish(event.TopicDocumentCopied, map[string]any{
		"id":    doc.ID.String(),
		"block": req.Block,
	}); err != nil {
		utils.Warn("publish %s failed: %v", event.TopicDocumentCopied, err)
	}
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"text": text, "state": "copied"})
}

// GET /documents/{id}/references[?format=mermaid]
func (s *Server) references(w http.ResponseWriter, r *http.Request, doc *model.Document) {
	if r.URL.Query().Get("format") == "mermaid" {
		out, err := graph.ExportMermaid(doc)
		if err != nil {
			utils.WriteHTTPError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(out))
		return
	}
	refs := model.References(doc)
	out := make([]map[string]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, map[string]string{
			"nodeId":   ref.NodeID,
			"nodeName": ref.NodeName,
		})
	}
	utils.WriteHTTPJSON(w, http.StatusOK, out)
}

// POST /validate with a raw document body (JSON or YAML)
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteHTTPError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteHTTPError(w, http.StatusBadRequest, "unreadable request body")
		return
	}
	doc, err := dsl.ParseFromString(string(body))
	if err != nil {
		utils.WriteHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := dsl.Validate(doc); err != nil {
		utils.WriteHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}
	warnings := dsl.Lint(doc)
	msgs := make([]string, 0, len(warnings))
	for _, warn := range warnings {
		msgs = append(msgs, warn.Error())
	}
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"valid": true, "warnings": msgs})
}
