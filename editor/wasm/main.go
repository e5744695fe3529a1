//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/TM9657/flowdoc/clipboard"
	"github.com/TM9657/flowdoc/dsl"
	"github.com/TM9657/flowdoc/graph"
	"github.com/TM9657/flowdoc/model"
	"github.com/TM9657/flowdoc/render"
)

// Result standardizes all WASM function returns with proper typing
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	State   string `json:"state,omitempty"`
}

func main() {
	// Register flowdoc functions for JavaScript
	js.Global().Set("flowdocParse", js.FuncOf(parseDocument))
	js.Global().Set("flowdocValidate", js.FuncOf(validateDocument))
	js.Global().Set("flowdocRender", js.FuncOf(renderDocument))
	js.Global().Set("flowdocExtractText", js.FuncOf(extractText))
	js.Global().Set("flowdocGraph", js.FuncOf(generateMermaid))
	js.Global().Set("flowdocCopyCodeBlock", js.FuncOf(copyCodeBlock))

	// Keep the WASM module alive
	<-make(chan bool)
}

// handleDocInput provides a common pattern for document input processing.
// Input is the editor's JSON wire format, with YAML as a fallback.
func handleDocInput(args []js.Value, processor func(*model.Document) (any, error)) any {
	if len(args) == 0 {
		return resultToJS(Result{Success: false, Error: "No arguments provided"})
	}
	doc, err := parseInput(args[0].String())
	if err != nil {
		return resultToJS(Result{Success: false, Error: err.Error()})
	}
	data, err := processor(doc)
	if err != nil {
		return resultToJS(Result{Success: false, Error: err.Error()})
	}
	return resultToJS(Result{Success: true, Data: data})
}

func parseInput(src string) (*model.Document, error) {
	if len(src) > 0 && (src[0] == '{' || src[0] == '[') {
		return dsl.ParseJSON([]byte(src))
	}
	return dsl.ParseFromString(src)
}

func parseDocument(this js.Value, args []js.Value) any {
	return handleDocInput(args, func(doc *model.Document) (any, error) {
		return doc, nil
	})
}

func validateDocument(this js.Value, args []js.Value) any {
	return handleDocInput(args, func(doc *model.Document) (any, error) {
		if err := dsl.Validate(doc); err != nil {
			return nil, err
		}
		return "Document is valid", nil
	})
}

func renderDocument(this js.Value, args []js.Value) any {
	return handleDocInput(args, func(doc *model.Document) (any, error) {
		return render.NewHTMLRenderer(nil).Render(doc)
	})
}

func extractText(this js.Value, args []js.Value) any {
	return handleDocInput(args, func(doc *model.Document) (any, error) {
		return model.PlainText(doc), nil
	})
}

func generateMermaid(this js.Value, args []js.Value) any {
	return handleDocInput(args, func(doc *model.Document) (any, error) {
		return graph.ExportMermaid(doc)
	})
}

// navigatorWriter writes through the browser clipboard API.
type navigatorWriter struct{}

func (navigatorWriter) WriteText(ctx context.Context, text string) error {
	nav := js.Global().Get("navigator")
	if !nav.Truthy() || !nav.Get("clipboard").Truthy() {
		return nil
	}
	nav.Get("clipboard").Call("writeText", text)
	return nil
}

// copyCodeBlock hands the text of the nth code block to the browser
// clipboard. The text is re-extracted from the document on every call.
func copyCodeBlock(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return resultToJS(Result{Success: false, Error: "Expected document and block index"})
	}
	doc, err := parseInput(args[0].String())
	if err != nil {
		return resultToJS(Result{Success: false, Error: err.Error()})
	}
	index := args[1].Int()

	var blocks []*model.Node
	for _, n := range doc.Nodes {
		model.Walk(n, func(node *model.Node) bool {
			if node.Type == model.TypeCodeBlock {
				blocks = append(blocks, node)
			}
			return true
		})
	}
	if index < 0 || index >= len(blocks) {
		return resultToJS(Result{Success: false, Error: "Code block index out of range"})
	}

	block := blocks[index]
	action := clipboard.NewCopyAction(func() string {
		return model.CodeBlockText(block)
	}, navigatorWriter{})
	defer action.Close()
	action.Activate(context.Background())

	return resultToJS(Result{
		Success: true,
		Data:    model.CodeBlockText(block),
		State:   string(action.State()),
	})
}

// resultToJS converts Result to JavaScript object with proper error handling
func resultToJS(r Result) map[string]any {
	jsonBytes, err := json.Marshal(r)
	if err != nil {
		return map[string]any{
			"success": false,
			"error":   "Failed to marshal result: " + err.Error(),
		}
	}
	var jsResult map[string]any
	if err := json.Unmarshal(jsonBytes, &jsResult); err != nil {
		return map[string]any{
			"success": false,
			"error":   "Failed to unmarshal result: " + err.Error(),
		}
	}
	return jsResult
}
