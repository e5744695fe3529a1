package docs

import _ "embed"

// FlowdocSpec is the embedded flowdoc document format description.
//
//go:embed flowdoc_spec.md
var FlowdocSpec string

// DocumentSchema is the embedded JSON Schema for flowdoc documents. It is
// the source of truth dsl.Validate checks against.
//
//go:embed document.schema.json
var DocumentSchema string
