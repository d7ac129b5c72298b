// Package schemas embeds the JSON Schemas for exported records.
package schemas

import _ "embed"

// Document is the schema for a parsed CV exported by `cv_builder parse`.
//
//go:embed document.schema.json
var Document []byte
