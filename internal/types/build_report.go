package types

import "time"

// BuildReport summarizes one run of the build pipeline.
type BuildReport struct {
	BuildID    string        `json:"build_id" yaml:"build_id"`
	InputPath  string        `json:"input_path" yaml:"input_path"`
	TexPath    string        `json:"tex_path" yaml:"tex_path"`
	PDFPath    string        `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
	EnginePath string        `json:"engine_path,omitempty" yaml:"engine_path,omitempty"`
	Pages      int           `json:"pages,omitempty" yaml:"pages,omitempty"` // 0 when not counted
	Copied     []string      `json:"copied,omitempty" yaml:"copied,omitempty"`
	Skipped    []string      `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Warnings   []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Compiled   bool          `json:"compiled" yaml:"compiled"`
	Viewed     bool          `json:"viewed" yaml:"viewed"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}
