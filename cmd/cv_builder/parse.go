package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/parsing"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [CV text file]",
	Short: "Export the parsed CV as JSON or YAML",
	Long: `Parses a CV text file and prints its structure: the header record, the raw
sections in source order, and the entries derived from EXPERIENCE, EDUCATION,
SKILLS and PROJECTS. The JSON form is validated against the document schema
before it is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

var (
	parseFormat     string
	parseOutputFile string
	parseSchemaFile string
)

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "Output format: json or yaml")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Write to this file instead of stdout")
	parseCmd.Flags().StringVar(&parseSchemaFile, "schema", "", "Validate against this JSON Schema instead of the built-in one")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseFormat != "json" && parseFormat != "yaml" {
		return fmt.Errorf("unsupported format %q (want json or yaml)", parseFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	input := cfg.InputPath()
	if len(args) == 1 {
		input = args[0]
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
	}
	header, sections := parsing.ParseRecord(string(data))
	doc := parsing.BuildDocument(header, sections)

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintDocument(&doc)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := validateDocument(jsonBytes); err != nil {
		return err
	}

	out := append(jsonBytes, '\n')
	if parseFormat == "yaml" {
		out, err = marshalYAML(doc)
		if err != nil {
			return err
		}
	}

	if parseOutputFile == "" {
		_, _ = os.Stdout.Write(out)
		return nil
	}

	outputDir := filepath.Dir(parseOutputFile)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(parseOutputFile, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Successfully parsed %s\n", input)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", parseOutputFile)
	return nil
}

func validateDocument(jsonBytes []byte) error {
	if parseSchemaFile == "" {
		if err := schemas.ValidateDocument(jsonBytes); err != nil {
			return fmt.Errorf("parsed document failed validation: %w", err)
		}
		return nil
	}

	schema, err := os.ReadFile(parseSchemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if err := schemas.ValidateJSON(schema, jsonBytes); err != nil {
		return fmt.Errorf("parsed document failed validation: %w", err)
	}
	return nil
}

func marshalYAML(doc types.Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return out, nil
}
