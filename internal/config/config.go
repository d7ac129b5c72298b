// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CV_BUILDER_ENGINE.
const EnvPrefix = "CV_BUILDER"

// configName is the base name searched for when no explicit file is given.
const configName = "cv_builder"

// Config represents the build configuration. Every field has a default, so
// an absent config file is not an error.
type Config struct {
	// Paths
	Input     string   `mapstructure:"input" json:"input" validate:"required"`           // CV text file
	TexOutput string   `mapstructure:"tex_output" json:"tex_output" validate:"required"` // generated LaTeX source
	PDFOutput string   `mapstructure:"pdf_output" json:"pdf_output" validate:"required"` // final PDF name in work_dir
	CopyTo    []string `mapstructure:"copy_to" json:"copy_to" validate:"dive,required"`  // extra PDF destinations
	WorkDir   string   `mapstructure:"work_dir" json:"work_dir" validate:"required"`

	// Typesetting
	Engine            string        `mapstructure:"engine" json:"engine" validate:"required"`
	FirstPassTimeout  time.Duration `mapstructure:"first_pass_timeout" json:"first_pass_timeout" validate:"gt=0"`
	SecondPassTimeout time.Duration `mapstructure:"second_pass_timeout" json:"second_pass_timeout" validate:"gt=0"`
	MaxPages          int           `mapstructure:"max_pages" json:"max_pages" validate:"gte=0"` // 0 disables the check

	// Behavior
	OpenViewer bool `mapstructure:"open_viewer" json:"open_viewer"`
	Verbose    bool `mapstructure:"verbose" json:"verbose"`

	// Source is the config file that was read, empty when only defaults and
	// environment were used.
	Source string `mapstructure:"-" json:"-"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Input:             "CV_DATA.txt",
		TexOutput:         "cv.tex",
		PDFOutput:         "CV.pdf",
		CopyTo:            []string{filepath.Join("public", "CV.pdf")},
		WorkDir:           ".",
		Engine:            "pdflatex",
		FirstPassTimeout:  120 * time.Second,
		SecondPassTimeout: 60 * time.Second,
		OpenViewer:        true,
	}
}

// LoadConfig loads configuration from path, or from cv_builder.{yaml,json}
// in the current directory or ~/.config/cv_builder when path is empty.
// Environment variables prefixed with CV_BUILDER_ override file values.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	d := Defaults()
	v.SetDefault("input", d.Input)
	v.SetDefault("tex_output", d.TexOutput)
	v.SetDefault("pdf_output", d.PDFOutput)
	v.SetDefault("copy_to", d.CopyTo)
	v.SetDefault("work_dir", d.WorkDir)
	v.SetDefault("engine", d.Engine)
	v.SetDefault("first_pass_timeout", d.FirstPassTimeout)
	v.SetDefault("second_pass_timeout", d.SecondPassTimeout)
	v.SetDefault("max_pages", d.MaxPages)
	v.SetDefault("open_viewer", d.OpenViewer)
	v.SetDefault("verbose", d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Validate checks that the configuration has usable values and that the
// input file exists.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed the '%s' check", fieldName(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if _, err := os.Stat(c.InputPath()); os.IsNotExist(err) {
		return fmt.Errorf("config error: input file not found: %s", c.InputPath())
	}

	return nil
}

// InputPath resolves the input file against WorkDir.
func (c *Config) InputPath() string {
	return c.resolve(c.Input)
}

// TexPath resolves the LaTeX output against WorkDir.
func (c *Config) TexPath() string {
	return c.resolve(c.TexOutput)
}

// PDFPath resolves the final PDF name against WorkDir.
func (c *Config) PDFPath() string {
	return c.resolve(c.PDFOutput)
}

// CopyTargets resolves every copy_to entry against WorkDir.
func (c *Config) CopyTargets() []string {
	targets := make([]string, 0, len(c.CopyTo))
	for _, t := range c.CopyTo {
		targets = append(targets, c.resolve(t))
	}
	return targets
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.WorkDir == "" {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

// fieldName maps a struct field back to its config key. Indexed fields such
// as CopyTo[0] keep their index.
func fieldName(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return fieldName(field[:i]) + field[i:]
	}
	switch field {
	case "Input":
		return "input"
	case "TexOutput":
		return "tex_output"
	case "PDFOutput":
		return "pdf_output"
	case "CopyTo":
		return "copy_to"
	case "WorkDir":
		return "work_dir"
	case "Engine":
		return "engine"
	case "FirstPassTimeout":
		return "first_pass_timeout"
	case "SecondPassTimeout":
		return "second_pass_timeout"
	case "MaxPages":
		return "max_pages"
	default:
		return field
	}
}
