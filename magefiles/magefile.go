//go:build mage

// Package main contains Mage build targets for cv-builder developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "cv_builder"
	cmdPkg  = "./cmd/cv_builder"
)

// Default target when mage is run without arguments.
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test builds the binary first so the CLI tests run instead of skipping.
func Test() error {
	mg.Deps(Build)
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet over every package.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Sample builds testdata/sample_cv.txt into out/ without opening a viewer.
func Sample() error {
	mg.Deps(Build)
	if err := os.MkdirAll("out", 0o755); err != nil {
		return fmt.Errorf("creating out: %w", err)
	}
	input, err := filepath.Abs(filepath.Join("testdata", "sample_cv.txt"))
	if err != nil {
		return err
	}
	return sh.RunV(filepath.Join(binDir, binName), "build",
		"--input", input,
		"--work-dir", "out",
		"--copy-to", "public/CV.pdf",
		"--no-open")
}

// Clean removes build outputs.
func Clean() error {
	for _, dir := range []string{binDir, "out"} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
