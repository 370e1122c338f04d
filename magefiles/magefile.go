//go:build mage

// Package main contains Mage build targets for download-manager developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "download-manager"
	cmdPkg  = "./cmd/download-manager"
)

// sandboxDirs lists the folders of the local sandbox used by the Sort target.
var sandboxDirs = []string{
	"sandbox/downloads",
	"sandbox/archives",
	"sandbox/pictures",
	"sandbox/seeds",
	"sandbox/keywords",
}

// sandboxConfig is written by Init unless a config already exists.
const sandboxConfig = `source_dir: sandbox/downloads
archive_dir: sandbox/archives
pictures_dir: sandbox/pictures
threshold: 0.00005
categories:
  - name: thermodynamics
    path: sandbox/sorted/thermodynamics
    keywords: sandbox/keywords/thermodynamics.txt
    seed: sandbox/seeds/thermodynamics.pdf
  - name: algorithms
    path: sandbox/sorted/algorithms
    keywords: sandbox/keywords/algorithms.txt
    seed: sandbox/seeds/algorithms.pdf
  - name: misc
    path: sandbox/sorted/misc
`

const sandboxConfigFile = "download-manager.yaml"

// Init creates a sandbox folder layout and a matching download-manager.yaml.
func Init() error {
	for _, dir := range sandboxDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if _, err := os.Stat(sandboxConfigFile); err == nil {
		fmt.Printf("Keeping existing %s\n", sandboxConfigFile)
		return nil
	}
	if err := os.WriteFile(sandboxConfigFile, []byte(sandboxConfig), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", sandboxConfigFile, err)
	}
	fmt.Printf("Wrote %s. Put seed PDFs in sandbox/seeds.\n", sandboxConfigFile)
	return nil
}

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

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Sort builds the binary and runs setup, populate, and run against the sandbox.
func Sort() error {
	mg.Deps(Init, Build)
	bin := filepath.Join(binDir, binName)
	for _, verb := range []string{"setup", "populate", "run"} {
		if err := sh.RunV(bin, verb, "--config", sandboxConfigFile); err != nil {
			return fmt.Errorf("%s %s: %w", binName, verb, err)
		}
	}
	return nil
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// countGoLines counts non-blank lines in production and test Go files,
// skipping the sandbox and any directory starting with "_" or ".".
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(path, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countNonBlank(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countDocWords counts words in top-level and nested Markdown files.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(path, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(bytes.Fields(data))
		return nil
	})
	return total, err
}

func skipDir(path, name string) bool {
	if path == "." {
		return false
	}
	return name == "sandbox" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

func countNonBlank(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
