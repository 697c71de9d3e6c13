//go:build mage

// Package main contains Mage build targets for citematch developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the record store expects.
var projectDirs = []string{
	"bibliography/records",
	"bibliography/index",
}

// Init creates the record store directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "citematch"
	cmdPkg  = "./cmd/citematch"
)

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

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Check runs go vet and the tests.
func Check() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	mg.Deps(Test)
	return nil
}

// Match builds the CLI and matches a markers file against its stored
// document. The file path is read from MARKERS.
func Match() error {
	mg.Deps(Build)
	markers := os.Getenv("MARKERS")
	if markers == "" {
		return fmt.Errorf("MARKERS is not set")
	}
	return sh.RunV(filepath.Join(binDir, binName), "match", "--markers", markers)
}

// Stats prints non-blank Go lines per package, production and tests, with
// totals. Packages are listed in path order.
func Stats() error {
	stats, err := packageLines(".")
	if err != nil {
		return err
	}

	pkgs := make([]string, 0, len(stats))
	for pkg := range stats {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	var prod, test int
	fmt.Printf("%-28s %8s %8s\n", "Package", "Code", "Tests")
	for _, pkg := range pkgs {
		c := stats[pkg]
		fmt.Printf("%-28s %8d %8d\n", pkg, c.prod, c.test)
		prod += c.prod
		test += c.test
	}
	fmt.Printf("%-28s %8d %8d\n", "total", prod, test)
	return nil
}

type lineCount struct {
	prod, test int
}

// packageLines walks root and counts non-blank Go lines by package
// directory. Hidden, underscore-prefixed and bin directories are skipped.
func packageLines(root string) (map[string]lineCount, error) {
	stats := make(map[string]lineCount)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		c := stats[filepath.Dir(path)]
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		stats[filepath.Dir(path)] = c
		return nil
	})
	return stats, err
}
