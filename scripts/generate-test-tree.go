//go:build ignore

// Package main generates a synthetic directory tree for trying out
// hidewatch by hand.
// Usage: go run scripts/generate-test-tree.go -entries 500 -output testdata/tree
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

var (
	numEntries = flag.Int("entries", 500, "Number of files to generate")
	outputDir  = flag.String("output", "testdata/tree", "Output directory")
	seed       = flag.Int64("seed", 42, "Random seed for reproducibility")
)

// Directory names a hide run would typically target, mixed with ones
// it should leave alone.
var dirNames = []string{
	"node_modules", "build", "cache",
	"src", "docs", "data",
}

// Extensions spread across the generated files. log, tmp and bak are
// the usual hide targets.
var extensions = []string{"log", "tmp", "txt", "md", "json", "bak"}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	for _, dir := range dirNames {
		nested := filepath.Join(*outputDir, dir, "nested")
		if err := os.MkdirAll(nested, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory %s: %v\n", nested, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generating %d files in %s...\n", *numEntries, *outputDir)

	generated := 0
	for i := 0; i < *numEntries; i++ {
		dir := dirNames[rng.Intn(len(dirNames))]
		ext := extensions[rng.Intn(len(extensions))]

		// Roughly a third of the files go into the nested level so
		// recursive and non-recursive runs behave differently.
		parent := filepath.Join(*outputDir, dir)
		if rng.Intn(3) == 0 {
			parent = filepath.Join(parent, "nested")
		}

		name := fmt.Sprintf("file%04d.%s", i, ext)
		content := fmt.Sprintf("test entry %d\n", i)
		if err := os.WriteFile(filepath.Join(parent, name), []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", name, err)
			os.Exit(1)
		}
		generated++
	}

	fmt.Printf("Generated %d files under %s\n", generated, *outputDir)
}
