package main

import (
	"fmt"
	"os"

	"github.com/sansecio/flopcount/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <kernel-file>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]

	p, err := parser.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating parser: %v\n", err)
		os.Exit(1)
	}

	kernel, err := p.ParseFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", filename, err)
		os.Exit(1)
	}

	// Print summary
	fmt.Printf("Parsed %d equations from %s\n", len(kernel.Equations), filename)

	for _, eq := range kernel.Equations {
		fmt.Printf("  - %s\n", eq)
	}
}
