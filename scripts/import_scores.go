package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Luto101/Solitaire/internal/config"
	"github.com/Luto101/Solitaire/internal/scores"
)

// Copies a scores.json written by the file backend into the store selected
// by the configuration, typically sqlite or postgres.
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	jsonPath := "scores.json"
	if flag.NArg() > 0 {
		jsonPath = flag.Arg(0)
	}
	absPath, err := filepath.Abs(jsonPath)
	if err != nil {
		log.Fatalf("Failed to get absolute path: %v", err)
	}

	fmt.Println("=== Solitaire Score Import ===")
	fmt.Printf("Source file: %s\n", absPath)

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		log.Fatalf("Score file not found: %s", absPath)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Scores.Backend == "file" && sameFile(cfg.Scores.Path, absPath) {
		log.Fatal("Destination is the source file; set scores.backend to sqlite or postgres")
	}

	src, err := scores.NewFileStore(absPath, nil).List(ctx)
	if err != nil {
		log.Fatalf("Failed to read scores: %v", err)
	}
	fmt.Printf("Found %d scores\n", len(src))

	fmt.Printf("Opening %s store...\n", cfg.Scores.Backend)
	dst, err := scores.Open(ctx, cfg.Scores, nil)
	if err != nil {
		log.Fatalf("Failed to open destination: %v", err)
	}
	defer dst.Close()

	startTime := time.Now()
	res, err := scores.Import(ctx, dst, src)
	if err != nil {
		log.Fatalf("Import aborted: %v", err)
	}

	fmt.Println("\n=== Import Complete ===")
	fmt.Printf("Imported: %d scores\n", res.Imported)
	if res.Skipped > 0 {
		fmt.Printf("Already present: %d scores\n", res.Skipped)
	}
	if res.Failed > 0 {
		fmt.Printf("Failed to import: %d scores\n", res.Failed)
	}
	fmt.Printf("Time taken: %s\n", time.Since(startTime))

	if all, err := dst.List(ctx); err == nil {
		fmt.Printf("\nTotal scores in destination: %d\n", len(all))
	}
}

func sameFile(a, b string) bool {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	return absA == b
}
