// Command ingest indexes every text or markdown file under a directory.
// Re-running it replaces the passages of files that changed.
package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ai-ragchat-be/internal/bootstrap"
	"ai-ragchat-be/internal/config"
	"ai-ragchat-be/pkg/database"

	"github.com/fatih/color"
)

var extensions = map[string]bool{".md": true, ".txt": true}

func main() {
	dir := flag.String("dir", "./data", "directory to index")
	flag.Parse()

	os.Exit(run(*dir))
}

// run returns the exit code so deferred cleanup happens before exiting.
func run(dir string) int {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Printf("Unable to connect to GORM DB: %v", err)
		return 1
	}

	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Printf("Unable to build container: %v", err)
		return 1
	}
	defer container.Close()

	ctx := context.Background()
	var files, chunks, failed int

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		source := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))

		n, err := container.IndexingService.IndexDocument(ctx, source, string(content), map[string]interface{}{
			"path": filepath.ToSlash(rel),
		})
		if err != nil {
			failed++
			color.Red("✗ %s: %v", rel, err)
			return nil
		}
		files++
		chunks += n
		color.Green("✓ %s (%d chunks)", rel, n)
		return nil
	})
	if err != nil {
		log.Printf("Walk %s: %v", dir, err)
		return 1
	}

	color.Cyan("Indexed %d files into %d passages, %d failed", files, chunks, failed)
	if failed > 0 {
		return 1
	}
	return 0
}
