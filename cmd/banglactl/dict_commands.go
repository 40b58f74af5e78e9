package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"banglawriter/internal/dictionary"
)

func cmdDict(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: banglactl dict <validate|import|export|history> ...")
	}

	switch args[0] {
	case "validate":
		if len(args) != 2 {
			return fmt.Errorf("usage: banglactl dict validate <file>")
		}
		return cmdDictValidate(args[1])
	case "import":
		if len(args) != 3 {
			return fmt.Errorf("usage: banglactl dict import <json> <db>")
		}
		return cmdDictImport(args[1], args[2])
	case "export":
		if len(args) != 3 {
			return fmt.Errorf("usage: banglactl dict export <db> <json>")
		}
		return cmdDictExport(args[1], args[2])
	case "history":
		if len(args) != 2 {
			return fmt.Errorf("usage: banglactl dict history <db>")
		}
		return cmdDictHistory(args[1])
	default:
		return fmt.Errorf("unknown dict command: %s", args[0])
	}
}

func cmdDictValidate(path string) error {
	idx, err := dictionary.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: OK (%s, %d words in %d buckets)\n", path, dictionary.SourceFor(path), idx.Len(), len(idx.Keys()))
	return nil
}

func cmdDictImport(src, dst string) error {
	if dictionary.SourceFor(src) != dictionary.SourceJSON {
		return fmt.Errorf("import source must be a JSON word list: %s", src)
	}
	if dictionary.SourceFor(dst) != dictionary.SourceSQLite {
		return fmt.Errorf("import target must be a .db or .sqlite file: %s", dst)
	}

	idx, err := dictionary.Load(src)
	if err != nil {
		return err
	}

	store, err := dictionary.OpenSQLite(dst)
	if err != nil {
		return err
	}
	defer store.Close()

	abs, err := filepath.Abs(src)
	if err != nil {
		abs = src
	}
	if err := store.Replace(idx, abs); err != nil {
		return err
	}
	fmt.Printf("Imported %d words into %s (digest %s)\n", idx.Len(), dst, dictionary.Digest(idx))
	return nil
}

func cmdDictExport(src, dst string) error {
	if dictionary.SourceFor(src) != dictionary.SourceSQLite {
		return fmt.Errorf("export source must be a .db or .sqlite file: %s", src)
	}

	idx, err := dictionary.Load(src)
	if err != nil {
		return err
	}

	out := os.Stdout
	if dst != "-" {
		f, err := os.Create(dst)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	if err := dictionary.WriteJSON(w, idx); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if dst != "-" {
		fmt.Fprintf(os.Stderr, "Exported %d words to %s\n", idx.Len(), dst)
	}
	return nil
}

func cmdDictHistory(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open word store: %w", err)
	}
	store, err := dictionary.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer store.Close()

	version, err := store.SchemaVersion()
	if err != nil {
		return err
	}
	imports, err := store.Imports()
	if err != nil {
		return err
	}

	fmt.Printf("Schema version: %d\n", version)
	if len(imports) == 0 {
		fmt.Println("No imports recorded")
		return nil
	}
	for _, im := range imports {
		digest := im.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		fmt.Printf("  %s  %6d words  %-12s  %s\n", im.ImportedAt.Format(time.RFC3339), im.WordCount, digest, im.Source)
	}
	return nil
}
