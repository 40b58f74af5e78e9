package dictionary

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed wordlist.schema.json
var wordListSchema []byte

const schemaURL = "wordlist.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(wordListSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// Source names where an Index came from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceJSON    Source = "json"
	SourceSQLite  Source = "sqlite"
)

// LoadResult is the outcome of LoadOrBuiltin. Index is never nil; Err
// holds the reason the built-in list was used instead of Path.
type LoadResult struct {
	Index  *Index
	Source Source
	Path   string
	Err    error
}

// Fallback reports whether a configured word list failed to load.
func (r LoadResult) Fallback() bool { return r.Err != nil }

// ValidateJSON checks data against the word-list schema.
func ValidateJSON(data []byte) (WordList, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("decode word list: %w: %w", ErrMalformed, err)
	}
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("validate word list: %w: %w", ErrMalformed, err)
	}

	var list WordList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode word list: %w: %w", ErrMalformed, err)
	}
	return list, nil
}

// ReadJSON parses and validates a JSON word list.
func ReadJSON(r io.Reader) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	list, err := ValidateJSON(data)
	if err != nil {
		return nil, err
	}
	return NewIndex(list)
}

// WriteJSON writes idx in the JSON word-list shape.
func WriteJSON(w io.Writer, idx *Index) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(idx.WordList()); err != nil {
		return fmt.Errorf("encode word list: %w", err)
	}
	return nil
}

// SourceFor picks the loader for path by extension.
func SourceFor(path string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	default:
		return SourceJSON
	}
}

// Load reads the word list at path. JSON files are validated against the
// embedded schema; .db/.sqlite files are read through SQLiteStore.
func Load(path string) (*Index, error) {
	switch SourceFor(path) {
	case SourceSQLite:
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("open word store: %w", err)
		}
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load()
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open word list: %w", err)
		}
		defer f.Close()
		return ReadJSON(f)
	}
}

// LoadOrBuiltin loads path and substitutes the built-in list if path is
// empty or cannot be loaded. A configured list is never merged with the
// built-in one.
func LoadOrBuiltin(path string) LoadResult {
	if path == "" {
		return LoadResult{Index: Builtin(), Source: SourceBuiltin}
	}
	idx, err := Load(path)
	if err != nil {
		return LoadResult{Index: Builtin(), Source: SourceBuiltin, Path: path, Err: err}
	}
	return LoadResult{Index: idx, Source: SourceFor(path), Path: path}
}
