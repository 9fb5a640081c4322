package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("catalog: unsupported dataset format")

//go:embed data/default.json
var defaultDataset []byte

// Default returns the dataset compiled into the binary.
func Default() (*Catalog, error) {
	c, err := ParseJSON(bytes.NewReader(defaultDataset))
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return c, nil
}

// Load reads a dataset from path, picking the decoder from the extension.
// An empty path loads the embedded dataset.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if ext == ".json" {
		return ParseJSON(f)
	}
	return ParseYAML(f)
}

// ParseJSON decodes a dataset document. Field names match case-insensitively,
// so "URL" and "url" are both accepted.
func ParseJSON(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode json dataset: %w", err)
	}
	return &c, nil
}

// ParseYAML decodes a dataset document written in YAML.
func ParseYAML(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("decode yaml dataset: %w", err)
	}
	return &c, nil
}
