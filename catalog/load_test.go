package catalog

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDataset(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("embedded dataset does not validate: %v", err)
	}
	if m := c.Resolve("rock"); m.Kind != DirectMatch {
		t.Errorf("embedded dataset: rock resolved to %v", m.Kind)
	}
	if m := c.Resolve("hat"); m.Kind != GroupMatch || len(m.Group.Options) != 3 {
		t.Errorf("embedded dataset: hat resolved to %+v", m)
	}
	if len(c.Facts) == 0 {
		t.Error("embedded dataset has no facts")
	}
}

func TestParseJSONAcceptsUppercaseURL(t *testing.T) {
	doc := `{"objects":[{"name":"Rock","URL":"https://example.com/rock","thumbnail":"t.png"}],
		"options":[{"name":"Hat","options":[{"name":"Beanie"}]}],
		"facts":["slow"]}`

	c, err := ParseJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	if c.Direct[0].URL != "https://example.com/rock" || c.Direct[0].Thumbnail != "t.png" {
		t.Errorf("direct entry = %+v", c.Direct[0])
	}
	if c.Groups[0].Options[0].URL != "" {
		t.Errorf("option URL = %q, want empty", c.Groups[0].Options[0].URL)
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `objects:
  - name: Rock
    url: https://example.com/rock
options:
  - name: Hat
    options:
      - name: Top Hat
        url: https://example.com/top
      - name: Beanie
facts:
  - snails are slow
`
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	if d, g, f := c.Stats(); d != 1 || g != 1 || f != 1 {
		t.Fatalf("Stats() = %d, %d, %d; want 1, 1, 1", d, g, f)
	}
	if got := c.Groups[0].Options[1].Name; got != "Beanie" {
		t.Errorf("second option = %q, want Beanie", got)
	}
}

func TestLoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"facts":["a","b"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(c.Facts) != 2 {
		t.Fatalf("got %d facts, want 2", len(c.Facts))
	}
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("dataset.toml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Load(.toml) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if len(c.Direct) == 0 {
		t.Fatal("Load(\"\") returned an empty catalog")
	}
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		SQLiteSchema,
		`INSERT INTO direct_entries (name, url, thumbnail, position) VALUES ('Leaf', 'https://example.com/leaf', NULL, 2)`,
		`INSERT INTO direct_entries (name, url, thumbnail, position) VALUES ('Rock', 'https://example.com/rock', 'rock.png', 1)`,
		`INSERT INTO option_groups (id, name, position) VALUES (1, 'Hat', 0)`,
		`INSERT INTO option_entries (group_id, name, url, thumbnail, position) VALUES (1, 'Top Hat', 'https://example.com/top', NULL, 0)`,
		`INSERT INTO option_entries (group_id, name, url, thumbnail, position) VALUES (1, 'Cowboy Hat', 'https://example.com/cowboy', NULL, 1)`,
		`INSERT INTO option_entries (group_id, name, url, thumbnail, position) VALUES (1, 'Beanie', NULL, NULL, 2)`,
		`INSERT INTO facts (fact) VALUES ('snails sleep'), ('snails glide')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}

	if len(c.Direct) != 2 || c.Direct[0].Name != "Rock" || c.Direct[0].Thumbnail != "rock.png" || c.Direct[1].Thumbnail != "" {
		t.Fatalf("direct entries = %+v", c.Direct)
	}
	m := c.Resolve("HAT")
	if m.Kind != GroupMatch {
		t.Fatalf("Resolve(HAT) kind = %v", m.Kind)
	}
	names := []string{"Top Hat", "Cowboy Hat", "Beanie"}
	for i, o := range m.Group.Options {
		if o.Name != names[i] {
			t.Errorf("option %d = %q, want %q", i, o.Name, names[i])
		}
	}
	if m.Group.Options[2].URL != "" {
		t.Errorf("Beanie URL = %q, want empty", m.Group.Options[2].URL)
	}
	if len(c.Facts) != 2 {
		t.Errorf("got %d facts, want 2", len(c.Facts))
	}
}

func TestLoadSQLiteMissingFile(t *testing.T) {
	if _, err := LoadSQLite(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatal("LoadSQLite on a missing file returned nil error")
	}
}
