package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLiteSchema is the layout LoadSQLite expects. Rows are returned ordered by
// position, then insertion order.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS direct_entries (
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	thumbnail TEXT,
	position INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS option_groups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	position INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS option_entries (
	group_id INTEGER NOT NULL REFERENCES option_groups(id),
	name TEXT NOT NULL,
	url TEXT,
	thumbnail TEXT,
	position INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS facts (
	fact TEXT NOT NULL,
	position INTEGER DEFAULT 0
);`

// LoadSQLite reads a dataset from a SQLite file opened read-only.
func LoadSQLite(path string) (*Catalog, error) {
	// The driver registers itself in init(); referencing it keeps the import explicit.
	_ = sqlite3.SQLiteDriver{}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("open sqlite dataset %s: %w", path, err)
	}

	var c Catalog

	rows, err := db.QueryContext(ctx, `SELECT name, url, thumbnail FROM direct_entries ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query direct_entries: %w", err)
	}
	for rows.Next() {
		var e DirectEntry
		var thumb sql.NullString
		if err := rows.Scan(&e.Name, &e.URL, &thumb); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan direct_entries: %w", err)
		}
		e.Thumbnail = thumb.String
		c.Direct = append(c.Direct, e)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read direct_entries: %w", err)
	}

	rows, err = db.QueryContext(ctx, `SELECT id, name FROM option_groups ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query option_groups: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		var g OptionGroup
		if err := rows.Scan(&id, &g.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan option_groups: %w", err)
		}
		ids = append(ids, id)
		c.Groups = append(c.Groups, g)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read option_groups: %w", err)
	}

	for i, id := range ids {
		rows, err := db.QueryContext(ctx, `SELECT name, url, thumbnail FROM option_entries WHERE group_id = ? ORDER BY position, rowid`, id)
		if err != nil {
			return nil, fmt.Errorf("query option_entries for %q: %w", c.Groups[i].Name, err)
		}
		for rows.Next() {
			var o OptionEntry
			var url, thumb sql.NullString
			if err := rows.Scan(&o.Name, &url, &thumb); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan option_entries: %w", err)
			}
			o.URL, o.Thumbnail = url.String, thumb.String
			c.Groups[i].Options = append(c.Groups[i].Options, o)
		}
		if err := closeRows(rows); err != nil {
			return nil, fmt.Errorf("read option_entries: %w", err)
		}
	}

	rows, err = db.QueryContext(ctx, `SELECT fact FROM facts ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan facts: %w", err)
		}
		c.Facts = append(c.Facts, f)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read facts: %w", err)
	}

	return &c, nil
}

func closeRows(rows *sql.Rows) error {
	err := rows.Err()
	if cerr := rows.Close(); err == nil {
		err = cerr
	}
	return err
}
