// Package catalog holds the bot's read-only dataset: direct entries, option
// groups and snail facts, plus the lookups performed against them.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// MaxGroupOptions is the number of buttons a single Discord action row can hold.
const MaxGroupOptions = 5

// DirectEntry is a query that answers straight away with a link.
type DirectEntry struct {
	Name      string `json:"name" yaml:"name"`
	URL       string `json:"url" yaml:"url"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// OptionEntry is one selectable choice of an OptionGroup. URL may be empty.
type OptionEntry struct {
	Name      string `json:"name" yaml:"name"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// OptionGroup is a query that needs the user to pick one of its options.
type OptionGroup struct {
	Name    string        `json:"name" yaml:"name"`
	Options []OptionEntry `json:"options" yaml:"options"`
}

// Catalog is the immutable dataset loaded once at startup.
type Catalog struct {
	Direct []DirectEntry `json:"objects" yaml:"objects"`
	Groups []OptionGroup `json:"options" yaml:"options"`
	Facts  []string      `json:"facts" yaml:"facts"`
}

// Stats returns the size of each table.
func (c *Catalog) Stats() (direct, groups, facts int) {
	return len(c.Direct), len(c.Groups), len(c.Facts)
}

// Validate reports dataset problems without fixing them. Lookups still work on
// an invalid catalog; first match wins.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]string)

	check := func(table, name string) {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("%s: empty name", table))
			return
		}
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("%s: duplicate name %q (already in %s)", table, name, prev))
			return
		}
		seen[key] = table
	}

	for _, e := range c.Direct {
		check("objects", e.Name)
	}
	for _, g := range c.Groups {
		check("options", g.Name)
		switch n := len(g.Options); {
		case n == 0:
			errs = append(errs, fmt.Errorf("options: group %q has no options", g.Name))
		case n > MaxGroupOptions:
			errs = append(errs, fmt.Errorf("options: group %q has %d options, only %d fit in one row", g.Name, n, MaxGroupOptions))
		}
	}
	for i, f := range c.Facts {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, fmt.Errorf("facts: entry %d is empty", i))
		}
	}

	return errors.Join(errs...)
}
