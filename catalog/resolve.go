package catalog

import "strings"

// MatchKind tells which table a query resolved against.
type MatchKind int

const (
	NoMatch MatchKind = iota
	DirectMatch
	GroupMatch
)

func (k MatchKind) String() string {
	switch k {
	case DirectMatch:
		return "direct"
	case GroupMatch:
		return "options"
	default:
		return "none"
	}
}

// Match is the result of Resolve. Exactly one of Direct or Group is set unless
// Kind is NoMatch.
type Match struct {
	Kind   MatchKind
	Direct *DirectEntry
	Group  *OptionGroup
}

// Resolve looks query up by exact, case-insensitive name. Direct entries are
// checked first and short-circuit the option groups.
func (c *Catalog) Resolve(query string) Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return Match{}
	}

	for i := range c.Direct {
		if strings.EqualFold(c.Direct[i].Name, query) {
			return Match{Kind: DirectMatch, Direct: &c.Direct[i]}
		}
	}

	for i := range c.Groups {
		if strings.EqualFold(c.Groups[i].Name, query) {
			return Match{Kind: GroupMatch, Group: &c.Groups[i]}
		}
	}

	return Match{}
}
