package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrNoFacts is returned by PickFact when the dataset has no facts.
var ErrNoFacts = errors.New("catalog: no facts loaded")

// FactTemplates are the phrasings a fact is wrapped in.
var FactTemplates = [4]string{
	"🐌 did you know? %s",
	"🐌 Here’s a cool snail fact: %s",
	"🐌 Fun fact for you: %s",
	"🐌 check out this snail fact: %s",
}

// PickFact returns a uniformly random fact in a uniformly random template.
func (c *Catalog) PickFact() (string, error) {
	if len(c.Facts) == 0 {
		return "", ErrNoFacts
	}
	fact := c.Facts[rand.IntN(len(c.Facts))]
	tmpl := FactTemplates[rand.IntN(len(FactTemplates))]
	return fmt.Sprintf(tmpl, fact), nil
}
