// Package keywords holds the per-language-family sector indicator terms.
//
// The registry is built once at package init and never mutated afterwards, so
// lookups need no synchronization. Terms are stored in normalized form (see
// package normalize) and are deduplicated per sector.
package keywords

import (
	"fmt"

	"porticus/internal/models"
	"porticus/internal/normalize"
)

// Entry is one sector's term list.
type Entry struct {
	Sector models.Sector
	Terms  []string
}

// Dictionary maps every sector to its terms for one language family.
// Entries follow models.Sectors order.
type Dictionary struct {
	family  models.Family
	entries []Entry
}

func (d *Dictionary) Family() models.Family { return d.family }

// Entries returns the sector entries in enumeration order. Callers must not
// modify the returned slices.
func (d *Dictionary) Entries() []Entry { return d.entries }

// Terms returns a copy of the terms registered for s.
func (d *Dictionary) Terms(s models.Sector) []string {
	for _, e := range d.entries {
		if e.Sector == s {
			return append([]string(nil), e.Terms...)
		}
	}
	return nil
}

var registry = map[models.Family]*Dictionary{}

// Lookup returns the dictionary for f.
func Lookup(f models.Family) (*Dictionary, bool) {
	d, ok := registry[f]
	return d, ok
}

// register panics on malformed data; it only runs during package init.
func register(f models.Family, data map[models.Sector][]string) {
	d := &Dictionary{family: f}
	for _, s := range models.Sectors {
		raw := data[s]
		if len(raw) == 0 {
			panic(fmt.Sprintf("keywords: %s has no terms for %s", f, s))
		}
		seen := make(map[string]struct{}, len(raw))
		terms := make([]string, 0, len(raw))
		for _, t := range raw {
			t = normalize.Text(t)
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			terms = append(terms, t)
		}
		d.entries = append(d.entries, Entry{Sector: s, Terms: terms})
	}
	registry[f] = d
}
