package classifier

import (
	"strings"

	"porticus/internal/keywords"
	"porticus/internal/models"
	"porticus/internal/normalize"
)

// MatchMode selects how a term is found in text.
type MatchMode int

const (
	// Substring matches a term anywhere, including inside longer words.
	Substring MatchMode = iota
	// Token matches a term only on word boundaries.
	Token
)

// ParseMatchMode reads a mode name; "" is Substring. Unknown names report false.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return Substring, true
	case "token":
		return Token, true
	}
	return Substring, false
}

func (m MatchMode) String() string {
	if m == Token {
		return "token"
	}
	return "substring"
}

// Classifier scores text against a keyword dictionary. It is safe for
// concurrent use.
type Classifier struct {
	mode MatchMode
}

// New returns a Substring classifier.
func New() *Classifier { return &Classifier{} }

// NewWithMode returns a classifier using m.
func NewWithMode(m MatchMode) *Classifier { return &Classifier{mode: m} }

// Mode reports the match mode, which is part of a run's identity.
func (c *Classifier) Mode() MatchMode { return c.mode }

// Classify normalizes text and picks the sector with the most distinct matched
// terms. Ties go to the sector earliest in models.Sectors; a zero best score
// yields models.OutOfScope.
func (c *Classifier) Classify(text string, d *keywords.Dictionary) models.Classification {
	text = normalize.Text(text)
	out := models.Classification{
		Sector:  models.OutOfScope,
		Scores:  make(map[models.Sector]int, len(models.Sectors)),
		Matched: map[models.Sector][]string{},
	}
	if text == "" {
		return out
	}

	padded := " " + text + " "
	best := 0
	for _, e := range d.Entries() {
		score := 0
		for _, term := range e.Terms {
			if c.contains(text, padded, term) {
				score++
				out.Matched[e.Sector] = append(out.Matched[e.Sector], term)
			}
		}
		out.Scores[e.Sector] = score
		// strict > keeps the earliest sector on ties
		if score > best {
			best = score
			out.Sector = e.Sector
		}
	}
	return out
}

// Sector is Classify without the score breakdown.
func (c *Classifier) Sector(text string, d *keywords.Dictionary) models.Sector {
	return c.Classify(text, d).Sector
}

func (c *Classifier) contains(text, padded, term string) bool {
	if c.mode == Token {
		return strings.Contains(padded, " "+term+" ")
	}
	return strings.Contains(text, term)
}
