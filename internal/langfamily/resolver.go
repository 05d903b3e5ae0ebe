// Package langfamily decides which keyword dictionary a document uses.
//
// The family is a document-level property: it is resolved once from a sample
// of the leading rows and shared by every row of a run, even when individual
// rows are written in another language.
package langfamily

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"porticus/internal/models"
	"porticus/pkg/logger"
)

const (
	// SampleRows is how many leading rows feed detection.
	SampleRows = 20
	// FallbackCode is used when detection itself fails.
	FallbackCode = "en"
)

// Detector identifies the language of a text sample. It may fail on
// degenerate input.
type Detector interface {
	Detect(text string) (string, error)
}

// UnsupportedLanguageError aborts a run whose detected language maps to no family.
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	return "unsupported language: " + e.Code
}

var families = map[string]models.Family{
	"en": models.Germanic, "de": models.Germanic, "nl": models.Germanic, "sv": models.Germanic,
	"da": models.Germanic, "no": models.Germanic, "nb": models.Germanic, "nn": models.Germanic,
	"is": models.Germanic, "af": models.Germanic, "fy": models.Germanic, "lb": models.Germanic,
	"fo": models.Germanic,

	"fr": models.Romance, "es": models.Romance, "it": models.Romance, "pt": models.Romance,
	"ro": models.Romance, "ca": models.Romance, "gl": models.Romance, "oc": models.Romance,
	"co": models.Romance,

	"pl": models.Slavic, "cs": models.Slavic, "sk": models.Slavic, "hr": models.Slavic,
	"sl": models.Slavic, "sr": models.Slavic, "bs": models.Slavic,

	"lt": models.Baltic, "lv": models.Baltic,

	"ga": models.Celtic, "cy": models.Celtic, "gd": models.Celtic, "br": models.Celtic,
	"gv": models.Celtic, "kw": models.Celtic,

	"fi": models.Uralic, "et": models.Uralic, "hu": models.Uralic,
}

// FamilyOf maps an ISO 639-1 code (or any BCP 47 tag) to its family.
func FamilyOf(code string) (models.Family, bool) {
	f, ok := families[Canonical(code)]
	return f, ok
}

// Canonical reduces a language tag such as "pt-BR" or "EN" to its base code.
// An explicit non-Latin script survives ("sr-Cyrl"), so such text never maps
// to a Latin-script dictionary. Unparseable input is returned lowercased and trimmed.
func Canonical(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, conf := tag.Base()
	if conf == language.No {
		return code
	}
	if script, sc := tag.Script(); sc == language.Exact && script.String() != "Latn" {
		return base.String() + "-" + script.String()
	}
	return base.String()
}

type Resolver struct {
	detector Detector
	log      *logger.Logger
}

func New(d Detector, l *logger.Logger) *Resolver {
	if d == nil {
		d = WhatlangDetector{}
	}
	if l == nil {
		l = logger.Nop()
	}
	return &Resolver{detector: d, log: l}
}

// Sample joins the first SampleRows rows' values across cols.
func Sample(doc *models.Document, cols []int) string {
	n := doc.Len()
	if n > SampleRows {
		n = SampleRows
	}
	var parts []string
	for i := 0; i < n; i++ {
		for _, c := range cols {
			if v := strings.TrimSpace(doc.Cell(i, c)); v != "" {
				parts = append(parts, v)
			}
		}
	}
	return strings.Join(parts, " ")
}

// Resolve detects the document language and returns its family. A detector
// failure falls back to English; an unmapped code is an *UnsupportedLanguageError.
func (r *Resolver) Resolve(doc *models.Document, cols []int) (models.Family, error) {
	sample := Sample(doc, cols)
	code, err := r.detect(sample)
	if err != nil {
		r.log.Warnf("language detection failed, falling back to %q: %v", FallbackCode, err)
		code = FallbackCode
	}
	code = Canonical(code)
	f, ok := families[code]
	if !ok {
		return "", &UnsupportedLanguageError{Code: code}
	}
	r.log.Debugf("detected language %q, family %s", code, f)
	return f, nil
}

func (r *Resolver) detect(sample string) (code string, err error) {
	if strings.TrimSpace(sample) == "" {
		return "", errors.New("empty sample")
	}
	defer func() {
		if p := recover(); p != nil {
			code, err = "", fmt.Errorf("detector panic: %v", p)
		}
	}()
	return r.detector.Detect(sample)
}
