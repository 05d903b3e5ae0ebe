package langfamily

import (
	"errors"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

var errUndetected = errors.New("language not detected")

// scriptTags names the non-Latin scripts whatlanggo reports, as ISO 15924 codes.
var scriptTags = map[*unicode.RangeTable]string{
	unicode.Cyrillic:   "Cyrl",
	unicode.Greek:      "Grek",
	unicode.Arabic:     "Arab",
	unicode.Hebrew:     "Hebr",
	unicode.Devanagari: "Deva",
	unicode.Bengali:    "Beng",
	unicode.Georgian:   "Geor",
	unicode.Armenian:   "Armn",
	unicode.Han:        "Hani",
	unicode.Hiragana:   "Jpan",
	unicode.Katakana:   "Jpan",
	unicode.Hangul:     "Hang",
	unicode.Thai:       "Thai",
}

// WhatlangDetector is the default trigram-based detector. Text in a script
// other than Latin is reported with its script subtag, e.g. "sr-Cyrl", since
// the keyword dictionaries only cover Latin-script text.
type WhatlangDetector struct{}

func (WhatlangDetector) Detect(text string) (string, error) {
	info := whatlanggo.Detect(text)
	if info.Script == nil || info.Lang < 0 {
		return "", errUndetected
	}
	code := info.Lang.Iso6391()
	if code == "" {
		code = info.Lang.Iso6393()
	}
	if code == "" {
		return "", errUndetected
	}
	if info.Script == unicode.Latin {
		return code, nil
	}
	script, ok := scriptTags[info.Script]
	if !ok {
		script = "Zzzz"
	}
	return code + "-" + script, nil
}
