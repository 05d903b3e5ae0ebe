package langfamily

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porticus/internal/models"
)

type stubDetector struct {
	code    string
	err     error
	panics  bool
	samples []string
}

func (s *stubDetector) Detect(text string) (string, error) {
	s.samples = append(s.samples, text)
	if s.panics {
		panic("boom")
	}
	return s.code, s.err
}

func docOf(n int) *models.Document {
	doc := &models.Document{}
	for i := 0; i < n; i++ {
		doc.Rows = append(doc.Rows, models.Row{
			fmt.Sprintf("kw%d", i), "ignored", fmt.Sprintf("ctx%d", i), "https://example.com",
		})
	}
	return doc
}

func TestResolveMapsCodeToFamily(t *testing.T) {
	cases := map[string]models.Family{
		"en":    models.Germanic,
		"pt-BR": models.Romance,
		"PL":    models.Slavic,
		"lv":    models.Baltic,
		"cy":    models.Celtic,
		"hu":    models.Uralic,
	}
	for code, want := range cases {
		r := New(&stubDetector{code: code}, nil)
		got, err := r.Resolve(docOf(3), []int{0, 2})
		require.NoError(t, err, code)
		assert.Equal(t, want, got, code)
	}
}

func TestResolveUnsupportedIsFatal(t *testing.T) {
	r := New(&stubDetector{code: "ja"}, nil)
	_, err := r.Resolve(docOf(3), []int{0, 2})

	var ule *UnsupportedLanguageError
	require.True(t, errors.As(err, &ule))
	assert.Equal(t, "ja", ule.Code)
	assert.EqualError(t, err, "unsupported language: ja")
}

func TestResolveDetectorFailureFallsBack(t *testing.T) {
	for _, d := range []*stubDetector{
		{err: errors.New("no features")},
		{panics: true},
	} {
		got, err := New(d, nil).Resolve(docOf(2), []int{0, 2})
		require.NoError(t, err)
		assert.Equal(t, models.Germanic, got)
	}
}

func TestResolveEmptySampleFallsBack(t *testing.T) {
	d := &stubDetector{code: "ja"}
	got, err := New(d, nil).Resolve(&models.Document{}, []int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, models.Germanic, got)
	assert.Empty(t, d.samples, "detector must not see an empty sample")
}

func TestSampleUsesLeadingRowsAndTextColumns(t *testing.T) {
	d := &stubDetector{code: "en"}
	_, err := New(d, nil).Resolve(docOf(50), []int{0, 2})
	require.NoError(t, err)
	require.Len(t, d.samples, 1)

	s := d.samples[0]
	assert.True(t, strings.HasPrefix(s, "kw0 ctx0 kw1 ctx1"))
	assert.Contains(t, s, "ctx19")
	assert.NotContains(t, s, "kw20")
	assert.NotContains(t, s, "ignored")
	assert.NotContains(t, s, "example.com")
}

func TestFamilyOf(t *testing.T) {
	f, ok := FamilyOf("de-AT")
	assert.True(t, ok)
	assert.Equal(t, models.Germanic, f)

	_, ok = FamilyOf("ru")
	assert.False(t, ok, "Cyrillic-script languages have no dictionary")
}

func TestWhatlangDetectsEnglish(t *testing.T) {
	text := "The university announced that every student enrolled in the evening course " +
		"will receive a new library card and access to the online learning platform next month."
	code, err := WhatlangDetector{}.Detect(text)
	require.NoError(t, err)
	assert.Equal(t, "en", code)
}

func TestCanonicalKeepsNonLatinScript(t *testing.T) {
	assert.Equal(t, "sr-Cyrl", Canonical("sr-Cyrl"))
	assert.Equal(t, "sr-Cyrl", Canonical("SR-cyrl"))
	assert.Equal(t, "sr", Canonical("sr-Latn"))
	assert.Equal(t, "pt", Canonical("pt-BR"))

	_, ok := FamilyOf("sr-Cyrl")
	assert.False(t, ok)
	f, ok := FamilyOf("sr-Latn")
	assert.True(t, ok)
	assert.Equal(t, models.Slavic, f)
}

func TestResolveCyrillicSerbianIsUnsupported(t *testing.T) {
	doc := &models.Document{Rows: []models.Row{
		{"Универзитет у Београду", "", "нуди нови курс за студенте и наставнике", "https://bg.ac.rs"},
		{"Банка је одобрила кредит", "", "и отворила нови рачун за клијента", "https://banka.rs"},
		{"Болница и лекар", "", "пацијенти чекају преглед код доктора у граду", "https://bolnica.rs"},
	}}
	_, err := New(nil, nil).Resolve(doc, []int{0, 2})

	var ule *UnsupportedLanguageError
	require.ErrorAs(t, err, &ule)
	assert.True(t, strings.HasSuffix(ule.Code, "-Cyrl"), ule.Code)
}

func TestResolveLatinSerbianIsSlavic(t *testing.T) {
	got, err := New(&stubDetector{code: "sr-Latn"}, nil).Resolve(docOf(2), []int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, models.Slavic, got)
}

func TestWhatlangTagsCyrillicScript(t *testing.T) {
	code, err := WhatlangDetector{}.Detect("Универзитет у Београду нуди нови курс за студенте, а банка је одобрила кредит.")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(code, "-Cyrl"), code)
}
