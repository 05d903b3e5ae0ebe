package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porticus/internal/augment"
	"porticus/internal/checkpoint"
	"porticus/internal/classifier"
	"porticus/internal/keywords"
	"porticus/internal/langfamily"
	"porticus/internal/models"
	"porticus/internal/parser"
)

type fixedResolver struct {
	family models.Family
	err    error
	calls  atomic.Int32
}

func (f *fixedResolver) Resolve(*models.Document, []int) (models.Family, error) {
	f.calls.Add(1)
	return f.family, f.err
}

// pages serves canned text per URL with an optional per-URL delay.
type pages struct {
	text     map[string]string
	delay    func(url string) time.Duration
	inflight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (p *pages) FetchText(ctx context.Context, url string) string {
	p.calls.Add(1)
	n := p.inflight.Add(1)
	defer p.inflight.Add(-1)
	for {
		old := p.peak.Load()
		if n <= old || p.peak.CompareAndSwap(old, n) {
			break
		}
	}
	if p.delay != nil {
		select {
		case <-time.After(p.delay(url)):
		case <-ctx.Done():
			return ""
		}
	}
	return p.text[url]
}

var samples = [][2]string{
	{"university", "our university offers a new online course"},
	{"bank", "the bank approved the mortgage and opened an account"},
	{"xyz", "abc qqq"},
	{"hospital", "doctor and nurse on call"},
	{"checkout", "shopping cart discount"},
	{"taxes", "accountant for your tax return"},
	{"flight", "hotel booking and airport transfer"},
	{"truck", "motorcycle dealership with tyres"},
}

func table(n int) *models.Document {
	doc := &models.Document{Header: []string{"keyword", "notes", "context", "url"}}
	for i := 0; i < n; i++ {
		s := samples[i%len(samples)]
		doc.Rows = append(doc.Rows, models.Row{s[0], "row notes mention hospital", s[1], fmt.Sprintf("https://site%d.example.com/", i)})
	}
	return doc
}

func newOrch(aug TextSource, store checkpoint.Store) *Orchestrator {
	return New(&fixedResolver{family: models.Germanic}, classifier.New(), aug, store, nil)
}

func TestClassifyAssignsEveryRow(t *testing.T) {
	doc := table(len(samples))
	out, err := newOrch(nil, nil).Classify(context.Background(), doc, Options{}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.Germanic, out.Family)
	assert.Equal(t, []models.Sector{
		models.Education, models.Finance, models.OutOfScope, models.Medical,
		models.Retail, models.Tax, models.Travel, models.Vehicle,
	}, out.Sectors, "column B must not be scored")
}

func TestClassifyDeterministic(t *testing.T) {
	doc := table(137)
	o := newOrch(nil, nil)
	first, err := o.Classify(context.Background(), doc, Options{}, nil)
	require.NoError(t, err)
	second, err := o.Classify(context.Background(), doc, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Sectors, second.Sectors)
}

func TestClassifyResumesOnlyMissingRows(t *testing.T) {
	doc := table(120)
	o := newOrch(nil, nil)

	full, err := o.Classify(context.Background(), doc, Options{}, nil)
	require.NoError(t, err)

	partial := models.Results{}
	for i := 0; i < 70; i++ {
		partial[i] = full.Sectors[i]
	}
	var computed []int
	resumed, err := o.Classify(context.Background(), doc, Options{
		OnRow: func(r models.RowResult) { computed = append(computed, r.Index) },
	}, partial)
	require.NoError(t, err)

	require.Len(t, computed, 50)
	assert.Equal(t, 70, computed[0])
	assert.Equal(t, full.Sectors, resumed.Sectors)
	assert.Len(t, partial, 120, "results are extended in place")
}

func TestClassifyKeepsExistingResults(t *testing.T) {
	doc := table(3)
	prior := models.Results{0: models.Vehicle}
	out, err := newOrch(nil, nil).Classify(context.Background(), doc, Options{}, prior)
	require.NoError(t, err)
	assert.Equal(t, models.Vehicle, out.Sectors[0], "already classified rows are never recomputed")
}

func TestClassifyAugmentationAddsText(t *testing.T) {
	doc := &models.Document{Rows: []models.Row{
		{"", "", "", "https://a.example/"},
		{"", "", "", "https://b.example/"},
	}}
	src := &pages{text: map[string]string{"https://a.example/": "hotel flight airport"}}

	out, err := newOrch(src, nil).Classify(context.Background(), doc, Options{UseAugmentation: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Sector{models.Travel, models.OutOfScope}, out.Sectors)

	src.calls.Store(0)
	out, err = newOrch(src, nil).Classify(context.Background(), doc, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Sector{models.OutOfScope, models.OutOfScope}, out.Sectors)
	assert.Zero(t, src.calls.Load(), "no fetches when augmentation is off")
}

type brokenFetcher struct{}

func (brokenFetcher) Fetch(context.Context, string) (io.ReadCloser, string, string, time.Duration, error) {
	return nil, "", "", 0, errors.New("dial tcp: i/o timeout")
}

func TestClassifyFetchFailureUsesLocalText(t *testing.T) {
	doc := table(len(samples))
	aug := augment.New(brokenFetcher{}, parser.New(), augment.Options{}, nil)

	with, err := newOrch(aug, nil).Classify(context.Background(), doc, Options{UseAugmentation: true}, nil)
	require.NoError(t, err)
	without, err := newOrch(nil, nil).Classify(context.Background(), doc, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, without.Sectors, with.Sectors)
}

func TestClassifyOrderIndependentOfFetchCompletion(t *testing.T) {
	doc := &models.Document{}
	text := map[string]string{}
	for i := 0; i < 40; i++ {
		u := fmt.Sprintf("https://%d.example/", i)
		doc.Rows = append(doc.Rows, models.Row{"", "", "", u})
		text[u] = samples[i%len(samples)][1]
	}
	src := &pages{
		text: text,
		// later rows finish first
		delay: func(url string) time.Duration {
			var n int
			fmt.Sscanf(url, "https://%d.example/", &n)
			return time.Duration(40-n) * time.Millisecond
		},
	}
	out, err := newOrch(src, nil).Classify(context.Background(), doc, Options{UseAugmentation: true, Concurrency: 40}, nil)
	require.NoError(t, err)

	cl := classifier.New()
	for i, s := range out.Sectors {
		assert.Equal(t, cl.Sector(samples[i%len(samples)][1], mustDict(t)), s, "row %d", i)
	}
}

func TestClassifyBoundsConcurrency(t *testing.T) {
	doc := table(BatchSize)
	src := &pages{text: map[string]string{}, delay: func(string) time.Duration { return 5 * time.Millisecond }}
	_, err := newOrch(src, nil).Classify(context.Background(), doc, Options{UseAugmentation: true, Concurrency: 3}, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, src.peak.Load(), int32(3))
	assert.Equal(t, int32(BatchSize), src.calls.Load())
}

func TestClassifyRejectsNarrowTable(t *testing.T) {
	res := &fixedResolver{family: models.Germanic}
	o := New(res, nil, nil, nil, nil)
	doc := &models.Document{Rows: []models.Row{{"a", "b", "c"}}}

	var states []State
	_, err := o.Classify(context.Background(), doc, Options{OnState: func(s State) { states = append(states, s) }}, nil)
	require.ErrorIs(t, err, ErrInvalidTable)
	assert.Zero(t, res.calls.Load(), "no family resolution on invalid input")
	assert.Equal(t, []State{Failed}, states)
}

func TestClassifyUnsupportedLanguageIsFatal(t *testing.T) {
	res := &fixedResolver{err: &langfamily.UnsupportedLanguageError{Code: "ja"}}
	o := New(res, nil, nil, nil, nil)

	var states []State
	progressed := false
	_, err := o.Classify(context.Background(), table(5), Options{
		OnState:    func(s State) { states = append(states, s) },
		OnProgress: func(int, int) { progressed = true },
	}, nil)

	var ule *langfamily.UnsupportedLanguageError
	require.ErrorAs(t, err, &ule)
	assert.EqualError(t, err, "unsupported language: ja")
	assert.Equal(t, []State{ResolvingFamily, Failed}, states)
	assert.False(t, progressed, "no row is classified")
}

func TestClassifyResolvesFamilyOnce(t *testing.T) {
	res := &fixedResolver{family: models.Germanic}
	_, err := New(res, nil, nil, nil, nil).Classify(context.Background(), table(3*BatchSize+7), Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), res.calls.Load())
}

func TestClassifyReportsProgressPerBatch(t *testing.T) {
	total := 2*BatchSize + 10
	var seen [][2]int
	var states []State
	_, err := newOrch(nil, nil).Classify(context.Background(), table(total), Options{
		OnProgress: func(done, all int) { seen = append(seen, [2]int{done, all}) },
		OnState:    func(s State) { states = append(states, s) },
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, total}, {BatchSize, total}, {2 * BatchSize, total}, {total, total}}, seen)
	assert.Equal(t, []State{
		ResolvingFamily, Pending,
		InProgress, Pending,
		InProgress, Pending,
		InProgress, Pending,
		Done,
	}, states)
}

func TestClassifyCheckpointsAndResumesAfterCancel(t *testing.T) {
	doc := table(2*BatchSize + 5)
	store := checkpoint.NewMemoryStore()
	o := newOrch(nil, store)

	ctx, cancel := context.WithCancel(context.Background())
	results := models.Results{}
	_, err := o.Classify(ctx, doc, Options{OnBatch: func(models.Results) { cancel() }}, results)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, BatchSize, "the completed batch survives cancellation")

	saved, err := store.Load(context.Background(), o.RunID(doc, Options{}))
	require.NoError(t, err)
	assert.Len(t, saved, BatchSize)

	var mu sync.Mutex
	computed := 0
	out, err := o.Classify(context.Background(), doc, Options{
		OnRow: func(models.RowResult) { mu.Lock(); computed++; mu.Unlock() },
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, BatchSize+5, computed, "fresh results map is seeded from the store")

	full, err := newOrch(nil, nil).Classify(context.Background(), doc, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, full.Sectors, out.Sectors)
}

func TestClassifyAugmentationWithoutSource(t *testing.T) {
	_, err := newOrch(nil, nil).Classify(context.Background(), table(2), Options{UseAugmentation: true}, nil)
	assert.Error(t, err)
}

func TestValidateColumns(t *testing.T) {
	doc := table(1)
	assert.NoError(t, validate(doc, Options{TextColumns: []int{0, 2}, URLColumn: 3}))
	assert.ErrorIs(t, validate(doc, Options{TextColumns: []int{0, 9}, URLColumn: 3}), ErrInvalidTable)
	assert.ErrorIs(t, validate(doc, Options{TextColumns: []int{0, 3}, URLColumn: 3}), ErrInvalidTable)
	assert.ErrorIs(t, validate(nil, Options{}), ErrInvalidTable)
}

func TestDocumentRunID(t *testing.T) {
	a := DocumentRunID(table(10), "")
	assert.Equal(t, a, DocumentRunID(table(10), ""))
	assert.NotEqual(t, a, DocumentRunID(table(11), ""))
	assert.NotEqual(t, a, DocumentRunID(table(10), "augment=true"))

	// cell boundaries are part of the identity
	x := &models.Document{Rows: []models.Row{{"ab", "c"}}}
	y := &models.Document{Rows: []models.Row{{"a", "bc"}}}
	assert.NotEqual(t, DocumentRunID(x, ""), DocumentRunID(y, ""))
}

type describedPages struct {
	pages
	desc string
}

func (d *describedPages) Describe() string { return d.desc }

func TestRunIDCoversResultSettings(t *testing.T) {
	doc := table(3)
	o := newOrch(nil, nil)
	base := o.RunID(doc, Options{})

	assert.Equal(t, base, o.RunID(doc, Options{Concurrency: 3, OnProgress: func(int, int) {}}))
	assert.Equal(t, base, o.RunID(doc, Options{TextColumns: []int{0, 2}, URLColumn: 3}), "defaults spelled out")
	assert.NotEqual(t, base, o.RunID(doc, Options{UseAugmentation: true}))
	assert.NotEqual(t, base, o.RunID(doc, Options{TextColumns: []int{0}}))
	assert.NotEqual(t, base, o.RunID(doc, Options{TextColumns: []int{0}, URLColumn: 2}))

	token := New(&fixedResolver{family: models.Germanic}, classifier.NewWithMode(classifier.Token), nil, nil, nil)
	assert.NotEqual(t, base, token.RunID(doc, Options{}))

	src := func(desc string) *Orchestrator {
		return New(&fixedResolver{family: models.Germanic}, nil, &describedPages{desc: desc}, nil, nil)
	}
	rootAug := src("policy=domain_root").RunID(doc, Options{UseAugmentation: true})
	assert.NotEqual(t, rootAug, src("policy=as_given").RunID(doc, Options{UseAugmentation: true}))
	assert.Equal(t, src("policy=domain_root").RunID(doc, Options{}), src("policy=as_given").RunID(doc, Options{}),
		"the source only matters when augmenting")
}

func TestClassifyAugmentedRunDoesNotReuseLocalResults(t *testing.T) {
	doc := &models.Document{Rows: []models.Row{{"", "", "", "https://a.example"}}}
	store := checkpoint.NewMemoryStore()
	src := &pages{text: map[string]string{"https://a.example": "hotel flight booking"}}
	o := New(&fixedResolver{family: models.Germanic}, nil, src, store, nil)

	plain, err := o.Classify(context.Background(), doc, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OutOfScope, plain.Sectors[0])

	aug, err := o.Classify(context.Background(), doc, Options{UseAugmentation: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.Travel, aug.Sectors[0])
}

func TestClassifyNoCheckpointLeavesStoreAlone(t *testing.T) {
	doc := table(3)
	store := checkpoint.NewMemoryStore()
	o := newOrch(nil, store)
	require.NoError(t, store.Save(context.Background(), o.RunID(doc, Options{}), models.Results{0: models.Tax}))

	out, err := o.Classify(context.Background(), doc, Options{NoCheckpoint: true}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, models.Tax, out.Sectors[0], "saved results are not loaded")

	saved, err := store.Load(context.Background(), o.RunID(doc, Options{}))
	require.NoError(t, err)
	assert.Equal(t, models.Results{0: models.Tax}, saved, "nothing new is saved")
}

func TestResolveFamily(t *testing.T) {
	o := newOrch(nil, nil)
	f, err := o.ResolveFamily(table(2), Options{})
	require.NoError(t, err)
	assert.Equal(t, models.Germanic, f)

	_, err = o.ResolveFamily(&models.Document{Rows: []models.Row{{"a"}}}, Options{})
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func mustDict(t *testing.T) *keywords.Dictionary {
	t.Helper()
	d, ok := keywords.Lookup(models.Germanic)
	require.True(t, ok)
	return d
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "resolving_family", ResolvingFamily.String())
	assert.Equal(t, "pending", Pending.String())
	assert.True(t, Failed.Terminal())
	assert.False(t, InProgress.Terminal())
}
