// Package orchestrator drives sector classification over a whole table.
//
// A run resolves the language family once, then walks the rows that have no
// result yet in fixed-size batches. Within a batch, URL augmentation fetches
// run concurrently up to the configured limit; scoring is synchronous. Results
// are written by row index after the batch completes, so the outcome does not
// depend on fetch completion order, and are checkpointed before the next batch
// starts. Cancelling between batches loses at most the batch in flight.
package orchestrator

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"porticus/internal/checkpoint"
	"porticus/internal/classifier"
	"porticus/internal/keywords"
	"porticus/internal/models"
	"porticus/pkg/logger"
)

// BatchSize is the number of rows classified between checkpoints.
const BatchSize = 50

// MinColumns is the narrowest table accepted: keyword, (unused), context, url.
const MinColumns = 4

var (
	DefaultTextColumns = []int{0, 2}
	DefaultURLColumn   = 3
)

var ErrInvalidTable = errors.New("invalid table")

type FamilyResolver interface {
	Resolve(doc *models.Document, cols []int) (models.Family, error)
}

// TextSource supplies augmentation text; it must return "" instead of failing.
type TextSource interface {
	FetchText(ctx context.Context, rawURL string) string
}

type Options struct {
	TextColumns []int
	// URLColumn 0 selects DefaultURLColumn; column A always carries keyword text.
	URLColumn       int
	UseAugmentation bool
	Concurrency     int
	// RunID keys checkpoints. Empty means Orchestrator.RunID(doc, opts).
	RunID string
	// NoCheckpoint neither loads nor saves results through the store.
	NoCheckpoint bool

	OnProgress func(completed, total int)
	OnState    func(State)
	// OnBatch receives the accumulated results after each checkpoint.
	OnBatch func(results models.Results)
	// OnRow receives the full per-row record as rows are scored.
	OnRow func(models.RowResult)
}

func (o *Options) applyDefaults() {
	if len(o.TextColumns) == 0 {
		o.TextColumns = DefaultTextColumns
	}
	if o.URLColumn == 0 {
		o.URLColumn = DefaultURLColumn
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 8
	}
}

type Orchestrator struct {
	resolver   FamilyResolver
	classifier *classifier.Classifier
	augmenter  TextSource
	store      checkpoint.Store
	log        *logger.Logger
}

// New wires the collaborators. augmenter and store may be nil: augmentation is
// then unavailable and results are only kept in memory.
func New(r FamilyResolver, c *classifier.Classifier, a TextSource, s checkpoint.Store, l *logger.Logger) *Orchestrator {
	if c == nil {
		c = classifier.New()
	}
	if l == nil {
		l = logger.Nop()
	}
	return &Orchestrator{resolver: r, classifier: c, augmenter: a, store: s, log: l}
}

// ResolveFamily validates the table and returns its language family.
func (o *Orchestrator) ResolveFamily(doc *models.Document, opts Options) (models.Family, error) {
	opts.applyDefaults()
	if err := validate(doc, opts); err != nil {
		return "", err
	}
	return o.resolver.Resolve(doc, opts.TextColumns)
}

// Classify assigns a sector to every row of doc. results may hold rows from a
// previous attempt; those are not recomputed. results is extended in place, so
// after an error it still holds every completed batch.
func (o *Orchestrator) Classify(ctx context.Context, doc *models.Document, opts Options, results models.Results) (*models.ClassifiedDocument, error) {
	opts.applyDefaults()
	if results == nil {
		results = models.Results{}
	}
	if opts.RunID == "" {
		opts.RunID = o.RunID(doc, opts)
	}
	store := o.store
	if opts.NoCheckpoint {
		store = nil
	}
	run := &runState{opts: opts, log: o.log.With("run", opts.RunID)}

	if err := validate(doc, opts); err != nil {
		run.to(Failed)
		return nil, err
	}
	if opts.UseAugmentation && o.augmenter == nil {
		run.to(Failed)
		return nil, errors.New("augmentation requested but no text source configured")
	}

	run.to(ResolvingFamily)
	family, err := o.resolver.Resolve(doc, opts.TextColumns)
	if err != nil {
		run.to(Failed)
		return nil, err
	}
	dict, ok := keywords.Lookup(family)
	if !ok {
		run.to(Failed)
		return nil, fmt.Errorf("no keyword dictionary for family %s", family)
	}

	if store != nil {
		saved, err := store.Load(ctx, opts.RunID)
		if err != nil {
			run.to(Failed)
			return nil, fmt.Errorf("load checkpoint: %w", err)
		}
		results.Merge(saved)
	}

	total := doc.Len()
	pending := results.Missing(total)
	run.log.Infof("family %s, %d rows, %d already classified", family, total, total-len(pending))
	run.progress(total-len(pending), total)
	run.to(Pending)

	for start := 0; start < len(pending); start += BatchSize {
		if err := ctx.Err(); err != nil {
			run.to(Failed)
			return nil, err
		}
		run.to(InProgress)
		end := start + BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch, err := o.classifyBatch(ctx, doc, family, dict, pending[start:end], opts)
		if err != nil {
			run.to(Failed)
			return nil, err
		}
		if store != nil {
			if err := store.Save(ctx, opts.RunID, batch); err != nil {
				run.to(Failed)
				return nil, fmt.Errorf("save checkpoint: %w", err)
			}
		}
		results.Merge(batch)
		run.log.Z().Debug().Int("rows", len(batch)).Int("completed", total-len(pending)+end).Int("total", total).Msg("batch done")
		run.progress(total-len(pending)+end, total)
		if opts.OnBatch != nil {
			opts.OnBatch(results)
		}
		run.to(Pending)
	}

	out := &models.ClassifiedDocument{
		Document: doc,
		Family:   family,
		Sectors:  make([]models.Sector, total),
	}
	for i := range out.Sectors {
		s, ok := results[i]
		if !ok || s == "" {
			s = models.OutOfScope
		}
		out.Sectors[i] = s
	}
	run.to(Done)
	return out, nil
}

func (o *Orchestrator) classifyBatch(ctx context.Context, doc *models.Document, family models.Family, dict *keywords.Dictionary, rows []int, opts Options) (models.Results, error) {
	extra := make([]string, len(rows))
	if opts.UseAugmentation {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for i, row := range rows {
			i, row := i, row
			g.Go(func() error {
				extra[i] = o.augmenter.FetchText(gctx, doc.Cell(row, opts.URLColumn))
				return nil
			})
		}
		_ = g.Wait()
		// fetches cut short by cancellation would degrade rows silently
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	batch := make(models.Results, len(rows))
	for i, row := range rows {
		text := localText(doc, row, opts.TextColumns)
		if extra[i] != "" {
			text += " " + extra[i]
		}
		c := o.classifier.Classify(text, dict)
		batch[row] = c.Sector
		if opts.OnRow != nil {
			opts.OnRow(models.RowResult{
				Index:     row,
				URL:       doc.Cell(row, opts.URLColumn),
				Family:    family,
				Augmented: len(extra[i]),
				Class:     c,
			})
		}
	}
	return batch, nil
}

func localText(doc *models.Document, row int, cols []int) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		if v := doc.Cell(row, c); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func validate(doc *models.Document, opts Options) error {
	if doc == nil {
		return fmt.Errorf("%w: no document", ErrInvalidTable)
	}
	width := doc.Columns()
	if width < MinColumns {
		return fmt.Errorf("%w: %d columns, need at least %d", ErrInvalidTable, width, MinColumns)
	}
	for _, c := range append([]int{opts.URLColumn}, opts.TextColumns...) {
		if c < 0 || c >= width {
			return fmt.Errorf("%w: column %d out of range", ErrInvalidTable, c)
		}
	}
	for _, c := range opts.TextColumns {
		if c == opts.URLColumn {
			return fmt.Errorf("%w: url column %d cannot be a text column", ErrInvalidTable, c)
		}
	}
	return nil
}

var runNamespace = uuid.MustParse("6f1d6c7e-3b0c-4a8e-9a55-5d7a4d2f0c11")

// Describer is implemented by text sources whose output depends on their own
// settings, such as the URL policy or the extractor.
type Describer interface {
	Describe() string
}

// RunID derives the checkpoint key for classifying doc with opts: the table
// contents plus every setting that can change a row's sector. Callbacks and
// concurrency do not take part.
func (o *Orchestrator) RunID(doc *models.Document, opts Options) string {
	opts.applyDefaults()
	variant := fmt.Sprintf("text=%v url=%d match=%s augment=%t",
		opts.TextColumns, opts.URLColumn, o.classifier.Mode(), opts.UseAugmentation)
	if d, ok := o.augmenter.(Describer); ok && opts.UseAugmentation {
		variant += " " + d.Describe()
	}
	return DocumentRunID(doc, variant)
}

// DocumentRunID hashes the table contents and variant into a stable run id.
func DocumentRunID(doc *models.Document, variant string) string {
	h := sha256.New()
	write := func(cells []string) {
		for _, c := range cells {
			fmt.Fprintf(h, "%d:%s", len(c), c)
		}
		h.Write([]byte{'\n'})
	}
	write([]string{variant})
	if doc != nil {
		write(doc.Header)
		for _, r := range doc.Rows {
			write(r)
		}
	}
	return uuid.NewSHA1(runNamespace, h.Sum(nil)).String()
}
