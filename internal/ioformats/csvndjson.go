package ioformats

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"porticus/internal/models"
)

type Format int

const (
	CSV Format = iota
	TSV
	NDJSON
)

func (f Format) String() string {
	switch f {
	case TSV:
		return "tsv"
	case NDJSON:
		return "ndjson"
	}
	return "csv"
}

// FormatFor picks a format from the file extension; unknown extensions are CSV.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return TSV
	case ".ndjson", ".jsonl":
		return NDJSON
	}
	return CSV
}

var ErrEmptyTable = errors.New("empty table")

// ReadTable loads a table file. With hasHeader the first record becomes the header.
func ReadTable(path string, hasHeader bool) (*models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := DecodeTable(f, FormatFor(path), hasHeader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// DecodeTable reads CSV or TSV records, or NDJSON where each line is a JSON array of cells.
func DecodeTable(r io.Reader, format Format, hasHeader bool) (*models.Document, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case NDJSON:
		records, err = readNDJSON(r)
	case TSV:
		records, err = readDelimited(r, '\t')
	default:
		records, err = readDelimited(r, ',')
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	doc := &models.Document{}
	if hasHeader {
		doc.Header, records = records[0], records[1:]
	}
	doc.Rows = make([]models.Row, len(records))
	for i, rec := range records {
		doc.Rows[i] = models.Row(rec)
	}
	return doc, nil
}

func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readNDJSON(r io.Reader) ([][]string, error) {
	var out [][]string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var cells []any
		if err := json.Unmarshal([]byte(text), &cells); err != nil {
			return nil, fmt.Errorf("line %d: expected a JSON array of cells: %w", line, err)
		}
		rec := make([]string, len(cells))
		for i, c := range cells {
			switch v := c.(type) {
			case nil:
			case string:
				rec[i] = v
			default:
				b, _ := json.Marshal(v)
				rec[i] = string(b)
			}
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteCSV writes the table with the Sector column appended.
func WriteCSV(w io.Writer, doc *models.ClassifiedDocument) error {
	header, rows := doc.Table()
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WritePartialCSV atomically replaces path with the table as classified so far.
// Rows without a result have an empty Sector cell.
func WritePartialCSV(path string, doc *models.Document, results models.Results) error {
	cd := &models.ClassifiedDocument{Document: doc, Sectors: make([]models.Sector, doc.Len())}
	for i := range cd.Sectors {
		cd.Sectors[i] = results[i]
	}
	return WriteFileAtomic(path, func(w io.Writer) error { return WriteCSV(w, cd) })
}

// WriteFileAtomic writes to a temp file next to path and renames it into place.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteNDJSON writes any JSON-marshalable items as NDJSON to w.
func WriteNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// WriteRowResults writes one NDJSON record per row of doc. details holds the
// rows scored in this run; rows restored from a checkpoint only carry their sector.
func WriteRowResults(w io.Writer, doc *models.ClassifiedDocument, details map[int]models.RowResult, urlColumn int) error {
	recs := make([]models.RowResult, len(doc.Sectors))
	for i, s := range doc.Sectors {
		rec, ok := details[i]
		if !ok {
			rec = models.RowResult{
				Index:  i,
				URL:    doc.Cell(i, urlColumn),
				Family: doc.Family,
				Class:  models.Classification{Sector: s},
			}
		}
		recs[i] = rec
	}
	return WriteNDJSON(w, recs)
}
