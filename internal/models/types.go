package models

// Sector is a business-domain label assigned to a row.
type Sector string

const (
	Education Sector = "Education"
	Finance   Sector = "Finance"
	Medical   Sector = "Medical"
	Retail    Sector = "Retail"
	Tax       Sector = "Tax"
	Travel    Sector = "Travel"
	Vehicle   Sector = "Vehicle"

	// OutOfScope is assigned when no sector keyword matched.
	OutOfScope Sector = "Out of domain scope"
)

// Sectors is the fixed enumeration order. Ties in scoring go to the earlier entry.
var Sectors = []Sector{Education, Finance, Medical, Retail, Tax, Travel, Vehicle}

func (s Sector) Valid() bool {
	if s == OutOfScope {
		return true
	}
	for _, v := range Sectors {
		if v == s {
			return true
		}
	}
	return false
}

// Family is a coarse language grouping selecting a keyword dictionary.
type Family string

const (
	Germanic Family = "germanic"
	Romance  Family = "romance"
	Slavic   Family = "slavic"
	Baltic   Family = "baltic"
	Celtic   Family = "celtic"
	Uralic   Family = "uralic"
)

var Families = []Family{Germanic, Romance, Slavic, Baltic, Celtic, Uralic}

// Row is one table record; cells are addressed by zero-based column index.
type Row []string

// Document is an ordered, read-only table. Row identity is its index in Rows.
type Document struct {
	Header []string `json:"header,omitempty"`
	Rows   []Row    `json:"rows"`
}

func (d *Document) Len() int { return len(d.Rows) }

// Columns reports the widest of the header and every row.
func (d *Document) Columns() int {
	n := len(d.Header)
	for _, r := range d.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// Cell returns the value at (row, col), or "" when the row is short.
func (d *Document) Cell(row, col int) string {
	if row < 0 || row >= len(d.Rows) {
		return ""
	}
	r := d.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Results maps row index to its assigned sector.
type Results map[int]Sector

// Missing returns the indexes in [0,total) that have no result yet, in order.
func (r Results) Missing(total int) []int {
	var out []int
	for i := 0; i < total; i++ {
		if _, ok := r[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// Merge copies entries from other that are absent in r.
func (r Results) Merge(other Results) {
	for k, v := range other {
		if _, ok := r[k]; !ok {
			r[k] = v
		}
	}
}

type Classification struct {
	Sector  Sector              `json:"sector"`
	Scores  map[Sector]int      `json:"scores,omitempty"`
	Matched map[Sector][]string `json:"matched,omitempty"`
}

// RowResult is the per-row record emitted as NDJSON.
type RowResult struct {
	Index     int            `json:"index"`
	URL       string         `json:"url,omitempty"`
	Family    Family         `json:"family"`
	Augmented int            `json:"augmentedChars,omitempty"`
	Class     Classification `json:"class"`
}

// ClassifiedDocument is the input table plus one Sector per row.
type ClassifiedDocument struct {
	*Document
	Family  Family   `json:"family"`
	Sectors []Sector `json:"sectors"`
}

// SectorColumn is the header of the derived output column.
const SectorColumn = "Sector"

// Table renders header and rows with the Sector column appended.
func (c *ClassifiedDocument) Table() ([]string, [][]string) {
	width := c.Columns()
	var header []string
	if len(c.Header) > 0 {
		header = make([]string, width, width+1)
		copy(header, c.Header)
		header = append(header, SectorColumn)
	}
	rows := make([][]string, len(c.Rows))
	for i, r := range c.Rows {
		out := make([]string, width, width+1)
		copy(out, r)
		sector := ""
		if i < len(c.Sectors) {
			sector = string(c.Sectors[i])
		}
		rows[i] = append(out, sector)
	}
	return header, rows
}

type Meta struct {
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Keywords    []string          `json:"keywords,omitempty"`
	OG          map[string]string `json:"og,omitempty"`
	Canonical   string            `json:"canonical,omitempty"`
	H1          string            `json:"h1,omitempty"`
	H2          []string          `json:"h2,omitempty"`
}

type Content struct {
	Text      string   `json:"text,omitempty"`
	WordCount int      `json:"wordCount,omitempty"`
	Language  string   `json:"language,omitempty"`
	Headings  []string `json:"headings,omitempty"`
}

type Page struct {
	Meta    Meta    `json:"meta"`
	Content Content `json:"content"`
}
