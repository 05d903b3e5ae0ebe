package parser

import (
	"bytes"
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"porticus/internal/models"
)

// Mode selects how body text is produced.
type Mode int

const (
	// Visible keeps every text node outside script, style, noscript and template.
	Visible Mode = iota
	// Article keeps only the main readable content, falling back to Visible.
	Article
)

func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "visible":
		return Visible, true
	case "article":
		return Article, true
	}
	return Visible, false
}

func (m Mode) String() string {
	if m == Article {
		return "article"
	}
	return "visible"
}

type Parser struct {
	mode Mode
}

func New() *Parser { return &Parser{} }

func NewWithMode(m Mode) *Parser { return &Parser{mode: m} }

// String names the extraction mode.
func (p *Parser) String() string { return p.mode.String() }

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extract decodes r to UTF-8 and renders it into a Page. pageURL may be empty;
// it is only used to resolve links in Article mode.
func (p *Parser) Extract(r io.Reader, contentType, pageURL string) (models.Page, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return models.Page{}, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return models.Page{}, err
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return models.Page{}, err
	}

	doc.Find("script,noscript,style,template").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	page := models.Page{Meta: meta(doc)}

	text := ""
	if p.mode == Article {
		text = article(utf8data, pageURL)
	}
	if text == "" {
		text = visibleText(doc.Find("body"))
	}

	lang := strings.TrimSpace(doc.Find("html").AttrOr("lang", ""))
	if lang == "" {
		lang = page.Meta.OG["og:locale"]
	}

	page.Content = models.Content{
		Text:     text,
		Language: lang,
	}
	if text != "" {
		page.Content.WordCount = len(strings.Fields(text))
	}
	doc.Find("h1,h2,h3").Each(func(i int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if t != "" {
			page.Content.Headings = append(page.Content.Headings, t)
		}
	})
	return page, nil
}

func meta(doc *goquery.Document) models.Meta {
	m := models.Meta{
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		Canonical: strings.TrimSpace(doc.Find(`link[rel="canonical"]`).AttrOr("href", "")),
		H1:        strings.TrimSpace(doc.Find("h1").First().Text()),
		OG:        map[string]string{},
	}
	m.Description = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if m.Description == "" {
		m.Description = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	if kw := doc.Find(`meta[name="keywords"]`).AttrOr("content", ""); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			trim := strings.ToLower(strings.TrimSpace(k))
			if trim != "" {
				m.Keywords = append(m.Keywords, trim)
			}
		}
	}
	doc.Find(`meta[property^="og:"]`).Each(func(i int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		if prop != "" && content != "" {
			m.OG[prop] = content
		}
	})
	doc.Find("h2").Each(func(i int, s *goquery.Selection) {
		txt := strings.TrimSpace(s.Text())
		if txt != "" {
			m.H2 = append(m.H2, txt)
		}
	})
	return m
}

// visibleText joins text nodes with spaces so adjacent block elements do not
// run their words together.
func visibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.Join(parts, " "), " "))
}

func article(data []byte, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		u = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}
	}
	a, err := readability.FromReader(bytes.NewReader(data), u)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(a.TextContent, " "))
}
