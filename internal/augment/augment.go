// Package augment turns a row's URL into extra text for scoring.
//
// FetchText never fails: invalid URLs, non-HTTP(S) schemes, network errors,
// timeouts, bad status codes and unparseable markup all produce "". Results,
// including empty ones, are cached per target URL for a bounded time and count.
package augment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"

	"porticus/internal/models"
	"porticus/internal/normalize"
	"porticus/pkg/logger"
)

// Policy decides which URL is fetched for a row.
type Policy int

const (
	// DomainRoot fetches https://<registered domain>/ and ignores the path.
	DomainRoot Policy = iota
	// Exact fetches the URL as given with any fragment removed.
	Exact
)

// ParsePolicy reads a policy name. Unknown names report false and DomainRoot.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "root", "domain", "domain_root":
		return DomainRoot, true
	case "exact":
		return Exact, true
	}
	return DomainRoot, false
}

func (p Policy) String() string {
	if p == Exact {
		return "exact"
	}
	return "domain_root"
}

// ErrSkip marks a cell value that is not an http(s) URL.
var ErrSkip = errors.New("url not fetchable")

// Fetcher retrieves a page body along with the final URL after redirects, the
// content type and the elapsed time.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, string, time.Duration, error)
}

// Extractor renders a fetched body into a Page.
type Extractor interface {
	Extract(r io.Reader, contentType, pageURL string) (models.Page, error)
}

// Options tune an Augmenter. Zero values get defaults.
type Options struct {
	Policy     Policy
	Timeout    time.Duration
	CacheTTL   time.Duration
	MaxEntries int
}

func (o *Options) applyDefaults() {
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = time.Hour
	}
	if o.MaxEntries <= 0 {
		o.MaxEntries = 10000
	}
}

type Augmenter struct {
	fetcher   Fetcher
	extractor Extractor
	opts      Options
	cache     *cache.Cache
	inflight  singleflight.Group
	log       *logger.Logger
}

// New builds an Augmenter over f and e. l may be nil.
func New(f Fetcher, e Extractor, opts Options, l *logger.Logger) *Augmenter {
	opts.applyDefaults()
	if l == nil {
		l = logger.Nop()
	}
	return &Augmenter{
		fetcher:   f,
		extractor: e,
		opts:      opts,
		cache:     cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		log:       l,
	}
}

// FetchText returns the normalized visible text behind rawURL, or "".
func (a *Augmenter) FetchText(ctx context.Context, rawURL string) string {
	target, err := TargetURL(rawURL, a.opts.Policy)
	if err != nil {
		return ""
	}
	if v, ok := a.cache.Get(target); ok {
		return v.(string)
	}
	v, _, _ := a.inflight.Do(target, func() (any, error) {
		if v, ok := a.cache.Get(target); ok {
			return v, nil
		}
		text := a.fetch(ctx, target)
		// a cancelled caller says nothing about the page, do not remember it
		if ctx.Err() == nil {
			a.remember(target, text)
		}
		return text, nil
	})
	return v.(string)
}

// Describe names the settings that shape the returned text.
func (a *Augmenter) Describe() string {
	d := "policy=" + a.opts.Policy.String()
	if s, ok := a.extractor.(fmt.Stringer); ok {
		d += " extractor=" + s.String()
	}
	return d
}

func (a *Augmenter) fetch(ctx context.Context, target string) (text string) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	body, finalURL, ct, _, err := a.fetcher.Fetch(ctx, target)
	if err != nil {
		a.log.Debugf("augment fetch %s: %v", target, err)
		return ""
	}
	defer body.Close()
	defer func() {
		if p := recover(); p != nil {
			a.log.Warnf("augment extract %s panicked: %v", target, p)
			text = ""
		}
	}()

	page, err := a.extractor.Extract(body, ct, finalURL)
	if err != nil {
		a.log.Debugf("augment parse %s: %v", target, err)
		return ""
	}
	return normalize.Text(strings.Join([]string{
		page.Meta.Title, page.Meta.Description, strings.Join(page.Meta.Keywords, " "), page.Content.Text,
	}, " "))
}

func (a *Augmenter) remember(key, text string) {
	if a.cache.ItemCount() >= a.opts.MaxEntries {
		a.cache.DeleteExpired()
		if a.cache.ItemCount() >= a.opts.MaxEntries {
			return
		}
	}
	a.cache.SetDefault(key, text)
}

// CacheLen reports the number of cached URLs, expired or not.
func (a *Augmenter) CacheLen() int { return a.cache.ItemCount() }

// TargetURL applies the policy to a raw cell value. Values without a scheme,
// including host:port forms, are treated as https hosts; any scheme other than
// http(s) yields ErrSkip.
func TargetURL(raw string, p Policy) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrSkip
	}
	u, err := url.Parse(raw)
	if !strings.Contains(raw, "://") && (err != nil || u.Scheme == "" || hasPort(raw)) {
		u, err = url.Parse("https://" + raw)
	}
	if err != nil || u.Host == "" {
		return "", ErrSkip
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrSkip
	}
	u.Fragment = ""
	u.RawFragment = ""

	if p == Exact {
		return u.String(), nil
	}
	host := strings.ToLower(u.Hostname())
	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil || net.ParseIP(host) != nil {
		// IPs, localhost and bare suffixes keep their host as is
		root = u.Host
	} else if port := u.Port(); port != "" {
		root += ":" + port
	}
	return (&url.URL{Scheme: u.Scheme, Host: root, Path: "/"}).String(), nil
}

// hasPort reports whether raw starts with host:port, which url.Parse would
// otherwise read as a scheme.
func hasPort(raw string) bool {
	i := strings.IndexByte(raw, ':')
	return i > 0 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '9'
}
