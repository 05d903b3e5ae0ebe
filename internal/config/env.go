package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Env is a prefix-scoped view over environment variables.
type Env struct {
	prefix string
	lookup func(string) (string, bool)
}

func FromEnv(prefix string) Env { return Env{prefix: prefix, lookup: os.LookupEnv} }

// FromMap is used by tests.
func FromMap(prefix string, m map[string]string) Env {
	return Env{prefix: prefix, lookup: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

func (e Env) key(k string) string { return e.prefix + k }

func (e Env) get(k string) (string, bool) {
	v, ok := e.lookup(e.key(k))
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Overlay replaces fields of cfg for every variable that is set.
func (e Env) Overlay(cfg *Config) error {
	var errs []error
	str := func(k string, dst *string) {
		if v, ok := e.get(k); ok {
			*dst = strings.ToLower(v)
		}
	}
	num := func(k string, dst *int) {
		if v, ok := e.get(k); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", e.key(k), err))
				return
			}
			*dst = n
		}
	}
	boolean := func(k string, dst *bool) {
		if v, ok := e.get(k); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", e.key(k), err))
				return
			}
			*dst = b
		}
	}
	dur := func(k string, dst *time.Duration) {
		if v, ok := e.get(k); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", e.key(k), err))
				return
			}
			*dst = d
		}
	}

	if v, ok := e.get("CLASSIFY_TEXT_COLUMNS"); ok {
		cols, err := parseInts(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.key("CLASSIFY_TEXT_COLUMNS"), err))
		} else {
			cfg.Classify.TextColumns = cols
		}
	}
	num("CLASSIFY_URL_COLUMN", &cfg.Classify.URLColumn)
	boolean("CLASSIFY_USE_AUGMENTATION", &cfg.Classify.UseAugmentation)
	num("CLASSIFY_CONCURRENCY", &cfg.Classify.Concurrency)
	str("CLASSIFY_MATCH_MODE", &cfg.Classify.MatchMode)

	dur("FETCH_TIMEOUT", &cfg.Fetch.Timeout)
	dur("FETCH_DIAL_TIMEOUT", &cfg.Fetch.DialTimeout)
	if v, ok := e.get("FETCH_MAX_BODY_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.key("FETCH_MAX_BODY_BYTES"), err))
		} else {
			cfg.Fetch.MaxBodyBytes = n
		}
	}
	str("FETCH_URL_POLICY", &cfg.Fetch.URLPolicy)
	str("FETCH_EXTRACTOR", &cfg.Fetch.Extractor)
	if v, ok := e.get("FETCH_RATE_PER_SECOND"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.key("FETCH_RATE_PER_SECOND"), err))
		} else {
			cfg.Fetch.RatePerSecond = f
		}
	}
	dur("FETCH_CACHE_TTL", &cfg.Fetch.CacheTTL)
	num("FETCH_CACHE_ENTRIES", &cfg.Fetch.CacheEntries)

	if v, ok := e.get("STORE_PATH"); ok {
		cfg.Store.Path = v
	}
	if v, ok := e.get("SERVER_ADDR"); ok {
		cfg.Server.Addr = v
	}
	dur("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	return errors.Join(errs...)
}

// parseInts reads a comma separated list such as "0,2".
func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
