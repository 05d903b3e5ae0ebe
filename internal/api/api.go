// Package api exposes table classification over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"porticus/internal/ioformats"
	"porticus/internal/langfamily"
	"porticus/internal/models"
	"porticus/internal/orchestrator"
	"porticus/pkg/logger"
)

// Classifier is the part of the orchestrator the handlers need.
type Classifier interface {
	ResolveFamily(doc *models.Document, opts orchestrator.Options) (models.Family, error)
	Classify(ctx context.Context, doc *models.Document, opts orchestrator.Options, results models.Results) (*models.ClassifiedDocument, error)
}

type Handler struct {
	svc       Classifier
	defaults  orchestrator.Options
	maxUpload int64
	log       *logger.Logger
}

// New builds the handler. defaults supplies columns, concurrency and whether
// augmentation is on when a request does not say.
func New(svc Classifier, defaults orchestrator.Options, maxUpload int64, l *logger.Logger) *Handler {
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}
	if l == nil {
		l = logger.Nop()
	}
	return &Handler{svc: svc, defaults: defaults, maxUpload: maxUpload, log: l}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logRequest(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/family", h.family)
	r.Post("/classify", h.classify)
	return r
}

// POST /family (multipart file=...) -> {"family": "..."}
func (h *Handler) family(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	fam, err := h.svc.ResolveFamily(doc, h.defaults)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"family": fam, "rows": doc.Len()})
}

// POST /classify (multipart file=..., augment=bool, format=csv|ndjson)
func (h *Handler) classify(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	opts := h.defaults
	// each request classifies from scratch; uploads are not resumable
	opts.NoCheckpoint = true
	opts.RunID = ""
	if v := r.FormValue("augment"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "augment must be a boolean"})
			return
		}
		opts.UseAugmentation = b
	}
	format := strings.ToLower(r.FormValue("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "ndjson" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be csv or ndjson"})
		return
	}

	details := map[int]models.RowResult{}
	if format == "ndjson" {
		opts.OnRow = func(rr models.RowResult) { details[rr.Index] = rr }
	}
	opts.OnState = func(s orchestrator.State) {
		h.log.Debugf("%s classify %s", middleware.GetReqID(r.Context()), s)
	}

	out, err := h.svc.Classify(r.Context(), doc, opts, nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("X-Language-Family", string(out.Family))
	if format == "ndjson" {
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
		urlCol := opts.URLColumn
		if urlCol == 0 {
			urlCol = orchestrator.DefaultURLColumn
		}
		if err := ioformats.WriteRowResults(w, out, details, urlCol); err != nil {
			h.log.Warnf("write ndjson: %v", err)
		}
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := ioformats.WriteCSV(w, out); err != nil {
		h.log.Warnf("write csv: %v", err)
	}
}

// readUpload decodes the "file" part. The table has a header row unless the
// form sets header=false.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*models.Document, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart parse error"})
		return nil, false
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file part 'file' required"})
		return nil, false
	}
	defer f.Close()

	hasHeader := true
	if v := r.FormValue("header"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			hasHeader = b
		}
	}
	doc, err := ioformats.DecodeTable(f, ioformats.FormatFor(fh.Filename), hasHeader)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("read table: %v", err)})
		return nil, false
	}
	return doc, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ule *langfamily.UnsupportedLanguageError
	switch {
	case errors.Is(err, orchestrator.ErrInvalidTable), errors.As(err, &ule):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		h.log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "classification failed"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(l *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			l.Infof("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
		})
	}
}
