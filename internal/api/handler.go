// Package api serves questions and tags over HTTP.
package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"meister/internal/question"
	"meister/internal/store"
	"meister/internal/verbose"
)

// DefaultRequestTimeout bounds a single request, simulated latency included.
const DefaultRequestTimeout = 30 * time.Second

// Config wires dependencies for the HTTP handler.
type Config struct {
	Store          store.Store
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         *verbose.Logger
}

// NewHandler builds the chi router for the question API.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("api: store is required")
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &handler{store: cfg.Store, logger: cfg.Logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if cfg.Logger.Enabled() {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  log.New(cfg.Logger.Writer(verbose.StyleDefault), "", 0),
			NoColor: true,
		}))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	r.Get("/healthz", h.handleHealth)
	r.Get("/questions", h.handleQuestionsPage)
	r.Route("/v1", func(v chi.Router) {
		v.Get("/questions", h.handleQuestions)
		v.Get("/tags", h.handleTags)
	})
	return r, nil
}

type handler struct {
	store  store.Store
	logger *verbose.Logger
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := parsePage(query.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	tags := question.NormalizeTags(parseTags(query["tags"]))
	questions, err := h.store.FetchQuestions(r.Context(), tags, page)
	if err != nil {
		h.logger.Errorf("fetch questions tags=%s: %v", verbose.FormatTags(tags), err)
		writeError(w, http.StatusInternalServerError, "backend_error")
		return
	}
	records := make([]question.BankRecord, 0, len(questions))
	for _, q := range questions {
		records = append(records, q.Record())
	}
	writeJSON(w, http.StatusOK, questionsResponse{Page: page, Tags: tags, Questions: records})
}

func (h *handler) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.store.Tags(r.Context())
	if err != nil {
		h.logger.Errorf("list tags: %v", err)
		writeError(w, http.StatusInternalServerError, "backend_error")
		return
	}
	writeJSON(w, http.StatusOK, tagsResponse{Tags: tags})
}

// parseTags accepts both ?tags=a,b and repeated ?tags=a&tags=b.
func parseTags(values []string) []string {
	var tags []string
	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			if strings.TrimSpace(tag) != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// parsePage treats a missing or non-positive page as the first page.
func parsePage(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if page < 1 {
		page = 1
	}
	return page, nil
}
