// Package server exposes the report pipeline over an HTTP JSON API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/cache"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/pipeline"
	"github.com/varunisrani/marketscope/internal/questions"
	"github.com/varunisrani/marketscope/internal/report"
)

// Reporter is the part of the pipeline the API drives
type Reporter interface {
	Scrape(ctx context.Context, url string) (string, bool)
	Summarize(ctx context.Context, content, industry string) string
	AnalyzeWebsite(ctx context.Context, companyName, url string) (model.WebsiteProfile, string, bool)
	Questions(ctx context.Context, req questions.Request) []model.Question
	Generate(ctx context.Context, in analysis.Input) (*pipeline.Result, error)
}

// Options configures a Server
type Options struct {
	AllowedOrigins       []string
	MaxConcurrentReports int
	SessionTTL           time.Duration
	Now                  func() time.Time
}

// Server holds the API handlers and their collaborators
type Server struct {
	reporter Reporter
	store    *report.Store
	sessions *cache.QuestionSessions
	gate     *semaphore.Weighted
	origins  []string
	now      func() time.Time
}

// New creates a server
func New(reporter Reporter, store *report.Store, opts Options) *Server {
	if opts.MaxConcurrentReports <= 0 {
		opts.MaxConcurrentReports = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if store == nil {
		store = report.NewStore()
	}
	return &Server{
		reporter: reporter,
		store:    store,
		sessions: cache.NewQuestionSessions(opts.SessionTTL),
		gate:     semaphore.NewWeighted(int64(opts.MaxConcurrentReports)),
		origins:  opts.AllowedOrigins,
		now:      opts.Now,
	}
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	}))
	r.Use(answerOptions)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/detail-levels", s.handleDetailLevels)
		r.Get("/report-types", s.handleReportTypes)
		r.Get("/reports", s.handleReports)
		r.Get("/report-content/*", s.handleReportContent)
		r.Post("/generate-questions", s.handleGenerateQuestions)
		r.Post("/analyze-website", s.handleAnalyzeWebsite)
		r.Post("/generate-report", s.handleGenerateReport)
		r.Post("/market-analysis", s.handleMarketAnalysis)
	})

	return r
}

// answerOptions ends any OPTIONS request that the cors handler let through
func answerOptions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
