package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/internal/config"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/internal/logger"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/patientengine"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/records"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/rules"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/translate"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/trends"
)

type Server struct {
	db         *sql.DB // nil when running on in-memory stores
	store      records.Store
	engines    *patientengine.Manager
	analyzer   *trends.Analyzer
	translator *translate.Translator
	tokens     *tokenStore
	router     *chi.Mux
}

func NewServer(cfg *config.Config) (*Server, error) {
	var remote translate.Remote
	if cfg.TranslateURL != "" {
		remote = translate.NewClient(translate.ClientConfig{
			BaseURL: cfg.TranslateURL,
			APIKey:  cfg.TranslateAPIKey,
			Timeout: cfg.TranslateTimeout,
		})
	}
	translator := translate.NewTranslator(remote, translate.NewLRUCache(cfg.TranslateCache))

	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, running on in-memory stores")
		store := records.NewInMemoryStore()
		engines := patientengine.NewManagerWithStores(func(string) rules.RuleStore {
			return rules.NewInMemoryRuleStore()
		})
		return newServer(nil, store, engines, translator), nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s, err := NewServerWithDB(db)
	if err != nil {
		return nil, err
	}
	s.translator = translator
	return s, nil
}

// NewServerWithDB builds a server over an existing database connection.
// Used directly by the integration tests.
func NewServerWithDB(db *sql.DB) (*Server, error) {
	engines := patientengine.NewManager(db)
	logger.Info("loading patient rule engines")
	if err := engines.LoadAllPatients(); err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}
	logger.Info("patient engines loaded", "count", len(engines.ListPatients()))
	return newServer(db, records.NewPostgresStore(db), engines, translate.NewTranslator(nil, nil)), nil
}

func newServer(db *sql.DB, store records.Store, engines *patientengine.Manager, translator *translate.Translator) *Server {
	s := &Server{
		db:         db,
		store:      store,
		engines:    engines,
		analyzer:   trends.NewAnalyzer(store),
		translator: translator,
		tokens:     newTokenStore(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(slowRequestCounter)

	r.Get("/api/v1/health", s.handleHealth)
	r.Get("/api/v1/metrics", s.handleMetrics)
	r.Post("/api/v1/auth/signup", s.handleSignup)
	r.Post("/api/v1/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Route("/api/v1/logs", func(r chi.Router) {
			r.Get("/", s.handleListLogs)
			r.Get("/weekly-stats", s.handleWeeklyStats)
			r.Post("/glucose", s.handleLogGlucose)
			r.Post("/bp", s.handleLogBP)
			r.Post("/food", s.handleLogFood)
			r.Post("/activity", s.handleLogActivity)
			r.Post("/water", s.handleLogWater)
		})

		r.Get("/api/v1/me", s.handleMe)
		r.Get("/api/v1/care-plan", s.handleCarePlan)
		r.Post("/api/v1/hba1c", s.handleLogHbA1c)
		r.Get("/api/v1/hba1c", s.handleHbA1cHistory)
		r.Get("/api/v1/water/today", s.handleWaterToday)
		r.Get("/api/v1/travel-checklist", s.handleTravelChecklist)
		r.Get("/api/v1/trends", s.handleTrends)
		r.Get("/api/v1/trends/glucose", s.handleGlucoseTrends)
		r.Get("/api/v1/trends/bp", s.handleBPTrends)
		r.Get("/api/v1/weekly-adjustments", s.handleWeeklyAdjustments)

		r.Route("/api/v1/reminders", func(r chi.Router) {
			r.Get("/", s.handleListReminders)
			r.Post("/", s.handleCreateReminder)
			r.Delete("/{reminderId}", s.handleDeleteReminder)
		})

		r.Route("/api/v1/medications", func(r chi.Router) {
			r.Get("/", s.handleListMedications)
			r.Post("/", s.handleCreateMedication)
			r.Delete("/{medicationId}", s.handleDeleteMedication)
			r.Post("/{medicationId}/intake", s.handleMedicationIntake)
		})

		r.Route("/api/v1/appointments", func(r chi.Router) {
			r.Get("/", s.handleListAppointments)
			r.Post("/", s.handleCreateAppointment)
			r.Post("/{appointmentId}/complete", s.handleCompleteAppointment)
		})

		r.Route("/api/v1/rules", func(r chi.Router) {
			r.Get("/", s.handleListRules)
			r.Post("/", s.handleCreateRule)
			r.Get("/{ruleId}", s.handleGetRule)
			r.Put("/{ruleId}", s.handleUpdateRule)
			r.Delete("/{ruleId}", s.handleDeleteRule)
		})

		r.Post("/api/v1/evaluate", s.handleEvaluate)
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		EnginesLoaded: len(s.engines.ListPatients()),
		Time:          time.Now(),
	})
}

// slowRequestThreshold marks requests worth flagging in the metrics.
const slowRequestThreshold = 2 * time.Second

func slowRequestCounter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if time.Since(start) > slowRequestThreshold {
			logger.CountSlowRequest()
		}
	})
}

// handleMetrics reports the process-wide log counters.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, MetricsResponse{
		LogLevel:       logger.GetLevel().String(),
		TotalErrors:    logger.TotalErrors.Load(),
		TotalWarnings:  logger.TotalWarnings.Load(),
		Total5xxErrors: logger.Total5xxErrors.Load(),
		Total4xxErrors: logger.Total4xxErrors.Load(),
		SlowRequests:   logger.SlowRequests.Load(),
	})
}

// localize translates user-facing text into the language requested via
// the lang query parameter. English and unknown languages pass through.
func (s *Server) localize(r *http.Request, text string) string {
	lang := r.URL.Query().Get("lang")
	if lang == "" || lang == "en" || text == "" {
		return text
	}
	return s.translator.TranslateAsync(r.Context(), text, lang)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
	logger.CountHTTPStatus(status)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	respondJSON(w, status, resp)
}

func main() {
	cfg := config.Load()
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	server, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}
	if server.db != nil {
		defer server.db.Close()
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
