package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/campuswell/stresslens/config"
	"github.com/campuswell/stresslens/internal/analysis/behavior"
	"github.com/campuswell/stresslens/internal/analysis/fusion"
	"github.com/campuswell/stresslens/internal/analysis/text"
	"github.com/campuswell/stresslens/internal/db"
	"github.com/campuswell/stresslens/internal/models"
	"github.com/campuswell/stresslens/internal/preprocess"
	"github.com/campuswell/stresslens/internal/privacy"
	"github.com/campuswell/stresslens/internal/validation"
)

// API carries the analysis components behind the HTTP surface. Health flags
// are flipped by the monitoring goroutines, not by request handlers.
type API struct {
	settings  *config.Settings
	text      *text.Extractor
	behavior  *behavior.Extractor
	scorer    *fusion.Scorer
	mechanism *privacy.Mechanism

	TextHealthy     atomic.Bool
	BehaviorHealthy atomic.Bool
	ScorerHealthy   atomic.Bool
}

func NewAPI() *API {
	settings := config.GetSettings()

	api := &API{
		settings: settings,
		text:     text.NewExtractor(),
		behavior: behavior.NewExtractor(),
		scorer: fusion.NewScorer(fusion.Thresholds{
			Medium: settings.StressThresholdMedium,
			High:   settings.StressThresholdHigh,
		}),
	}

	if settings.EnableDifferentialPrivacy {
		api.mechanism = privacy.NewMechanism(settings.PrivacyEpsilon)
	}

	api.TextHealthy.Store(true)
	api.BehaviorHealthy.Store(true)
	api.ScorerHealthy.Store(true)

	return api
}

// Self tests for the monitoring goroutines.
func (a *API) TextSelfTest() error     { return a.text.SelfTest() }
func (a *API) BehaviorSelfTest() error { return a.behavior.SelfTest() }
func (a *API) ScorerSelfTest() error   { return a.scorer.SelfTest() }

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze-text", a.AnalyzeText)
		r.Post("/analyze-behavior", a.AnalyzeBehavior)
		r.Post("/stress-score", a.StressScore)
		r.Get("/model-info", a.ModelInfo)
		r.Get("/users/{userID}/assessments", a.UserAssessments)
	})
	r.Get("/health", a.Health)

	return r
}

type textAnalysisResponse struct {
	Signals       models.TextSignals `json:"signals"`
	PolarityScore float64            `json:"polarity_score"`
	PolarityLabel string             `json:"polarity_label"`
}

func (a *API) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req models.TextAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.UserID != "" {
		if err := validation.ValidateUserID(req.UserID); err != nil {
			writeValidationError(w, err)
			return
		}
	}
	if err := validation.ValidateText(req.Text, a.settings.MaxTextLength); err != nil {
		writeValidationError(w, err)
		return
	}

	plain := preprocess.MarkdownToPlain(preprocess.StripLinks(req.Text))
	signals := a.text.Analyze(plain)
	score, label := preprocess.Polarity(plain)

	writeJSON(w, http.StatusOK, textAnalysisResponse{
		Signals:       signals,
		PolarityScore: score,
		PolarityLabel: label,
	})
}

func (a *API) AnalyzeBehavior(w http.ResponseWriter, r *http.Request) {
	var req models.BehaviorAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := validation.ValidateUserID(req.UserID); err != nil {
		writeValidationError(w, err)
		return
	}

	windowDays := req.TimeWindowDays
	if windowDays == 0 {
		windowDays = config.DEFAULT_TIME_WINDOW_DAYS
	}

	signals, err := a.behavior.Analyze(req.Activity, windowDays)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signals)
}

func (a *API) StressScore(w http.ResponseWriter, r *http.Request) {
	var req models.StressScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := validation.ValidateUserID(req.UserID); err != nil {
		writeValidationError(w, err)
		return
	}

	assessment, err := a.scorer.CalculateScore(req.TextFeatures, req.BehaviorFeatures)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	if a.mechanism != nil {
		assessment = a.mechanism.Protect(assessment)
	}
	assessment = privacy.Sanitize(assessment)

	writeJSON(w, http.StatusOK, assessment)
}

// UserAssessments returns the stored assessment history for one user,
// newest first. Records were noised before storage, so they are returned
// as-is.
func (a *API) UserAssessments(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := validation.ValidateUserID(userID); err != nil {
		writeValidationError(w, err)
		return
	}

	records, err := db.GetAssessmentsForUser(r.Context(), userID)
	if err != nil {
		slog.Error("[API] Failed to fetch assessments",
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if records == nil {
		records = []models.AssessmentRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

type modelInfoResponse struct {
	TextExtractor     text.Capabilities     `json:"text_extractor"`
	BehaviorExtractor behavior.Capabilities `json:"behavior_extractor"`
	FusionScorer      fusion.Capabilities   `json:"fusion_scorer"`
	PrivacyEnabled    bool                  `json:"privacy_enabled"`
}

func (a *API) ModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modelInfoResponse{
		TextExtractor:     a.text.Capabilities(),
		BehaviorExtractor: a.behavior.Capabilities(),
		FusionScorer:      a.scorer.Capabilities(),
		PrivacyEnabled:    a.mechanism != nil,
	})
}

type healthResponse struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components"`
	Timestamp  time.Time       `json:"timestamp"`
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]bool{
		"text_extractor":     a.TextHealthy.Load(),
		"behavior_extractor": a.BehaviorHealthy.Load(),
		"fusion_scorer":      a.ScorerHealthy.Load(),
	}

	status := "ok"
	code := http.StatusOK
	for _, healthy := range components {
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, healthResponse{
		Status:     status,
		Components: components,
		Timestamp:  time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[API] Failed to encode response",
			slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, models.ErrorResponse{Error: message})
}

func writeValidationError(w http.ResponseWriter, err error) {
	if errors.Is(err, validation.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("[API] Unexpected handler error",
		slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal error")
}
