package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/analytics"
	"github.com/hrpulse/hrpulse-backend/pkg/httputil"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
)

// AnalyticsHandler serves the derived-view endpoints
type AnalyticsHandler struct {
	engine *analytics.Engine
	logger *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(engine *analytics.Engine, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		engine: engine,
		logger: log,
	}
}

// ============================================================================
// REVIEW VIEWS
// ============================================================================

// LatestReviews returns each employee's most recent review
func (h *AnalyticsHandler) LatestReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.LatestReviews(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// BelowDepartmentAverage returns reviews scoring under their department mean
func (h *AnalyticsHandler) BelowDepartmentAverage(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.BelowDepartmentAverage(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// MonthlyScoreTrend returns the per-month mean review score series
func (h *AnalyticsHandler) MonthlyScoreTrend(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.MonthlyScoreTrend(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// ReviewerComparisons contrasts reviewers' given averages with their own scores
func (h *AnalyticsHandler) ReviewerComparisons(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.ReviewerComparisons(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// ============================================================================
// DEPARTMENT AND COHORT VIEWS
// ============================================================================

// DepartmentScoreRanking returns departments ranked by mean review score
func (h *AnalyticsHandler) DepartmentScoreRanking(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.DepartmentScoreRanking(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// TenureBandSummary returns income stats per (job role, tenure band) cohort
func (h *AnalyticsHandler) TenureBandSummary(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.TenureBandSummary(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// DepartmentIncomeRollup returns per-department income stats plus a total row
func (h *AnalyticsHandler) DepartmentIncomeRollup(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.DepartmentIncomeRollup(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// ============================================================================
// COVERAGE AND ENGAGEMENT VIEWS
// ============================================================================

// CoverageGap returns employee ids in one fact table but not another
func (h *AnalyticsHandler) CoverageGap(w http.ResponseWriter, r *http.Request) {
	in := analytics.FactTable(r.URL.Query().Get("in"))
	notIn := analytics.FactTable(r.URL.Query().Get("not_in"))

	out, err := h.engine.CoverageGap(r.Context(), in, notIn)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// RunningEngagement returns per-employee running engagement averages
func (h *AnalyticsHandler) RunningEngagement(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.RunningEngagementAverages(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// SurveyEngagement returns the per-survey breakdown of response scores
func (h *AnalyticsHandler) SurveyEngagement(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.SurveyEngagementSummaries(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}

// WithoutRecentTraining returns employees with no training since the cutoff.
// The window defaults to one year and is tunable via cutoff_days.
func (h *AnalyticsHandler) WithoutRecentTraining(w http.ResponseWriter, r *http.Request) {
	cutoffDays := 365
	if v, err := strconv.Atoi(r.URL.Query().Get("cutoff_days")); err == nil && v > 0 {
		cutoffDays = v
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -cutoffDays)

	out, err := h.engine.WithoutRecentTraining(r.Context(), cutoff)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSONWithMeta(w, http.StatusOK, out, &httputil.Meta{Rows: len(out)})
}
