package handler

import (
	"net/http"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/service"
	"github.com/hrpulse/hrpulse-backend/pkg/httputil"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
)

// GenerationHandler serves the dataset preparation endpoints
type GenerationHandler struct {
	service *service.GenerationService
	logger  *logger.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(svc *service.GenerationService, log *logger.Logger) *GenerationHandler {
	return &GenerationHandler{
		service: svc,
		logger:  log,
	}
}

// RunRequest is the POST body for a generation run
type RunRequest struct {
	Seed         *int64  `json:"seed,omitempty"`
	AsOf         *string `json:"as_of,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SkipBackfill bool    `json:"skip_backfill,omitempty"`
}

// Run starts a synchronous generation run and returns its summary
func (h *GenerationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	svcReq := service.RunRequest{
		Seed:         req.Seed,
		SkipBackfill: req.SkipBackfill,
	}
	if req.AsOf != nil {
		t, _ := time.Parse("2006-01-02", *req.AsOf)
		svcReq.AsOf = &t
	}

	result, err := h.service.Run(r.Context(), svcReq)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	h.logger.Info().
		Str("run_id", result.RunID).
		Str("subject", httputil.GetSubject(r.Context())).
		Msg("generation run triggered")

	httputil.JSON(w, http.StatusCreated, result)
}

// Backfill runs the identity backfill on its own
func (h *GenerationHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Backfill(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}
