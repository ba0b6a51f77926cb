package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
	"github.com/hrpulse/hrpulse-backend/internal/hr/handler"
	"github.com/hrpulse/hrpulse-backend/internal/hr/identity"
	"github.com/hrpulse/hrpulse-backend/internal/hr/service"
	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
	"github.com/hrpulse/hrpulse-backend/pkg/config"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
	"github.com/hrpulse/hrpulse-backend/pkg/testutil"
)

func newGenerationHandler() (*handler.GenerationHandler, *store.MemoryStore) {
	s := store.NewMemoryStore()
	log := logger.New("test", "test")
	assigner := identity.NewAssigner(s, "hrpulse.io", log)
	cfg := config.GeneratorConfig{
		ReviewWindowMonths:       18,
		MinReviewMonths:          2,
		MaxReviewMonths:          4,
		ScoreMin:                 1,
		ScoreMax:                 5,
		TrainingLookbackDays:     365,
		BenefitLookbackDays:      1460,
		MinBenefits:              1,
		MaxBenefits:              3,
		BenefitActiveProbability: 0.85,
	}
	svc := service.NewGenerationService(s, assigner, cfg, nil, log)
	return handler.NewGenerationHandler(svc, log), s
}

func TestRunEndpoint(t *testing.T) {
	t.Run("runs and reports the summary", func(t *testing.T) {
		h, s := newGenerationHandler()
		s.AddDepartment(domain.Department{ID: 1, Name: "Sales"})
		s.AddEmployee(domain.Employee{ID: 1, FirstName: "Employee", Gender: "Female", DepartmentID: 1})
		s.AddEmployee(domain.Employee{ID: 2, FirstName: "Employee", Gender: "Male", DepartmentID: 1, JobLevel: 2})

		body := map[string]interface{}{"seed": 42, "as_of": "2024-06-15"}
		req := testutil.NewHTTPRequest(http.MethodPost, "/generation/runs", body)
		rec := httptest.NewRecorder()
		h.Run(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Success bool              `json:"success"`
			Data    service.RunResult `json:"data"`
		}
		testutil.DecodeResponse(t, rec, &resp)

		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data.RunID)
		require.NotNil(t, resp.Data.Backfill)
		assert.Equal(t, 2, resp.Data.Backfill.Rewritten)
		assert.NotZero(t, resp.Data.Summary.Reviews)
	})

	t.Run("rejects a malformed as_of date", func(t *testing.T) {
		h, _ := newGenerationHandler()

		body := map[string]interface{}{"as_of": "June 15th"}
		req := testutil.NewHTTPRequest(http.MethodPost, "/generation/runs", body)
		rec := httptest.NewRecorder()
		h.Run(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		h, _ := newGenerationHandler()

		req := httptest.NewRequest(http.MethodPost, "/generation/runs", nil)
		rec := httptest.NewRecorder()
		h.Run(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBackfillEndpoint(t *testing.T) {
	h, s := newGenerationHandler()
	s.AddEmployee(domain.Employee{ID: 1, FirstName: "Employee", Gender: "Female"})

	req := testutil.NewHTTPRequest(http.MethodPost, "/generation/backfill", nil)
	rec := httptest.NewRecorder()
	h.Backfill(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data identity.Result `json:"data"`
	}
	testutil.DecodeResponse(t, rec, &resp)
	assert.Equal(t, 1, resp.Data.Rewritten)
}
