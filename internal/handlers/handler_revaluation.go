package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/fincore/fx_revaluation_app/internal/dto"
	"github.com/fincore/fx_revaluation_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// revaluationHandler handles HTTP requests for revaluation runs.
type revaluationHandler struct {
	revaluationService portssvc.RevaluationSvcFacade
}

// newRevaluationHandler creates a new revaluationHandler.
func newRevaluationHandler(rs portssvc.RevaluationSvcFacade) *revaluationHandler {
	return &revaluationHandler{
		revaluationService: rs,
	}
}

// registerRevaluationRoutes registers routes related to revaluation runs.
func registerRevaluationRoutes(rg *gin.RouterGroup, revaluationService portssvc.RevaluationSvcFacade) {
	h := newRevaluationHandler(revaluationService)

	runs := rg.Group("/revaluation-runs")
	{
		runs.POST("", h.startRun)
		runs.GET("/:runID", h.getRun)
		runs.GET("/:runID/details", h.listRunDetails)
		runs.POST("/:runID/cancel", h.cancelRun)
	}
}

// startRun godoc
// @Summary Start a revaluation run
// @Description Creates and activates a revaluation run for a company scope; processing is asynchronous
// @Tags revaluation
// @Accept  json
// @Produce  json
// @Param   run body dto.StartRevaluationRunRequest true "Run scope"
// @Success 202 {object} dto.RevaluationRunResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "A run is already active for this scope"
// @Failure 500 {object} map[string]string "Failed to start run"
// @Security BearerAuth
// @Router /revaluation-runs [post]
func (h *revaluationHandler) startRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StartRevaluationRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StartRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	initiatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Initiator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("initiator_user_id", initiatorUserID))
	logger.Info("Received request to start revaluation run",
		slog.String("company_id", req.CompanyID),
		slog.String("run_type", req.RunType),
		slog.Time("run_date", req.RunDate),
	)

	run, err := h.revaluationService.StartRun(c.Request.Context(), req, initiatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRunAlreadyActive) {
			logger.Warn("Run already active for scope", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error starting run", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to start revaluation run", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start revaluation run"})
		}
		return
	}

	logger.Info("Revaluation run started", slog.String("run_id", run.RunID))
	c.JSON(http.StatusAccepted, dto.ToRevaluationRunResponse(run))
}

// getRun godoc
// @Summary Get a revaluation run
// @Description Retrieves a snapshot of the run's current state and aggregate totals
// @Tags revaluation
// @Produce  json
// @Param   runID path string true "Run ID"
// @Success 200 {object} dto.RevaluationRunResponse
// @Failure 404 {object} map[string]string "Run not found"
// @Failure 500 {object} map[string]string "Failed to retrieve run"
// @Security BearerAuth
// @Router /revaluation-runs/{runID} [get]
func (h *revaluationHandler) getRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	run, err := h.revaluationService.GetRun(c.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Revaluation run not found", slog.String("run_id", runID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Revaluation run not found"})
		} else {
			logger.Error("Failed to get revaluation run", slog.String("run_id", runID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve revaluation run"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRevaluationRunResponse(run))
}

// listRunDetails godoc
// @Summary List per-account outcomes of a run
// @Description Retrieves a token-paginated list of the run's per-account details
// @Tags revaluation
// @Produce  json
// @Param   runID path string true "Run ID"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListRunDetailsResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 404 {object} map[string]string "Run not found"
// @Failure 500 {object} map[string]string "Failed to list details"
// @Security BearerAuth
// @Router /revaluation-runs/{runID}/details [get]
func (h *revaluationHandler) listRunDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 500"})
			return
		}
		limit = parsed
	}

	var nextToken *string
	if tokenStr := c.Query("nextToken"); tokenStr != "" {
		nextToken = &tokenStr
	}

	details, token, err := h.revaluationService.ListRunDetails(c.Request.Context(), runID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Revaluation run not found", slog.String("run_id", runID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Revaluation run not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("run_id", runID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list run details", slog.String("run_id", runID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list run details"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListRunDetailsResponse(details, token))
}

// cancelRun godoc
// @Summary Cancel a revaluation run
// @Description Requests best-effort cancellation; in-flight account tasks finish and the run ends CANCELLED
// @Tags revaluation
// @Produce  json
// @Param   runID path string true "Run ID"
// @Success 202 {object} map[string]string
// @Failure 404 {object} map[string]string "Run not found"
// @Failure 409 {object} map[string]string "Run is already terminal"
// @Failure 500 {object} map[string]string "Failed to cancel run"
// @Security BearerAuth
// @Router /revaluation-runs/{runID}/cancel [post]
func (h *revaluationHandler) cancelRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	if err := h.revaluationService.CancelRun(c.Request.Context(), runID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Revaluation run not found", slog.String("run_id", runID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Revaluation run not found"})
		} else if errors.Is(err, apperrors.ErrRunNotCancellable) {
			logger.Warn("Run not cancellable", slog.String("run_id", runID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to cancel revaluation run", slog.String("run_id", runID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel revaluation run"})
		}
		return
	}

	logger.Info("Revaluation run cancellation requested", slog.String("run_id", runID))
	c.JSON(http.StatusAccepted, gin.H{"status": "cancellation requested"})
}
