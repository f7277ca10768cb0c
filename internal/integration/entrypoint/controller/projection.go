package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billtrack/recurring-engine/internal/application/usecase/projection"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/dto"
	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/middleware"
)

// ProjectionController handles projection and cash-flow endpoints.
type ProjectionController struct {
	getUpcomingUseCase        *projection.GetUpcomingUseCase
	getPeriodStatusUseCase    *projection.GetPeriodStatusUseCase
	getCashFlowSummaryUseCase *projection.GetCashFlowSummaryUseCase
	defaultHorizonMonths      int
}

// NewProjectionController creates a new projection controller instance.
func NewProjectionController(
	getUpcomingUseCase *projection.GetUpcomingUseCase,
	getPeriodStatusUseCase *projection.GetPeriodStatusUseCase,
	getCashFlowSummaryUseCase *projection.GetCashFlowSummaryUseCase,
	defaultHorizonMonths int,
) *ProjectionController {
	return &ProjectionController{
		getUpcomingUseCase:        getUpcomingUseCase,
		getPeriodStatusUseCase:    getPeriodStatusUseCase,
		getCashFlowSummaryUseCase: getCashFlowSummaryUseCase,
		defaultHorizonMonths:      defaultHorizonMonths,
	}
}

// GetUpcoming handles GET /projection/upcoming requests.
func (c *ProjectionController) GetUpcoming(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Missing user scope",
			Code:  string(domainerror.ErrCodeMissingUserScope),
		})
		return
	}

	months := c.defaultHorizonMonths
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid months parameter",
				Code:  string(domainerror.ErrCodeInvalidHorizon),
			})
			return
		}
		months = parsed
	}

	granularity := valueobject.PeriodType(ctx.DefaultQuery("granularity", string(valueobject.PeriodMonthly)))
	mode := projection.DisplayMode(ctx.DefaultQuery("mode", string(projection.DisplayCondensed)))

	output, err := c.getUpcomingUseCase.Execute(ctx.Request.Context(), projection.GetUpcomingInput{
		UserID:        userID,
		HorizonMonths: months,
		Granularity:   granularity,
		Mode:          mode,
	})
	if err != nil {
		c.handleProjectionError(ctx, err)
		return
	}

	groups := make([]dto.TimelineGroupDTO, len(output.Groups))
	for i, group := range output.Groups {
		groups[i] = dto.ToTimelineGroupDTO(group)
	}
	ctx.JSON(http.StatusOK, dto.UpcomingResponse{Groups: groups})
}

// GetPeriod handles GET /projection/period requests.
func (c *ProjectionController) GetPeriod(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Missing user scope",
			Code:  string(domainerror.ErrCodeMissingUserScope),
		})
		return
	}

	date := time.Now()
	if dateStr := ctx.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date parameter, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidPeriodDate),
			})
			return
		}
		date = parsed
	}

	periodType := valueobject.PeriodType(ctx.DefaultQuery("period", string(valueobject.PeriodMonthly)))

	output, err := c.getPeriodStatusUseCase.Execute(ctx.Request.Context(), projection.GetPeriodStatusInput{
		UserID:     userID,
		Date:       date,
		PeriodType: periodType,
	})
	if err != nil {
		c.handleProjectionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodStatusResponse(output))
}

// GetCashFlow handles GET /projection/cashflow requests.
func (c *ProjectionController) GetCashFlow(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Missing user scope",
			Code:  string(domainerror.ErrCodeMissingUserScope),
		})
		return
	}

	output, err := c.getCashFlowSummaryUseCase.Execute(ctx.Request.Context(), projection.GetCashFlowSummaryInput{
		UserID: userID,
	})
	if err != nil {
		c.handleProjectionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCashFlowResponse(output.Summary, output.Cached))
}

// handleProjectionError maps domain errors to HTTP responses.
func (c *ProjectionController) handleProjectionError(ctx *gin.Context, err error) {
	var prjErr *domainerror.ProjectionError
	if errors.As(err, &prjErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: prjErr.Message,
			Code:  string(prjErr.Code),
		})
		return
	}

	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		status := http.StatusInternalServerError
		switch recErr.Code {
		case domainerror.ErrCodeInvalidPeriodType, domainerror.ErrCodeInvalidRecurrenceType:
			status = http.StatusBadRequest
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
