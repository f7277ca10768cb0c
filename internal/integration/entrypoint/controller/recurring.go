// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/application/usecase/detection"
	"github.com/billtrack/recurring-engine/internal/application/usecase/recurring"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/dto"
	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring-expense endpoints.
type RecurringController struct {
	detectPatternUseCase     *detection.DetectPatternUseCase
	listRecurringUseCase     *recurring.ListRecurringUseCase
	deleteRecurringUseCase   *recurring.DeleteRecurringUseCase
	linkTransactionUseCase   *recurring.LinkTransactionUseCase
	unlinkTransactionUseCase *recurring.UnlinkTransactionUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	detectPatternUseCase *detection.DetectPatternUseCase,
	listRecurringUseCase *recurring.ListRecurringUseCase,
	deleteRecurringUseCase *recurring.DeleteRecurringUseCase,
	linkTransactionUseCase *recurring.LinkTransactionUseCase,
	unlinkTransactionUseCase *recurring.UnlinkTransactionUseCase,
) *RecurringController {
	return &RecurringController{
		detectPatternUseCase:     detectPatternUseCase,
		listRecurringUseCase:     listRecurringUseCase,
		deleteRecurringUseCase:   deleteRecurringUseCase,
		linkTransactionUseCase:   linkTransactionUseCase,
		unlinkTransactionUseCase: unlinkTransactionUseCase,
	}
}

// Detect handles POST /recurring/detect requests.
func (c *RecurringController) Detect(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Missing user scope",
			Code:  string(domainerror.ErrCodeMissingUserScope),
		})
		return
	}

	var request dto.DetectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}
	transactionID, err := uuid.Parse(request.TransactionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
		})
		return
	}

	output, err := c.detectPatternUseCase.Execute(ctx.Request.Context(), detection.DetectPatternInput{
		UserID:            userID,
		SeedTransactionID: transactionID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.DetectResponse{
		Expense:       dto.ToRecurringExpenseDTO(output.Expense),
		LowConfidence: output.LowConfidence,
	})
}

// List handles GET /recurring requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Missing user scope",
			Code:  string(domainerror.ErrCodeMissingUserScope),
		})
		return
	}

	output, err := c.listRecurringUseCase.Execute(ctx.Request.Context(), recurring.ListRecurringInput{
		UserID: userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	expenses := make([]dto.RecurringExpenseDTO, len(output.Expenses))
	for i, expense := range output.Expenses {
		expenses[i] = dto.ToRecurringExpenseDTO(expense)
	}
	ctx.JSON(http.StatusOK, dto.ListRecurringResponse{Expenses: expenses})
}

// Delete handles DELETE /recurring/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Missing user scope",
			Code:  string(domainerror.ErrCodeMissingUserScope),
		})
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring expense ID",
		})
		return
	}

	if err := c.deleteRecurringUseCase.Execute(ctx.Request.Context(), recurring.DeleteRecurringInput{
		UserID:             userID,
		RecurringExpenseID: expenseID,
	}); err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Link handles POST /recurring/:id/links requests.
func (c *RecurringController) Link(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Missing user scope",
			Code:  string(domainerror.ErrCodeMissingUserScope),
		})
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring expense ID",
		})
		return
	}

	var request dto.LinkTransactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}
	transactionID, err := uuid.Parse(request.TransactionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
		})
		return
	}

	output, err := c.linkTransactionUseCase.Execute(ctx.Request.Context(), recurring.LinkTransactionInput{
		UserID:             userID,
		RecurringExpenseID: expenseID,
		TransactionID:      transactionID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.LinkTransactionResponse{
		Match:   dto.ToMatchedInstanceDTO(output.Match),
		Expense: dto.ToRecurringExpenseDTO(output.Expense),
	})
}

// Unlink handles DELETE /recurring/:id/links/:transactionId requests.
func (c *RecurringController) Unlink(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Missing user scope",
			Code:  string(domainerror.ErrCodeMissingUserScope),
		})
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring expense ID",
		})
		return
	}
	transactionID, err := uuid.Parse(ctx.Param("transactionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
		})
		return
	}

	if err := c.unlinkTransactionUseCase.Execute(ctx.Request.Context(), recurring.UnlinkTransactionInput{
		UserID:             userID,
		RecurringExpenseID: expenseID,
		TransactionID:      transactionID,
	}); err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleRecurringError maps domain errors to HTTP responses.
func (c *RecurringController) handleRecurringError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		ctx.JSON(c.getStatusCodeForRecurringError(recErr.Code), dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrRecurringExpenseNotFound) ||
		errors.Is(err, domainerror.ErrTransactionNotFound) ||
		errors.Is(err, domainerror.ErrMatchNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringNotFound,
		domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeMatchNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedRecurring:
		return http.StatusForbidden
	case domainerror.ErrCodeMatchAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidPeriodType,
		domainerror.ErrCodeInvalidRecurrenceType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
