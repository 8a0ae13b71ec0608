// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// handleDomainError writes the error response for a failed use case.
// Each failure kind keeps its own status and stable code so callers can tell
// bad input from a budget overrun from a storage outage.
func handleDomainError(ctx *gin.Context, err error) {
	var expenseErr *domainerror.ExpenseError
	if errors.As(err, &expenseErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: expenseErr.Message,
			Code:  string(expenseErr.Code),
		})
		return
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		if budgetErr.Overrun != nil {
			ctx.JSON(http.StatusUnprocessableEntity, dto.BudgetErrorResponse{
				Error:        budgetErr.Message,
				Code:         string(budgetErr.Code),
				Category:     budgetErr.Overrun.CategoryName,
				BudgetLimit:  budgetErr.Overrun.Limit.StringFixed(2),
				WouldBeTotal: budgetErr.Overrun.WouldBeTotal.StringFixed(2),
			})
			return
		}
		ctx.JSON(getStatusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	var categoryErr *domainerror.CategoryError
	if errors.As(err, &categoryErr) {
		ctx.JSON(getStatusCodeForCategoryError(categoryErr.Code), dto.ErrorResponse{
			Error: categoryErr.Message,
			Code:  string(categoryErr.Code),
		})
		return
	}

	var analysisErr *domainerror.AnalysisError
	if errors.As(err, &analysisErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: analysisErr.Message,
			Code:  string(analysisErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrRepository) {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Storage is temporarily unavailable, please try again later",
			Code:  domainerror.ErrCodeRepository,
		})
		return
	}

	slog.Error("Unhandled error", "path", ctx.FullPath(), "error", err)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetLimitExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryKeyExists:
		return http.StatusConflict
	case domainerror.ErrCodeUnknownCategoryKey:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
