// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/analysis"
	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// AnalyticsController handles summary, analysis and categorization endpoints.
type AnalyticsController struct {
	summaryUseCase *summary.GetMonthlySummaryUseCase
	analyzeUseCase *analysis.AnalyzeSpendingUseCase
	suggestUseCase *analysis.SuggestCategoryUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	summaryUseCase *summary.GetMonthlySummaryUseCase,
	analyzeUseCase *analysis.AnalyzeSpendingUseCase,
	suggestUseCase *analysis.SuggestCategoryUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		summaryUseCase: summaryUseCase,
		analyzeUseCase: analyzeUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// Summary handles GET /expenses/summary requests.
// year and month default to the current UTC month.
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	now := time.Now().UTC()
	year, err := queryInt(ctx, "year", now.Year())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "year must be an integer",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}
	month, err := queryInt(ctx, "month", int(now.Month()))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "month must be an integer",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), summary.GetMonthlySummaryInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output))
}

// Analysis handles GET /expenses/analysis requests.
func (c *AnalyticsController) Analysis(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := analysis.AnalyzeSpendingInput{UserID: userID}

	if periodStr := ctx.Query("period_days"); periodStr != "" {
		periodDays, err := strconv.Atoi(periodStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "period_days must be an integer",
				Code:  string(domainerror.ErrCodeInvalidPeriod),
			})
			return
		}
		input.PeriodDays = &periodDays
	}

	if asOfStr := ctx.Query("as_of"); asOfStr != "" {
		asOf, _, err := parseQueryDate(asOfStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "as_of must be YYYY-MM-DD or RFC 3339",
				Code:  string(domainerror.ErrCodeInvalidDate),
			})
			return
		}
		input.AsOf = asOf
	}

	output, err := c.analyzeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingAnalysisResponse(output))
}

// Categorize handles POST /expenses/categorize requests.
func (c *AnalyticsController) Categorize(ctx *gin.Context) {
	var req dto.CategorizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidRequestBody),
			Details: err.Error(),
		})
		return
	}

	output := c.suggestUseCase.Execute(analysis.SuggestCategoryInput{
		Description: req.Description,
		Amount:      req.Amount,
	})

	ctx.JSON(http.StatusOK, dto.CategorizeResponse{Category: output.Category})
}

func queryInt(ctx *gin.Context, key string, defaultValue int) (int, error) {
	value := ctx.Query(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}
