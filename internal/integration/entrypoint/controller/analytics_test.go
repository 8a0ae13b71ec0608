package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/adapter/mock"
	"github.com/expense-tracker/backend/internal/application/usecase/analysis"
	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

func newAnalyticsEngine(t *testing.T, userID uuid.UUID, repo *mock.ExpenseRepository, cache adapter.SummaryCache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	analyzer := analysis.NewAnalyzer(valueobject.DefaultCategorizationRules())
	c := NewAnalyticsController(
		summary.NewGetMonthlySummaryUseCase(repo, cache),
		analysis.NewAnalyzeSpendingUseCase(repo, analyzer, 30),
		analysis.NewSuggestCategoryUseCase(analyzer),
	)

	engine := gin.New()
	authed := engine.Group("/", func(ctx *gin.Context) {
		ctx.Set(string(middleware.UserIDKey), userID)
		ctx.Next()
	})
	authed.GET("/expenses/summary", c.Summary)
	authed.GET("/expenses/analysis", c.Analysis)
	authed.POST("/expenses/categorize", c.Categorize)
	return engine
}

func serve(engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestAnalyticsController_Summary(t *testing.T) {
	userID := uuid.New()
	repo := mock.NewExpenseRepository()
	cache := mock.NewSummaryCache()
	repo.Seed(userID, "food", "10.00", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "lunch")
	repo.Seed(userID, "food", "5.25", time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))
	repo.Seed(userID, "transport", "30.00", time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), "lunch", "work")
	repo.Seed(userID, "food", "99.00", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	engine := newAnalyticsEngine(t, userID, repo, cache)

	w, body := serve(engine, http.MethodGet, "/expenses/summary?year=2024&month=3", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2024), body["year"])
	assert.Equal(t, float64(3), body["month"])
	assert.Equal(t, "45.25", body["total"])
	assert.Equal(t, float64(3), body["count"])
	assert.Equal(t, map[string]any{"food": "15.25", "transport": "30.00"}, body["categories"])
	assert.Equal(t, map[string]any{"lunch": "40.00", "work": "30.00"}, body["tags"])
	assert.Equal(t, map[string]any{"2024-03-01": "15.25", "2024-03-31": "30.00"}, body["daily_totals"])
	assert.True(t, cache.Has(userID, 2024, time.March))
}

func TestAnalyticsController_Summary_InvalidInput(t *testing.T) {
	engine := newAnalyticsEngine(t, uuid.New(), mock.NewExpenseRepository(), nil)

	for _, path := range []string{
		"/expenses/summary?year=2024&month=0",
		"/expenses/summary?year=2024&month=13",
		"/expenses/summary?year=2024&month=march",
		"/expenses/summary?year=last",
	} {
		w, body := serve(engine, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "ANL-030002", body["code"], path)
	}
}

func TestAnalyticsController_Analysis(t *testing.T) {
	userID := uuid.New()
	repo := mock.NewExpenseRepository()
	repo.Seed(userID, "food", "20", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	repo.Seed(userID, "food", "30", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	repo.Seed(userID, "transport", "250", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	repo.Seed(userID, "food", "500", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	engine := newAnalyticsEngine(t, userID, repo, nil)

	w, body := serve(engine, http.MethodGet, "/expenses/analysis?period_days=31&as_of=2024-03-31", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(31), body["period_days"])
	assert.Equal(t, "2024-03-01T00:00:00Z", body["period_start"])
	assert.Equal(t, "2024-04-01T00:00:00Z", body["period_end"])
	assert.Equal(t, "300.00", body["total_spent"])
	assert.Equal(t, "9.68", body["average_daily"])
	assert.Equal(t, "food", body["most_frequent_category"])
	assert.Equal(t, "250.00", body["highest_expense"].(map[string]any)["amount"])
	assert.Equal(t, map[string]any{"food": "50.00", "transport": "250.00"}, body["category_distribution"])
	assert.Len(t, body["unusual_expenses"], 1)
}

func TestAnalyticsController_Analysis_Empty(t *testing.T) {
	engine := newAnalyticsEngine(t, uuid.New(), mock.NewExpenseRepository(), nil)

	w, body := serve(engine, http.MethodGet, "/expenses/analysis?as_of=2024-03-31", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(30), body["period_days"])
	assert.Equal(t, "0.00", body["total_spent"])
	assert.Equal(t, "0.00", body["average_daily"])
	assert.Nil(t, body["highest_expense"])
	assert.Nil(t, body["most_frequent_category"])
	assert.Equal(t, map[string]any{}, body["category_distribution"])
	assert.Equal(t, []any{}, body["unusual_expenses"])
}

func TestAnalyticsController_Analysis_InvalidPeriod(t *testing.T) {
	engine := newAnalyticsEngine(t, uuid.New(), mock.NewExpenseRepository(), nil)

	for _, path := range []string{
		"/expenses/analysis?period_days=0",
		"/expenses/analysis?period_days=-7",
		"/expenses/analysis?period_days=3661",
		"/expenses/analysis?period_days=week",
	} {
		w, body := serve(engine, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "ANL-030001", body["code"], path)
	}
}

func TestAnalyticsController_Categorize(t *testing.T) {
	engine := newAnalyticsEngine(t, uuid.New(), mock.NewExpenseRepository(), nil)

	tests := []struct {
		body string
		want string
	}{
		{`{"description": "Dinner at a RESTAURANT", "amount": 45}`, "food"},
		{`{"description": "Monthly internet bill", "amount": "60.00"}`, "utilities"},
		{`{"description": "Sofa", "amount": 1000.01}`, "major_expense"},
		{`{"description": "Sofa", "amount": 1000}`, "other"},
	}

	for _, tt := range tests {
		w, body := serve(engine, http.MethodPost, "/expenses/categorize", tt.body)
		require.Equal(t, http.StatusOK, w.Code, tt.body)
		assert.Equal(t, tt.want, body["category"], tt.body)
	}

	w, body := serve(engine, http.MethodPost, "/expenses/categorize", `{"amount": 10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EXP-010008", body["code"])
}
