package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter/mock"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

type expenseFixture struct {
	userID     uuid.UUID
	expenses   *mock.ExpenseRepository
	categories *mock.CategoryRepository
	engine     *gin.Engine
}

func newExpenseFixture(t *testing.T) *expenseFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &expenseFixture{
		userID:     uuid.New(),
		expenses:   mock.NewExpenseRepository(),
		categories: mock.NewCategoryRepository(),
	}

	enforcer := budget.NewEnforcer(f.categories, f.expenses)
	c := NewExpenseController(
		expense.NewCreateExpenseUseCase(enforcer, nil),
		expense.NewListExpensesUseCase(f.expenses),
	)

	f.engine = gin.New()
	authed := f.engine.Group("/", func(ctx *gin.Context) {
		ctx.Set(string(middleware.UserIDKey), f.userID)
		ctx.Next()
	})
	authed.POST("/expenses", c.Create)
	authed.GET("/expenses", c.List)
	f.engine.POST("/anonymous/expenses", c.Create)
	return f
}

func (f *expenseFixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestExpenseController_Create(t *testing.T) {
	f := newExpenseFixture(t)
	f.categories.Add(f.userID, "food", "Food", "200")
	f.expenses.Seed(f.userID, "food", "150", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

	w, body := f.do(t, http.MethodPost, "/expenses",
		`{"amount": 40, "category": "food", "date": "2024-03-20", "description": "Lunch", "tags": ["Work"]}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "40.00", body["amount"])
	assert.Equal(t, "food", body["category"])
	assert.Equal(t, "2024-03-20T00:00:00Z", body["date"])
	assert.Equal(t, f.userID.String(), body["user_id"])
	assert.Equal(t, []any{"work"}, body["tags"])
	assert.Len(t, f.expenses.All(), 2)
}

func TestExpenseController_Create_BudgetExceeded(t *testing.T) {
	f := newExpenseFixture(t)
	f.categories.Add(f.userID, "food", "Food", "200")
	f.expenses.Seed(f.userID, "food", "150", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

	w, body := f.do(t, http.MethodPost, "/expenses",
		`{"amount": "60", "category": "food", "date": "2024-03-20", "description": "Dinner"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "BUD-020002", body["code"])
	assert.Equal(t, "Food", body["category"])
	assert.Equal(t, "200.00", body["budget_limit"])
	assert.Equal(t, "210.00", body["would_be_total"])
	assert.Len(t, f.expenses.All(), 1)
}

func TestExpenseController_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed json",
			body:       `{"amount": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   "EXP-010008",
		},
		{
			name:       "missing category",
			body:       `{"amount": "10", "date": "2024-03-20", "description": "x"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "EXP-010001",
		},
		{
			name:       "zero amount",
			body:       `{"amount": 0, "category": "food", "date": "2024-03-20", "description": "x"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "EXP-010002",
		},
		{
			name:       "tags not a list",
			body:       `{"amount": 1, "category": "food", "date": "2024-03-20", "description": "x", "tags": {"a": 1}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "EXP-010006",
		},
		{
			name:       "unknown category",
			body:       `{"amount": 1, "category": "pets", "date": "2024-03-20", "description": "x"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "BUD-020001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExpenseFixture(t)
			f.categories.Add(f.userID, "food", "Food", "")

			w, body := f.do(t, http.MethodPost, "/expenses", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Empty(t, f.expenses.All())
		})
	}
}

func TestExpenseController_Create_StorageUnavailable(t *testing.T) {
	f := newExpenseFixture(t)
	f.categories.GetErr = errors.New("connection refused")

	w, body := f.do(t, http.MethodPost, "/expenses",
		`{"amount": 1, "category": "food", "date": "2024-03-20", "description": "x"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "REP-040001", body["code"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestExpenseController_Create_Unauthenticated(t *testing.T) {
	f := newExpenseFixture(t)

	w, body := f.do(t, http.MethodPost, "/anonymous/expenses", `{}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH-030003", body["code"])
}

func TestExpenseController_List(t *testing.T) {
	f := newExpenseFixture(t)
	f.expenses.Seed(f.userID, "food", "10", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	f.expenses.Seed(f.userID, "food", "20", time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC))
	f.expenses.Seed(f.userID, "travel", "30", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	f.expenses.Seed(f.userID, "food", "40", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	f.expenses.Seed(uuid.New(), "food", "50", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	t.Run("all of the user's expenses", func(t *testing.T) {
		w, body := f.do(t, http.MethodGet, "/expenses", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(4), body["count"])
	})

	t.Run("date-only end includes the whole day", func(t *testing.T) {
		w, body := f.do(t, http.MethodGet, "/expenses?start_date=2024-03-01&end_date=2024-03-31&category=food", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(2), body["count"])

		expenses := body["expenses"].([]any)
		assert.Equal(t, "10.00", expenses[0].(map[string]any)["amount"])
		assert.Equal(t, "20.00", expenses[1].(map[string]any)["amount"])
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		w, body := f.do(t, http.MethodGet, "/expenses?category=pets", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{}, body["expenses"])
	})

	t.Run("invalid date", func(t *testing.T) {
		w, body := f.do(t, http.MethodGet, "/expenses?start_date=yesterday", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "EXP-010003", body["code"])
	})
}

func TestParseQueryDate(t *testing.T) {
	d, dateOnly, err := parseQueryDate("2024-03-31")
	require.NoError(t, err)
	assert.True(t, dateOnly)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), d)

	d, dateOnly, err = parseQueryDate("2024-03-31T10:00:00+02:00")
	require.NoError(t, err)
	assert.False(t, dateOnly)
	assert.Equal(t, time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC), d.UTC())

	_, _, err = parseQueryDate("31/03/2024")
	assert.Error(t, err)
}
