// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/analysis"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *db.Database
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case summaries are not cached and rate
// limiting is kept in memory.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client, rules valueobject.CategorizationRules) *Injector {
	// Create repositories
	serializable := cfg.Database.SerializableBudgetWrites && database.SupportsSerializable()
	categoryRepo := persistence.NewCategoryRepository(database.DB())
	expenseRepo := persistence.NewExpenseRepository(database.DB(), serializable)

	var summaryCache adapter.SummaryCache
	if redisClient != nil {
		summaryCache = cache.NewSummaryCache(redisClient, cfg.Cache.SummaryTTL)
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create domain services
	enforcer := budget.NewEnforcer(categoryRepo, expenseRepo)
	analyzer := analysis.NewAnalyzer(rules)

	// Create expense use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(enforcer, summaryCache)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)

	// Create analytics use cases
	monthlySummaryUseCase := summary.NewGetMonthlySummaryUseCase(expenseRepo, summaryCache)
	analyzeSpendingUseCase := analysis.NewAnalyzeSpendingUseCase(expenseRepo, analyzer, cfg.Analysis.DefaultPeriodDays)
	suggestCategoryUseCase := analysis.NewSuggestCategoryUseCase(analyzer)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, expenseRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create controllers
	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(database.HealthCheck, cacheHealthChecker)

	expenseController := controller.NewExpenseController(
		createExpenseUseCase,
		listExpensesUseCase,
	)

	analyticsController := controller.NewAnalyticsController(
		monthlySummaryUseCase,
		analyzeSpendingUseCase,
		suggestCategoryUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	// Create middleware
	var expenseRateLimiter *middleware.RateLimiter
	if redisClient != nil {
		expenseRateLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimit.ExpenseWrites, cfg.RateLimit.Window)
	} else {
		expenseRateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.ExpenseWrites, cfg.RateLimit.Window)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		expenseController,
		analyticsController,
		categoryController,
		expenseRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     database,
		Redis:  redisClient,
		Router: r,
	}
}
