//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testContext holds the state of a single scenario.
type testContext struct {
	uri           string
	headers       map[string]string
	client        *http.Client
	response      *response
	db            *mock.Db
	redis         *redis.Client
	accessToken   string
	currentUserID uuid.UUID
	lastExpenseID uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testServer *httptest.Server

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db:     mock.NewDb("expense_tracker_integration"),
		redis:  mock.NewRedis(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return ctx, mock.RestartRedis()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^I am authenticated as a new user$`, test.iAmAuthenticatedAsANewUser)
	ctx.Given(`^I am authenticated with an expired token$`, test.iAmAuthenticatedWithAnExpiredToken)

	// Data setup steps
	ctx.Given(`^a category "([^"]*)" named "([^"]*)" with budget limit "([^"]*)"$`, test.aCategoryWithBudgetLimit)
	ctx.Given(`^a category "([^"]*)" named "([^"]*)" without a budget limit$`, test.aCategoryWithoutBudgetLimit)
	ctx.Given(`^an expense of "([^"]*)" in "([^"]*)" on "([^"]*)" described as "([^"]*)"$`, test.anExpenseDescribedAs)
	ctx.Given(`^an expense of "([^"]*)" in "([^"]*)" on "([^"]*)"$`, test.anExpense)
	ctx.Given(`^an expense of "([^"]*)" in "([^"]*)" on "([^"]*)" for another user$`, test.anExpenseForAnotherUser)
	ctx.Given(`^the cache is unavailable$`, test.theCacheIsUnavailable)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Cache assertion steps
	ctx.Then(`^the summary for (\d{4})-(\d{2}) should be cached$`, test.theSummaryShouldBeCached)
	ctx.Then(`^the summary for (\d{4})-(\d{2}) should not be cached$`, test.theSummaryShouldNotBeCached)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.lastExpenseID = uuid.Nil
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	return t.db.ClearDB()
}

// startServer wires the full application against the in-memory store and cache.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.RateLimit.ExpenseWrites = 1000
		cfg.RateLimit.Window = time.Minute

		injector := dependency.NewInjector(cfg, t.db.Database, t.redis, valueobject.DefaultCategorizationRules().Normalized())
		testServer = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
	t.uri = testServer.URL
}
