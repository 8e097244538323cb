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

	"github.com/spend-smart/backend/config"
	"github.com/spend-smart/backend/internal/infra/dependency"
	"github.com/spend-smart/backend/internal/integration/adapters"
	"github.com/spend-smart/backend/internal/integration/email"
	"github.com/spend-smart/backend/internal/integration/lock"
	"github.com/spend-smart/backend/internal/integration/storage"
	"github.com/spend-smart/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// environment is shared by every scenario. The server and its collaborators
// are built once; scenarios reset their state in Before.
type environment struct {
	server    *httptest.Server
	injector  *dependency.Injector
	db        *mock.Db
	extractor *mock.Extractor
	mailer    *email.MockEmailSender
	tokens    *adapters.TokenVerifier
}

var (
	envOnce sync.Once
	env     *environment
	envErr  error
)

func setupEnvironment() (*environment, error) {
	envOnce.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Receipt.AsyncProcessing = false
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.Issuer = ""

		db := mock.NewDb()
		extractor := mock.NewExtractor()
		mailer := email.NewMockEmailSender()
		tokens := adapters.NewTokenVerifier(testJWTSecret, "")

		injector, err := dependency.NewInjector(context.Background(), cfg, db.DbConn, dependency.Services{
			ImageStore:    storage.NewMemoryImageStore(),
			Extractor:     extractor,
			EmailSender:   mailer,
			TokenVerifier: tokens,
			Locker:        lock.NewRedisLocker(mock.NewRedis()),
		})
		if err != nil {
			envErr = err
			return
		}

		env = &environment{
			server:    httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			injector:  injector,
			db:        db,
			extractor: extractor,
			mailer:    mailer,
			tokens:    tokens,
		}
	})
	return env, envErr
}

// TestContext holds the test state for each scenario.
type TestContext struct {
	env *environment

	// HTTP
	client       *http.Client
	response     *http.Response
	responseBody []byte
	body         any

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string
	userID      uuid.UUID

	// Values captured from earlier responses, substituted into {{name}} placeholders.
	remembered map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if env != nil {
			env.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &TestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		e, err := setupEnvironment()
		if err != nil {
			return ctx, err
		}
		if err := e.db.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(mock.NewRedis()); err != nil {
			return ctx, err
		}
		e.extractor.Reset()
		e.mailer.Reset()

		*tc = TestContext{
			env:            e,
			client:         &http.Client{Timeout: 10 * time.Second},
			requestHeaders: make(map[string]string),
			remembered:     make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, tc.theAPIServerIsRunning)

	// Auth steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, tc.iAmAuthenticatedAs)
	ctx.Given(`^the header is empty$`, tc.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, tc.theHeaderContainsTheKeyWith)

	// Extraction service steps
	ctx.Given(`^the extraction service reads receipts as:$`, tc.theExtractionServiceReadsReceiptsAs)
	ctx.Given(`^the extraction service recommends:$`, tc.theExtractionServiceRecommends)
	ctx.Given(`^the extraction service is unavailable$`, tc.theExtractionServiceIsUnavailable)
	ctx.Then(`^the extraction service should have received (\d+) "([^"]*)" requests?$`, tc.theExtractionServiceShouldHaveReceived)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	ctx.When(`^I upload the receipt image "([^"]*)" from platform "([^"]*)"$`, tc.iUploadTheReceiptImage)
	ctx.When(`^I remember the response field "([^"]*)" as "([^"]*)"$`, tc.iRememberTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, tc.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, tc.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) elements?$`, tc.theResponseFieldShouldHaveElements)

	// Background job steps
	ctx.When(`^the budget sweep runs$`, tc.theBudgetSweepRuns)

	// Side effect assertion steps
	ctx.Then(`^(\d+) budget alert emails? should have been sent to "([^"]*)"$`, tc.budgetAlertEmailsShouldHaveBeenSentTo)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, tc.theDbShouldContainObjectsInTheTable)
}
