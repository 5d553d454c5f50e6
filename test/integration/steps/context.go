// Package steps provides step definitions for the BDD integration suite.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-records/backend/test/integration/mock"
)

// TestContext holds the state of one scenario.
type TestContext struct {
	app    *mock.App
	server *httptest.Server
	client *http.Client

	response     *http.Response
	responseBody []byte
	responseJSON any

	accessToken  string
	refreshToken string
	spentToken   string

	currentUserID     uuid.UUID
	currentCategoryID uuid.UUID
	currentRecordID   uuid.UUID
}

type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) (*TestContext, error) {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc, nil
	}
	return nil, fmt.Errorf("test context not found")
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		// The login rate limiter stands down under ENV=test.
		_ = os.Setenv("ENV", "test")
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions and wires a fresh
// application instance per scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		db, err := mock.NewDb()
		if err != nil {
			return ctx, err
		}

		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		app := mock.NewApp(db, redisClient)
		tc := &TestContext{
			app:    app,
			server: app.Server,
			client: app.Server.Client(),
		}

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if tc, tcErr := GetTestContext(ctx); tcErr == nil {
			tc.app.Close()
		}
		return ctx, err
	})

	registerAuthSteps(ctx)
	registerRequestSteps(ctx)
	registerSeedSteps(ctx)
	registerResponseSteps(ctx)
}
