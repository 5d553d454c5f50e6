// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/finance-records/backend/config"
	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/usecase/auth"
	"github.com/finance-records/backend/internal/application/usecase/category"
	"github.com/finance-records/backend/internal/application/usecase/metrics"
	"github.com/finance-records/backend/internal/application/usecase/record"
	"github.com/finance-records/backend/internal/domain/entity"
	"github.com/finance-records/backend/internal/infra/server/router"
	"github.com/finance-records/backend/internal/integration/adapters"
	"github.com/finance-records/backend/internal/integration/entrypoint/controller"
	"github.com/finance-records/backend/internal/integration/entrypoint/middleware"
)

// Repositories bundles one storage backend's repository implementations.
// Both the persistence and the memory packages can fill this in.
type Repositories struct {
	Users      adapter.UserRepository
	Tokens     adapter.TokenRepository
	Categories adapter.CategoryRepository
	Records    adapter.RecordRepository
	History    adapter.HistoryRepository
}

// Injector holds the wired application graph.
type Injector struct {
	Config *config.Config
	Router *router.Router
}

// NewInjector wires the full application graph over the given backend.
func NewInjector(
	cfg *config.Config,
	repos Repositories,
	metricsCache adapter.MetricsCache,
	storageHealthCheck func() bool,
) *Injector {
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		repos.Tokens,
	)

	registerUseCase := auth.NewRegisterUserUseCase(repos.Users, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(repos.Users, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	listCategoriesUseCase := category.NewListCategoriesUseCase(repos.Categories, repos.Users)
	createCategoryUseCase := category.NewCreateCategoryUseCase(repos.Categories, repos.Users)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(repos.Categories)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(repos.Categories, repos.Records)

	listRecordsUseCase := record.NewListRecordsUseCase(repos.Records, repos.Users)
	createRecordUseCase := record.NewCreateRecordUseCase(repos.Records, repos.Categories, repos.Users)
	updateRecordUseCase := record.NewUpdateRecordUseCase(repos.Records, repos.Categories)
	deleteRecordUseCase := record.NewDeleteRecordUseCase(repos.Records)
	listHistoryUseCase := record.NewListHistoryUseCase(repos.History, repos.Users)

	summaryUseCase := metrics.NewGetSummaryUseCase(
		repos.Records,
		repos.Categories,
		repos.Users,
		metricsCache,
		cfg.Metrics.CacheTTL,
	)
	deltaUseCase := metrics.NewMonthlyDeltaUseCase(repos.Records, repos.Users)

	healthController := controller.NewHealthController(storageHealthCheck)
	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	incomeController := controller.NewRecordController(
		entity.RecordKindIncome,
		listRecordsUseCase,
		createRecordUseCase,
		updateRecordUseCase,
		deleteRecordUseCase,
		listHistoryUseCase,
	)
	expenseController := controller.NewRecordController(
		entity.RecordKindExpense,
		listRecordsUseCase,
		createRecordUseCase,
		updateRecordUseCase,
		deleteRecordUseCase,
		listHistoryUseCase,
	)
	metricsController := controller.NewMetricsController(summaryUseCase, deltaUseCase)

	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		incomeController,
		expenseController,
		metricsController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		Router: r,
	}
}
