// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/billtrack/recurring-engine/config"
	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/application/usecase/detection"
	"github.com/billtrack/recurring-engine/internal/application/usecase/projection"
	"github.com/billtrack/recurring-engine/internal/application/usecase/recurring"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
	"github.com/billtrack/recurring-engine/internal/infra/server/router"
	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/controller"
	"github.com/billtrack/recurring-engine/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The summary cache may be a no-op implementation when Redis is not
// configured; engine correctness never depends on it.
func NewInjector(cfg *config.Config, db *gorm.DB, summaryCache adapter.SummaryCache, loc *time.Location) *Injector {
	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	recurringRepo := persistence.NewRecurringExpenseRepository(db)
	matchedRepo := persistence.NewMatchedInstanceRepository(db)

	// Detector thresholds start at the library defaults; env config overrides
	// the ones operators actually tune.
	detectionConfig := valueobject.DefaultDetectionConfig()
	detectionConfig.AmountTolerance = decimal.NewFromFloat(cfg.Engine.AmountTolerance)
	detectionConfig.TimingDispersionRatio = cfg.Engine.TimingDispersionRatio
	detectionConfig.LowConfidenceThreshold = cfg.Engine.LowConfidenceThreshold

	// Create use cases
	detectPatternUseCase := detection.NewDetectPatternUseCase(transactionRepo, recurringRepo, summaryCache, detectionConfig)
	listRecurringUseCase := recurring.NewListRecurringUseCase(recurringRepo)
	deleteRecurringUseCase := recurring.NewDeleteRecurringUseCase(recurringRepo, summaryCache)
	linkTransactionUseCase := recurring.NewLinkTransactionUseCase(recurringRepo, transactionRepo, matchedRepo, summaryCache)
	unlinkTransactionUseCase := recurring.NewUnlinkTransactionUseCase(recurringRepo, matchedRepo, summaryCache)

	getUpcomingUseCase := projection.NewGetUpcomingUseCase(recurringRepo, loc)
	getPeriodStatusUseCase := projection.NewGetPeriodStatusUseCase(recurringRepo, matchedRepo, loc)
	getCashFlowSummaryUseCase := projection.NewGetCashFlowSummaryUseCase(recurringRepo, matchedRepo, summaryCache, loc)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	recurringController := controller.NewRecurringController(
		detectPatternUseCase,
		listRecurringUseCase,
		deleteRecurringUseCase,
		linkTransactionUseCase,
		unlinkTransactionUseCase,
	)

	projectionController := controller.NewProjectionController(
		getUpcomingUseCase,
		getPeriodStatusUseCase,
		getCashFlowSummaryUseCase,
		cfg.Engine.HorizonMonths,
	)

	r := router.NewRouter(healthController, recurringController, projectionController)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
