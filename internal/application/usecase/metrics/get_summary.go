// Package metrics contains the calendar-bucketed aggregation use cases.
package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// GetSummaryInput represents the input for the financial summary.
type GetSummaryInput struct {
	OwnerID uuid.UUID

	// EndDate bounds the trailing window; defaults to the current month.
	EndDate *time.Time
}

// GetSummaryOutput represents the aggregated financial summary.
type GetSummaryOutput struct {
	MonthlyFinancialSummary   []MonthBucket
	CategoriesWithMostRecords []CategoryRanking
	BiggestExpenses           []*entity.Record
	MonthlyBalanceOverTime    []BalancePoint
}

// GetSummaryUseCase aggregates an owner's records into the metrics payload.
// Results are served from a TTL cache when one is configured.
type GetSummaryUseCase struct {
	recordRepo   adapter.RecordRepository
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository
	cache        adapter.MetricsCache
	cacheTTL     time.Duration
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	recordRepo adapter.RecordRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	cache adapter.MetricsCache,
	cacheTTL time.Duration,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		recordRepo:   recordRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// Execute computes the financial summary for the owner.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	exists, err := uc.userRepo.ExistsByID(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check owner existence: %w", err)
	}
	if !exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	end := time.Now().UTC()
	if input.EndDate != nil {
		end = input.EndDate.UTC()
	}

	cacheKey := uc.cacheKey(input.OwnerID, end)
	if output := uc.fromCache(ctx, cacheKey); output != nil {
		return output, nil
	}

	incomes, err := uc.recordRepo.FindAllByOwner(ctx, input.OwnerID, entity.RecordKindIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to load incomes: %w", err)
	}
	expenses, err := uc.recordRepo.FindAllByOwner(ctx, input.OwnerID, entity.RecordKindExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	categories, err := uc.categoryRepo.FindAllByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	summary := MonthlySummary(incomes, expenses, end)
	output := &GetSummaryOutput{
		MonthlyFinancialSummary:   summary,
		CategoriesWithMostRecords: CategoriesWithMostRecords(categories, incomes, expenses),
		BiggestExpenses:           BiggestExpenses(expenses, &end),
		MonthlyBalanceOverTime:    MonthlyBalance(summary),
	}

	uc.toCache(ctx, cacheKey, output)

	return output, nil
}

func (uc *GetSummaryUseCase) cacheKey(ownerID uuid.UUID, end time.Time) string {
	return "metrics:summary:" + ownerID.String() + ":" + MonthKey(end)
}

// fromCache returns a cached summary, or nil on miss or error. Cache
// failures only cost a recomputation.
func (uc *GetSummaryUseCase) fromCache(ctx context.Context, key string) *GetSummaryOutput {
	if uc.cache == nil {
		return nil
	}

	payload, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("metrics cache read failed", "key", key, "error", err)
		return nil
	}
	if payload == nil {
		return nil
	}

	var output GetSummaryOutput
	if err := json.Unmarshal(payload, &output); err != nil {
		slog.Warn("metrics cache payload corrupt", "key", key, "error", err)
		return nil
	}
	return &output
}

func (uc *GetSummaryUseCase) toCache(ctx context.Context, key string, output *GetSummaryOutput) {
	if uc.cache == nil {
		return
	}

	payload, err := json.Marshal(output)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
		slog.Warn("metrics cache write failed", "key", key, "error", err)
	}
}
