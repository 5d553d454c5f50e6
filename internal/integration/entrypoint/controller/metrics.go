package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-records/backend/internal/application/usecase/metrics"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
	"github.com/finance-records/backend/internal/integration/entrypoint/dto"
	"github.com/finance-records/backend/internal/integration/entrypoint/middleware"
)

// MetricsController handles the aggregated metrics endpoints.
type MetricsController struct {
	summaryUseCase *metrics.GetSummaryUseCase
	deltaUseCase   *metrics.MonthlyDeltaUseCase
}

// NewMetricsController creates a new metrics controller instance.
func NewMetricsController(
	summaryUseCase *metrics.GetSummaryUseCase,
	deltaUseCase *metrics.MonthlyDeltaUseCase,
) *MetricsController {
	return &MetricsController{
		summaryUseCase: summaryUseCase,
		deltaUseCase:   deltaUseCase,
	}
}

// Summary handles GET /metrics requests.
func (c *MetricsController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := metrics.GetSummaryInput{OwnerID: userID}

	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "end_date must be a YYYY-MM-DD date",
				Code:  string(domainerror.ErrCodeInvalidQueryParams),
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMetricsSummaryResponse(output))
}

// Delta returns a handler for GET /incomes/delta or GET /expenses/delta.
func (c *MetricsController) Delta(kind entity.RecordKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(ctx)
		if !ok {
			respondUnauthenticated(ctx)
			return
		}

		input := metrics.MonthlyDeltaInput{OwnerID: userID, Kind: kind}

		if nowStr := ctx.Query("now"); nowStr != "" {
			now, err := time.Parse("2006-01-02", nowStr)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "now must be a YYYY-MM-DD date",
					Code:  string(domainerror.ErrCodeInvalidQueryParams),
				})
				return
			}
			input.Now = now
		}

		output, err := c.deltaUseCase.Execute(ctx.Request.Context(), input)
		if err != nil {
			respondError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.DeltaResponse{
			Amount:            output.Delta.Amount,
			DiffFromLastMonth: output.Delta.DiffFromLastMonth,
		})
	}
}
