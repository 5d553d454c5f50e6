package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/usecase/record"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
	"github.com/finance-records/backend/internal/domain/valueobject"
	"github.com/finance-records/backend/internal/integration/entrypoint/dto"
	"github.com/finance-records/backend/internal/integration/entrypoint/middleware"
)

// RecordController handles income or expense endpoints. One instance is
// mounted per kind; the handlers are otherwise identical.
type RecordController struct {
	kind           entity.RecordKind
	listUseCase    *record.ListRecordsUseCase
	createUseCase  *record.CreateRecordUseCase
	updateUseCase  *record.UpdateRecordUseCase
	deleteUseCase  *record.DeleteRecordUseCase
	historyUseCase *record.ListHistoryUseCase
}

// NewRecordController creates a new record controller for the given kind.
func NewRecordController(
	kind entity.RecordKind,
	listUseCase *record.ListRecordsUseCase,
	createUseCase *record.CreateRecordUseCase,
	updateUseCase *record.UpdateRecordUseCase,
	deleteUseCase *record.DeleteRecordUseCase,
	historyUseCase *record.ListHistoryUseCase,
) *RecordController {
	return &RecordController{
		kind:           kind,
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		historyUseCase: historyUseCase,
	}
}

// List handles GET /incomes and GET /expenses requests.
func (c *RecordController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	listQuery, err := dto.ParseListQuery(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), record.ListRecordsInput{
		OwnerID:   userID,
		Kind:      c.kind,
		Filter:    listQuery.Filter,
		Direction: listQuery.Direction,
		Page:      listQuery.Page,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToListResponse(output.Result, dto.ToRecordResponse))
}

// Create handles POST /incomes and POST /expenses requests.
func (c *RecordController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecordFields),
		})
		return
	}

	input := record.CreateRecordInput{
		OwnerID:     userID,
		Kind:        c.kind,
		Name:        req.Name,
		Value:       req.Cents(),
		Description: req.Description,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category id",
				Code:  string(domainerror.ErrCodeRecordCategoryNotFound),
			})
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecordResponse(output.Record))
}

// Update handles PATCH /incomes/:id and PATCH /expenses/:id requests.
func (c *RecordController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	recordID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid record id",
			Code:  string(domainerror.ErrCodeRecordNotFound),
		})
		return
	}

	var req dto.UpdateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecordFields),
		})
		return
	}

	input := record.UpdateRecordInput{
		RecordID:      recordID,
		OwnerID:       userID,
		Kind:          c.kind,
		Name:          req.Name,
		Description:   req.Description,
		ClearCategory: req.ClearCategory,
	}
	if req.Value != nil {
		cents := valueobject.Cents(*req.Value)
		input.Value = &cents
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category id",
				Code:  string(domainerror.ErrCodeRecordCategoryNotFound),
			})
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecordResponse(output.Record))
}

// Delete handles DELETE /incomes/:id and DELETE /expenses/:id requests.
func (c *RecordController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	recordID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid record id",
			Code:  string(domainerror.ErrCodeRecordNotFound),
		})
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), record.DeleteRecordInput{
		RecordID: recordID,
		OwnerID:  userID,
		Kind:     c.kind,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListHistory handles GET /incomes/history and GET /expenses/history requests.
func (c *RecordController) ListHistory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	listQuery, err := dto.ParseListQuery(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), record.ListHistoryInput{
		OwnerID:   userID,
		Kind:      c.kind,
		Filter:    listQuery.Filter,
		Direction: listQuery.Direction,
		Page:      listQuery.Page,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToListResponse(output.Result, dto.ToHistoryResponse))
}
