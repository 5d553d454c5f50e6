package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-records/backend/internal/domain/entity"
	"github.com/finance-records/backend/internal/domain/valueobject"
)

// CreateRecordRequest represents the request body for income and expense
// creation. The amount is a decimal in major currency units; it is converted
// to cents at the boundary and handled as an integer from there on.
type CreateRecordRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=255"`
	Value       decimal.Decimal `json:"value" binding:"required"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=1000"`
	CategoryID  *string         `json:"category_id,omitempty"`
}

// UpdateRecordRequest represents the request body for record update. Absent
// fields keep their stored values; clear_category removes the category tag.
type UpdateRecordRequest struct {
	Name          *string          `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Value         *decimal.Decimal `json:"value,omitempty"`
	Description   *string          `json:"description,omitempty" binding:"omitempty,max=1000"`
	CategoryID    *string          `json:"category_id,omitempty"`
	ClearCategory bool             `json:"clear_category,omitempty"`
}

// RecordResponse represents a single income or expense in API responses.
// Value is in minor currency units.
type RecordResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Value       int64     `json:"value"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HistoryResponse represents one pre-update snapshot in API responses.
type HistoryResponse struct {
	ID          string    `json:"id"`
	RecordID    string    `json:"record_id"`
	Name        string    `json:"name"`
	Value       int64     `json:"value"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Cents converts the request amount to minor units.
func (r CreateRecordRequest) Cents() int64 {
	return valueobject.Cents(r.Value)
}

// ToRecordResponse converts a domain Record entity to a RecordResponse DTO.
func ToRecordResponse(record *entity.Record) RecordResponse {
	var categoryID *string
	if record.CategoryID != nil {
		id := record.CategoryID.String()
		categoryID = &id
	}
	return RecordResponse{
		ID:          record.ID.String(),
		Name:        record.Name,
		Value:       record.Value,
		Description: record.Description,
		CategoryID:  categoryID,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// ToHistoryResponse converts a domain RecordHistory entity to a HistoryResponse DTO.
func ToHistoryResponse(history *entity.RecordHistory) HistoryResponse {
	var categoryID *string
	if history.CategoryID != nil {
		id := history.CategoryID.String()
		categoryID = &id
	}
	return HistoryResponse{
		ID:          history.ID.String(),
		RecordID:    history.RecordID.String(),
		Name:        history.Name,
		Value:       history.Value,
		Description: history.Description,
		CategoryID:  categoryID,
		CreatedAt:   history.CreatedAt,
	}
}
