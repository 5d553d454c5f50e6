package record

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
	"github.com/finance-records/backend/internal/integration/memory"
)

type fixture struct {
	records    adapter.RecordRepository
	categories adapter.CategoryRepository
	history    adapter.HistoryRepository
	users      adapter.UserRepository
	ownerID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		records:    memory.NewRecordRepository(store),
		categories: memory.NewCategoryRepository(store),
		history:    memory.NewHistoryRepository(store),
		users:      memory.NewUserRepository(store),
	}

	owner := entity.NewUser("owner@example.com", "Owner", "hash")
	if err := f.users.Create(context.Background(), owner); err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	f.ownerID = owner.ID

	return f
}

func (f *fixture) seedCategory(t *testing.T, name string) *entity.Category {
	t.Helper()

	category := entity.NewCategory(name, "", f.ownerID)
	if err := f.categories.Create(context.Background(), category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func TestCreateRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an income", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateRecordUseCase(f.records, f.categories, f.users)

		out, err := uc.Execute(ctx, CreateRecordInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindIncome,
			Name:    "job",
			Value:   100000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Record.Value != 100000 || out.Record.Kind != entity.RecordKindIncome {
			t.Errorf("unexpected record: %+v", out.Record)
		}

		all, err := f.records.FindAllByOwner(ctx, f.ownerID, entity.RecordKindIncome)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected 1 persisted income, got %d", len(all))
		}
	})

	t.Run("rejects a negative value", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateRecordUseCase(f.records, f.categories, f.users)

		_, err := uc.Execute(ctx, CreateRecordInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindExpense,
			Name:    "refund gone wrong",
			Value:   -100,
		})
		if !errors.Is(err, domainerror.ErrInvalidRecordValue) {
			t.Errorf("expected ErrInvalidRecordValue, got %v", err)
		}
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateRecordUseCase(f.records, f.categories, f.users)
		missing := uuid.New()

		_, err := uc.Execute(ctx, CreateRecordInput{
			OwnerID:    f.ownerID,
			Kind:       entity.RecordKindExpense,
			Name:       "market",
			Value:      1000,
			CategoryID: &missing,
		})
		if !errors.Is(err, domainerror.ErrCategoryNotFoundForRecord) {
			t.Errorf("expected ErrCategoryNotFoundForRecord, got %v", err)
		}
	})

	t.Run("rejects another owner's category", func(t *testing.T) {
		f := newFixture(t)
		other := entity.NewUser("other@example.com", "Other", "hash")
		if err := f.users.Create(ctx, other); err != nil {
			t.Fatalf("failed to seed second owner: %v", err)
		}
		foreign := entity.NewCategory("Their groceries", "", other.ID)
		if err := f.categories.Create(ctx, foreign); err != nil {
			t.Fatalf("failed to seed category: %v", err)
		}

		uc := NewCreateRecordUseCase(f.records, f.categories, f.users)
		_, err := uc.Execute(ctx, CreateRecordInput{
			OwnerID:    f.ownerID,
			Kind:       entity.RecordKindExpense,
			Name:       "market",
			Value:      1000,
			CategoryID: &foreign.ID,
		})
		if !errors.Is(err, domainerror.ErrCategoryNotOwnedByUser) {
			t.Errorf("expected ErrCategoryNotOwnedByUser, got %v", err)
		}
	})
}

func TestUpdateRecord(t *testing.T) {
	ctx := context.Background()
	int64Ptr := func(v int64) *int64 { return &v }
	strPtr := func(s string) *string { return &s }

	seedExpense := func(t *testing.T, f *fixture, value int64) *entity.Record {
		t.Helper()
		out, err := NewCreateRecordUseCase(f.records, f.categories, f.users).Execute(ctx, CreateRecordInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindExpense,
			Name:    "market",
			Value:   value,
		})
		if err != nil {
			t.Fatalf("failed to seed expense: %v", err)
		}
		return out.Record
	}

	historyRows := func(t *testing.T, f *fixture) []*entity.RecordHistory {
		t.Helper()
		out, err := NewListHistoryUseCase(f.history, f.users).Execute(ctx, ListHistoryInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindExpense,
			Page:    query.Page{Disabled: true},
		})
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		return out.Result.Results
	}

	t.Run("appends one history row per change", func(t *testing.T) {
		f := newFixture(t)
		record := seedExpense(t, f, 8000)

		uc := NewUpdateRecordUseCase(f.records, f.categories)
		out, err := uc.Execute(ctx, UpdateRecordInput{
			RecordID: record.ID,
			OwnerID:  f.ownerID,
			Kind:     entity.RecordKindExpense,
			Value:    int64Ptr(9500),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Record.Value != 9500 {
			t.Errorf("expected updated value 9500, got %d", out.Record.Value)
		}

		rows := historyRows(t, f)
		if len(rows) != 1 {
			t.Fatalf("expected 1 history row, got %d", len(rows))
		}
		if rows[0].Value != 8000 {
			t.Errorf("history must capture the pre-update value, got %d", rows[0].Value)
		}
		if rows[0].RecordID != record.ID {
			t.Error("history row points at the wrong record")
		}
	})

	t.Run("a no-op update appends nothing", func(t *testing.T) {
		f := newFixture(t)
		record := seedExpense(t, f, 8000)

		uc := NewUpdateRecordUseCase(f.records, f.categories)
		if _, err := uc.Execute(ctx, UpdateRecordInput{
			RecordID: record.ID,
			OwnerID:  f.ownerID,
			Kind:     entity.RecordKindExpense,
			Value:    int64Ptr(8000),
			Name:     strPtr("market"),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rows := historyRows(t, f); len(rows) != 0 {
			t.Errorf("expected no history rows, got %d", len(rows))
		}
	})

	t.Run("clears the category", func(t *testing.T) {
		f := newFixture(t)
		category := f.seedCategory(t, "Groceries")
		created, err := NewCreateRecordUseCase(f.records, f.categories, f.users).Execute(ctx, CreateRecordInput{
			OwnerID:    f.ownerID,
			Kind:       entity.RecordKindExpense,
			Name:       "market",
			Value:      1000,
			CategoryID: &category.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := NewUpdateRecordUseCase(f.records, f.categories).Execute(ctx, UpdateRecordInput{
			RecordID:      created.Record.ID,
			OwnerID:       f.ownerID,
			Kind:          entity.RecordKindExpense,
			ClearCategory: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Record.CategoryID != nil {
			t.Error("expected the category reference to be cleared")
		}

		rows := historyRows(t, f)
		if len(rows) != 1 {
			t.Fatalf("expected 1 history row, got %d", len(rows))
		}
		if rows[0].CategoryID == nil || *rows[0].CategoryID != category.ID {
			t.Error("history must capture the pre-update category")
		}
	})

	t.Run("a kind mismatch reads as not found", func(t *testing.T) {
		f := newFixture(t)
		record := seedExpense(t, f, 8000)

		_, err := NewUpdateRecordUseCase(f.records, f.categories).Execute(ctx, UpdateRecordInput{
			RecordID: record.ID,
			OwnerID:  f.ownerID,
			Kind:     entity.RecordKindIncome,
			Value:    int64Ptr(100),
		})
		if !errors.Is(err, domainerror.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("rejects another owner's record", func(t *testing.T) {
		f := newFixture(t)
		record := seedExpense(t, f, 8000)

		_, err := NewUpdateRecordUseCase(f.records, f.categories).Execute(ctx, UpdateRecordInput{
			RecordID: record.ID,
			OwnerID:  uuid.New(),
			Kind:     entity.RecordKindExpense,
			Value:    int64Ptr(100),
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyRecord) {
			t.Errorf("expected ErrNotAuthorizedToModifyRecord, got %v", err)
		}
	})
}

func TestDeleteRecord(t *testing.T) {
	ctx := context.Background()
	int64Ptr := func(v int64) *int64 { return &v }

	t.Run("deletes the record and its history", func(t *testing.T) {
		f := newFixture(t)
		created, err := NewCreateRecordUseCase(f.records, f.categories, f.users).Execute(ctx, CreateRecordInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindExpense,
			Name:    "market",
			Value:   1000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		update := NewUpdateRecordUseCase(f.records, f.categories)
		for i, v := range []int64{2000, 3000} {
			if _, err := update.Execute(ctx, UpdateRecordInput{
				RecordID: created.Record.ID,
				OwnerID:  f.ownerID,
				Kind:     entity.RecordKindExpense,
				Value:    int64Ptr(v),
			}); err != nil {
				t.Fatalf("update %d failed: %v", i, err)
			}
		}

		out, err := NewDeleteRecordUseCase(f.records).Execute(ctx, DeleteRecordInput{
			RecordID: created.Record.ID,
			OwnerID:  f.ownerID,
			Kind:     entity.RecordKindExpense,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Success {
			t.Error("expected success")
		}

		history, err := NewListHistoryUseCase(f.history, f.users).Execute(ctx, ListHistoryInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindExpense,
			Page:    query.Page{Disabled: true},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if history.Result.Count != 0 {
			t.Errorf("expected history to cascade, got %d rows", history.Result.Count)
		}
	})

	t.Run("deleting twice reads as not found", func(t *testing.T) {
		f := newFixture(t)
		created, err := NewCreateRecordUseCase(f.records, f.categories, f.users).Execute(ctx, CreateRecordInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindIncome,
			Name:    "job",
			Value:   1000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewDeleteRecordUseCase(f.records)
		input := DeleteRecordInput{
			RecordID: created.Record.ID,
			OwnerID:  f.ownerID,
			Kind:     entity.RecordKindIncome,
		}
		if _, err := uc.Execute(ctx, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uc.Execute(ctx, input); !errors.Is(err, domainerror.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound, got %v", err)
		}
	})
}

func TestListRecords(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	create := NewCreateRecordUseCase(f.records, f.categories, f.users)
	for _, name := range []string{"job", "bonus", "job extra"} {
		if _, err := create.Execute(ctx, CreateRecordInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindIncome,
			Name:    name,
			Value:   100000,
		}); err != nil {
			t.Fatalf("failed to seed %s: %v", name, err)
		}
	}

	t.Run("lists only the requested kind", func(t *testing.T) {
		out, err := NewListRecordsUseCase(f.records, f.users).Execute(ctx, ListRecordsInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindExpense,
			Page:    query.DefaultPagination(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Result.Count != 0 {
			t.Errorf("expected no expenses, got %d", out.Result.Count)
		}
	})

	t.Run("filters by name substring", func(t *testing.T) {
		out, err := NewListRecordsUseCase(f.records, f.users).Execute(ctx, ListRecordsInput{
			OwnerID: f.ownerID,
			Kind:    entity.RecordKindIncome,
			Filter:  query.Filter{Name: "job"},
			Page:    query.DefaultPagination(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Result.Count != 2 {
			t.Errorf("expected 2 matching incomes, got %d", out.Result.Count)
		}
	})

	t.Run("rejects an unknown owner", func(t *testing.T) {
		_, err := NewListRecordsUseCase(f.records, f.users).Execute(ctx, ListRecordsInput{
			OwnerID: uuid.New(),
			Kind:    entity.RecordKindIncome,
			Page:    query.DefaultPagination(),
		})
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}
