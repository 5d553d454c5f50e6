package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
	"github.com/finance-records/backend/internal/integration/memory"
)

type fixture struct {
	categories adapter.CategoryRepository
	records    adapter.RecordRepository
	users      adapter.UserRepository
	ownerID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		categories: memory.NewCategoryRepository(store),
		records:    memory.NewRecordRepository(store),
		users:      memory.NewUserRepository(store),
	}

	owner := entity.NewUser("owner@example.com", "Owner", "hash")
	if err := f.users.Create(context.Background(), owner); err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	f.ownerID = owner.ID

	return f
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a category", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateCategoryUseCase(f.categories, f.users)

		out, err := uc.Execute(ctx, CreateCategoryInput{
			OwnerID:     f.ownerID,
			Name:        "Groceries",
			Description: "weekly shopping",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != "Groceries" || out.Category.OwnerID != f.ownerID {
			t.Errorf("unexpected category: %+v", out.Category)
		}

		found, err := f.categories.FindByID(ctx, out.Category.ID)
		if err != nil {
			t.Fatalf("created category not persisted: %v", err)
		}
		if found.Description != "weekly shopping" {
			t.Errorf("unexpected description: %q", found.Description)
		}
	})

	t.Run("rejects a duplicate name for the same owner", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateCategoryUseCase(f.categories, f.users)

		if _, err := uc.Execute(ctx, CreateCategoryInput{OwnerID: f.ownerID, Name: "Groceries"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := uc.Execute(ctx, CreateCategoryInput{OwnerID: f.ownerID, Name: "Groceries"})
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			t.Errorf("expected ErrCategoryNameExists, got %v", err)
		}
	})

	t.Run("allows the same name for another owner", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateCategoryUseCase(f.categories, f.users)

		other := entity.NewUser("other@example.com", "Other", "hash")
		if err := f.users.Create(ctx, other); err != nil {
			t.Fatalf("failed to seed second owner: %v", err)
		}

		if _, err := uc.Execute(ctx, CreateCategoryInput{OwnerID: f.ownerID, Name: "Groceries"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uc.Execute(ctx, CreateCategoryInput{OwnerID: other.ID, Name: "Groceries"}); err != nil {
			t.Errorf("names are scoped per owner, got %v", err)
		}
	})

	t.Run("rejects a name over the limit", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateCategoryUseCase(f.categories, f.users)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			OwnerID: f.ownerID,
			Name:    strings.Repeat("x", entity.MaxCategoryNameLength+1),
		})
		if !errors.Is(err, domainerror.ErrCategoryNameTooLong) {
			t.Errorf("expected ErrCategoryNameTooLong, got %v", err)
		}
	})

	t.Run("rejects an unknown owner", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateCategoryUseCase(f.categories, f.users)

		_, err := uc.Execute(ctx, CreateCategoryInput{OwnerID: uuid.New(), Name: "Groceries"})
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("renames and keeps description", func(t *testing.T) {
		f := newFixture(t)
		created, err := NewCreateCategoryUseCase(f.categories, f.users).Execute(ctx,
			CreateCategoryInput{OwnerID: f.ownerID, Name: "Groceries", Description: "food"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := NewUpdateCategoryUseCase(f.categories).Execute(ctx, UpdateCategoryInput{
			CategoryID: created.Category.ID,
			OwnerID:    f.ownerID,
			Name:       strPtr("Food"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != "Food" || out.Category.Description != "food" {
			t.Errorf("unexpected category after rename: %+v", out.Category)
		}
	})

	t.Run("rejects renaming onto another category", func(t *testing.T) {
		f := newFixture(t)
		create := NewCreateCategoryUseCase(f.categories, f.users)
		first, err := create.Execute(ctx, CreateCategoryInput{OwnerID: f.ownerID, Name: "Groceries"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := create.Execute(ctx, CreateCategoryInput{OwnerID: f.ownerID, Name: "Rent"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = NewUpdateCategoryUseCase(f.categories).Execute(ctx, UpdateCategoryInput{
			CategoryID: first.Category.ID,
			OwnerID:    f.ownerID,
			Name:       strPtr("Rent"),
		})
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			t.Errorf("expected ErrCategoryNameExists, got %v", err)
		}
	})

	t.Run("rejects another owner's category", func(t *testing.T) {
		f := newFixture(t)
		created, err := NewCreateCategoryUseCase(f.categories, f.users).Execute(ctx,
			CreateCategoryInput{OwnerID: f.ownerID, Name: "Groceries"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = NewUpdateCategoryUseCase(f.categories).Execute(ctx, UpdateCategoryInput{
			CategoryID: created.Category.ID,
			OwnerID:    uuid.New(),
			Name:       strPtr("Stolen"),
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyCategory) {
			t.Errorf("expected ErrNotAuthorizedToModifyCategory, got %v", err)
		}
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewUpdateCategoryUseCase(f.categories).Execute(ctx, UpdateCategoryInput{
			CategoryID: uuid.New(),
			OwnerID:    f.ownerID,
			Name:       strPtr("Anything"),
		})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("detaches dependent records and reports the count", func(t *testing.T) {
		f := newFixture(t)
		created, err := NewCreateCategoryUseCase(f.categories, f.users).Execute(ctx,
			CreateCategoryInput{OwnerID: f.ownerID, Name: "Groceries"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		categoryID := created.Category.ID

		for i := 0; i < 3; i++ {
			record := entity.NewRecord(f.ownerID, entity.RecordKindExpense, "market", 1000, "", &categoryID)
			if err := f.records.Create(ctx, record); err != nil {
				t.Fatalf("failed to seed record: %v", err)
			}
		}

		out, err := NewDeleteCategoryUseCase(f.categories, f.records).Execute(ctx, DeleteCategoryInput{
			CategoryID: categoryID,
			OwnerID:    f.ownerID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.DetachedRecords != 3 {
			t.Errorf("expected 3 detached records, got %d", out.DetachedRecords)
		}

		if _, err := f.categories.FindByID(ctx, categoryID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected category to be gone, got %v", err)
		}

		remaining, err := f.records.FindAllByOwner(ctx, f.ownerID, entity.RecordKindExpense)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 3 {
			t.Fatalf("records must survive the category, got %d", len(remaining))
		}
		for _, record := range remaining {
			if record.CategoryID != nil {
				t.Error("expected record to be uncategorized")
			}
		}
	})

	t.Run("rejects another owner's category", func(t *testing.T) {
		f := newFixture(t)
		created, err := NewCreateCategoryUseCase(f.categories, f.users).Execute(ctx,
			CreateCategoryInput{OwnerID: f.ownerID, Name: "Groceries"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = NewDeleteCategoryUseCase(f.categories, f.records).Execute(ctx, DeleteCategoryInput{
			CategoryID: created.Category.ID,
			OwnerID:    uuid.New(),
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyCategory) {
			t.Errorf("expected ErrNotAuthorizedToModifyCategory, got %v", err)
		}
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	create := NewCreateCategoryUseCase(f.categories, f.users)
	for _, name := range []string{"Groceries", "Rent", "Transport"} {
		if _, err := create.Execute(ctx, CreateCategoryInput{OwnerID: f.ownerID, Name: name}); err != nil {
			t.Fatalf("failed to seed %s: %v", name, err)
		}
	}

	t.Run("lists the owner's categories", func(t *testing.T) {
		out, err := NewListCategoriesUseCase(f.categories, f.users).Execute(ctx, ListCategoriesInput{
			OwnerID: f.ownerID,
			Page:    query.DefaultPagination(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Result.Count != 3 {
			t.Errorf("expected 3 categories, got %d", out.Result.Count)
		}
	})

	t.Run("filters by name substring", func(t *testing.T) {
		out, err := NewListCategoriesUseCase(f.categories, f.users).Execute(ctx, ListCategoriesInput{
			OwnerID: f.ownerID,
			Filter:  query.Filter{Name: "Gro"},
			Page:    query.DefaultPagination(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Result.Count != 1 || out.Result.Results[0].Name != "Groceries" {
			t.Errorf("unexpected filter result: count %d", out.Result.Count)
		}
	})
}
