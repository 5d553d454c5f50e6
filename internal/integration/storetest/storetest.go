// Package storetest defines the behavioral contract both storage backends
// must satisfy. The memory and persistence packages each run this suite
// against their own repositories, so a listing executed against either
// backend produces identical results.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
)

// Backend bundles one backend's repositories. All repositories must share
// state: a record created through Records is visible to History cascades and
// category detachment.
type Backend struct {
	Categories adapter.CategoryRepository
	Records    adapter.RecordRepository
	History    adapter.HistoryRepository
	Users      adapter.UserRepository
	Tokens     adapter.TokenRepository
}

// Factory builds a fresh, empty backend for one subtest.
type Factory func(t *testing.T) *Backend

// Run executes the full contract suite against the backend the factory
// produces.
func Run(t *testing.T, newBackend Factory) {
	t.Run("record pagination", func(t *testing.T) { testRecordPagination(t, newBackend(t)) })
	t.Run("record sorting", func(t *testing.T) { testRecordSorting(t, newBackend(t)) })
	t.Run("record filtering", func(t *testing.T) { testRecordFiltering(t, newBackend(t)) })
	t.Run("record kind isolation", func(t *testing.T) { testRecordKindIsolation(t, newBackend(t)) })
	t.Run("update appends history", func(t *testing.T) { testUpdateAppendsHistory(t, newBackend(t)) })
	t.Run("delete cascades history", func(t *testing.T) { testDeleteCascadesHistory(t, newBackend(t)) })
	t.Run("detach category", func(t *testing.T) { testDetachCategory(t, newBackend(t)) })
	t.Run("category uniqueness", func(t *testing.T) { testCategoryUniqueness(t, newBackend(t)) })
	t.Run("category pagination", func(t *testing.T) { testCategoryPagination(t, newBackend(t)) })
	t.Run("category record filters", func(t *testing.T) { testCategoryRecordFilters(t, newBackend(t)) })
	t.Run("users", func(t *testing.T) { testUsers(t, newBackend(t)) })
	t.Run("refresh tokens", func(t *testing.T) { testRefreshTokens(t, newBackend(t)) })
}

// baseTime anchors all seeded timestamps so date range assertions are
// deterministic.
var baseTime = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, b *Backend) *entity.User {
	t.Helper()
	user := entity.NewUser("owner@example.com", "Owner", "hash")
	if err := b.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func seedRecord(t *testing.T, b *Backend, ownerID uuid.UUID, kind entity.RecordKind, name string, value int64, createdAt time.Time) *entity.Record {
	t.Helper()
	record := &entity.Record{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Kind:      kind,
		Name:      name,
		Value:     value,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := b.Records.Create(context.Background(), record); err != nil {
		t.Fatalf("create record %q: %v", name, err)
	}
	return record
}

func testRecordPagination(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	for i := 0; i < 25; i++ {
		seedRecord(t, b, user.ID, entity.RecordKindExpense, "expense", 100, baseTime.Add(time.Duration(i)*time.Minute))
	}

	result, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
		query.Filter{}, query.DirectionAsc, query.Page{Number: 3, PerPage: 10})
	if err != nil {
		t.Fatalf("find by filter: %v", err)
	}

	if result.Count != 25 {
		t.Errorf("expected count 25, got %d", result.Count)
	}
	if result.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", result.TotalPages)
	}
	if len(result.Results) != 5 {
		t.Fatalf("expected 5 results on last page, got %d", len(result.Results))
	}
	if result.Next != nil {
		t.Errorf("expected nil next on last page, got %d", *result.Next)
	}
	if result.Previous == nil || *result.Previous != 2 {
		t.Errorf("expected previous 2, got %v", result.Previous)
	}

	disabled, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
		query.Filter{}, query.DirectionAsc, query.Page{Disabled: true})
	if err != nil {
		t.Fatalf("find with pagination disabled: %v", err)
	}
	if len(disabled.Results) != 25 {
		t.Errorf("expected all 25 results with pagination disabled, got %d", len(disabled.Results))
	}
	if disabled.Page != 1 || disabled.TotalPages != 1 {
		t.Errorf("expected page 1 of 1 with pagination disabled, got %d of %d",
			disabled.Page, disabled.TotalPages)
	}
	if disabled.PerPage != 25 {
		t.Errorf("expected per_page 25 with pagination disabled, got %d", disabled.PerPage)
	}

	empty, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
		query.Filter{Name: "no such record"}, query.DirectionAsc, query.Page{Number: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("find with empty result: %v", err)
	}
	if empty.Count != 0 || empty.TotalPages != 1 {
		t.Errorf("expected count 0 and 1 total page, got %d and %d", empty.Count, empty.TotalPages)
	}
	if empty.Next != nil || empty.Previous != nil {
		t.Error("expected nil next and previous for empty result")
	}
}

func testRecordSorting(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	oldest := seedRecord(t, b, user.ID, entity.RecordKindIncome, "oldest", 100, baseTime)
	middle := seedRecord(t, b, user.ID, entity.RecordKindIncome, "middle", 100, baseTime.Add(time.Hour))
	newest := seedRecord(t, b, user.ID, entity.RecordKindIncome, "newest", 100, baseTime.Add(2*time.Hour))

	desc, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindIncome,
		query.Filter{}, query.DirectionDesc, query.Page{Number: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("find desc: %v", err)
	}
	if got := ids(desc.Results); got[0] != newest.ID || got[1] != middle.ID || got[2] != oldest.ID {
		t.Errorf("unexpected desc order: %v", got)
	}

	asc, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindIncome,
		query.Filter{}, query.DirectionAsc, query.Page{Number: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("find asc: %v", err)
	}
	if got := ids(asc.Results); got[0] != oldest.ID || got[1] != middle.ID || got[2] != newest.ID {
		t.Errorf("unexpected asc order: %v", got)
	}

	// Equal timestamps fall back to ID byte order in both directions, so
	// repeated listings never flip.
	tiedAt := baseTime.Add(3 * time.Hour)
	for i := 0; i < 5; i++ {
		seedRecord(t, b, user.ID, entity.RecordKindIncome, "tied", 100, tiedAt)
	}
	first, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindIncome,
		query.Filter{Name: "tied"}, query.DirectionDesc, query.Page{Number: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("find tied: %v", err)
	}
	second, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindIncome,
		query.Filter{Name: "tied"}, query.DirectionDesc, query.Page{Number: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("find tied again: %v", err)
	}
	firstIDs, secondIDs := ids(first.Results), ids(second.Results)
	if len(firstIDs) != 5 {
		t.Fatalf("expected 5 tied records, got %d", len(firstIDs))
	}
	for i := range firstIDs {
		if firstIDs[i] != secondIDs[i] {
			t.Fatalf("tied order not stable at position %d: %s vs %s", i, firstIDs[i], secondIDs[i])
		}
	}
}

func testRecordFiltering(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	category := entity.NewCategory("Groceries", "", user.ID)
	if err := b.Categories.Create(ctx, category); err != nil {
		t.Fatalf("create category: %v", err)
	}

	groceries := &entity.Record{
		ID: uuid.New(), OwnerID: user.ID, Kind: entity.RecordKindExpense,
		Name: "Grocery run", Value: 15000, CategoryID: &category.ID,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	if err := b.Records.Create(ctx, groceries); err != nil {
		t.Fatalf("create record: %v", err)
	}
	seedRecord(t, b, user.ID, entity.RecordKindExpense, "gym membership", 9900, baseTime.Add(48*time.Hour))

	t.Run("name substring is case sensitive", func(t *testing.T) {
		match, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
			query.Filter{Name: "Grocery"}, query.DefaultDirection, query.DefaultPagination())
		if err != nil {
			t.Fatalf("find by name: %v", err)
		}
		if match.Count != 1 {
			t.Fatalf("expected 1 match for 'Grocery', got %d", match.Count)
		}

		miss, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
			query.Filter{Name: "grocery"}, query.DefaultDirection, query.DefaultPagination())
		if err != nil {
			t.Fatalf("find by lowercase name: %v", err)
		}
		if miss.Count != 0 {
			t.Errorf("expected no match for 'grocery', got %d", miss.Count)
		}
	})

	t.Run("exact value", func(t *testing.T) {
		value := int64(9900)
		result, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
			query.Filter{Value: &value}, query.DefaultDirection, query.DefaultPagination())
		if err != nil {
			t.Fatalf("find by value: %v", err)
		}
		if result.Count != 1 || result.Results[0].Name != "gym membership" {
			t.Errorf("expected only the gym record, got %d results", result.Count)
		}
	})

	t.Run("category", func(t *testing.T) {
		result, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
			query.Filter{CategoryID: &category.ID}, query.DefaultDirection, query.DefaultPagination())
		if err != nil {
			t.Fatalf("find by category: %v", err)
		}
		if result.Count != 1 || result.Results[0].ID != groceries.ID {
			t.Errorf("expected only the categorized record, got %d results", result.Count)
		}
	})

	t.Run("single day range", func(t *testing.T) {
		from := baseTime
		result, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
			query.Filter{CreatedAt: query.DateRange{From: &from}}, query.DefaultDirection, query.DefaultPagination())
		if err != nil {
			t.Fatalf("find by day: %v", err)
		}
		if result.Count != 1 || result.Results[0].ID != groceries.ID {
			t.Errorf("expected only the record created that day, got %d results", result.Count)
		}
	})

	t.Run("inclusive range spans both days", func(t *testing.T) {
		from := baseTime
		to := baseTime.Add(48 * time.Hour)
		result, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
			query.Filter{CreatedAt: query.DateRange{From: &from, To: &to}}, query.DefaultDirection, query.DefaultPagination())
		if err != nil {
			t.Fatalf("find by range: %v", err)
		}
		if result.Count != 2 {
			t.Errorf("expected both records in range, got %d", result.Count)
		}
	})
}

func testRecordKindIsolation(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	seedRecord(t, b, user.ID, entity.RecordKindIncome, "salary", 500000, baseTime)
	seedRecord(t, b, user.ID, entity.RecordKindExpense, "rent", 200000, baseTime)

	incomes, err := b.Records.FindByFilter(ctx, user.ID, entity.RecordKindIncome,
		query.Filter{}, query.DefaultDirection, query.DefaultPagination())
	if err != nil {
		t.Fatalf("find incomes: %v", err)
	}
	if incomes.Count != 1 || incomes.Results[0].Name != "salary" {
		t.Errorf("expected the single income, got %d results", incomes.Count)
	}

	expenses, err := b.Records.FindAllByOwner(ctx, user.ID, entity.RecordKindExpense)
	if err != nil {
		t.Fatalf("find all expenses: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Name != "rent" {
		t.Errorf("expected the single expense, got %d results", len(expenses))
	}
}

func testUpdateAppendsHistory(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)
	record := seedRecord(t, b, user.ID, entity.RecordKindExpense, "internet", 8000, baseTime)

	snapshot := entity.NewRecordHistory(record)
	record.Value = 9500
	record.UpdatedAt = baseTime.Add(time.Hour)
	if err := b.Records.Update(ctx, record, snapshot); err != nil {
		t.Fatalf("update record: %v", err)
	}

	updated, err := b.Records.FindByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("find updated record: %v", err)
	}
	if updated.Value != 9500 {
		t.Errorf("expected updated value 9500, got %d", updated.Value)
	}

	history, err := b.History.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
		query.Filter{}, query.DefaultDirection, query.DefaultPagination())
	if err != nil {
		t.Fatalf("find history: %v", err)
	}
	if history.Count != 1 {
		t.Fatalf("expected 1 history entry, got %d", history.Count)
	}
	entry := history.Results[0]
	if entry.RecordID != record.ID {
		t.Errorf("expected history for record %s, got %s", record.ID, entry.RecordID)
	}
	if entry.Value != 8000 {
		t.Errorf("expected snapshot of pre-update value 8000, got %d", entry.Value)
	}

	missing := &entity.Record{ID: uuid.New(), OwnerID: user.ID, Kind: entity.RecordKindExpense, Name: "ghost"}
	if err := b.Records.Update(ctx, missing, entity.NewRecordHistory(missing)); err == nil {
		t.Error("expected error updating a missing record")
	}
}

func testDeleteCascadesHistory(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)
	record := seedRecord(t, b, user.ID, entity.RecordKindIncome, "bonus", 100000, baseTime)

	for i := 0; i < 3; i++ {
		snapshot := entity.NewRecordHistory(record)
		record.Value += 1000
		if err := b.Records.Update(ctx, record, snapshot); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	if err := b.Records.Delete(ctx, record.ID); err != nil {
		t.Fatalf("delete record: %v", err)
	}

	if _, err := b.Records.FindByID(ctx, record.ID); err == nil {
		t.Error("expected record to be gone")
	}

	history, err := b.History.FindByFilter(ctx, user.ID, entity.RecordKindIncome,
		query.Filter{}, query.DefaultDirection, query.DefaultPagination())
	if err != nil {
		t.Fatalf("find history: %v", err)
	}
	if history.Count != 0 {
		t.Errorf("expected history cascade, %d entries remain", history.Count)
	}

	if err := b.Records.Delete(ctx, record.ID); err == nil {
		t.Error("expected error deleting a missing record")
	}
}

func testDetachCategory(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)
	other := entity.NewUser("other@example.com", "Other", "hash")
	if err := b.Users.Create(ctx, other); err != nil {
		t.Fatalf("create other user: %v", err)
	}

	category := entity.NewCategory("Transport", "", user.ID)
	if err := b.Categories.Create(ctx, category); err != nil {
		t.Fatalf("create category: %v", err)
	}

	var tagged []*entity.Record
	for i := 0; i < 3; i++ {
		record := &entity.Record{
			ID: uuid.New(), OwnerID: user.ID, Kind: entity.RecordKindExpense,
			Name: "fare", Value: 500, CategoryID: &category.ID,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
			UpdatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		}
		if err := b.Records.Create(ctx, record); err != nil {
			t.Fatalf("create tagged record: %v", err)
		}
		tagged = append(tagged, record)
	}
	snapshot := entity.NewRecordHistory(tagged[0])
	tagged[0].Value = 600
	if err := b.Records.Update(ctx, tagged[0], snapshot); err != nil {
		t.Fatalf("update tagged record: %v", err)
	}

	otherRecord := &entity.Record{
		ID: uuid.New(), OwnerID: other.ID, Kind: entity.RecordKindExpense,
		Name: "fare", Value: 500, CategoryID: &category.ID,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	if err := b.Records.Create(ctx, otherRecord); err != nil {
		t.Fatalf("create other's record: %v", err)
	}

	detached, err := b.Records.DetachCategory(ctx, category.ID, user.ID)
	if err != nil {
		t.Fatalf("detach category: %v", err)
	}
	if detached != 3 {
		t.Errorf("expected 3 detached records, got %d", detached)
	}

	for _, record := range tagged {
		got, err := b.Records.FindByID(ctx, record.ID)
		if err != nil {
			t.Fatalf("find detached record: %v", err)
		}
		if got.CategoryID != nil {
			t.Errorf("expected nil category on record %s", record.ID)
		}
	}

	history, err := b.History.FindByFilter(ctx, user.ID, entity.RecordKindExpense,
		query.Filter{}, query.DefaultDirection, query.DefaultPagination())
	if err != nil {
		t.Fatalf("find history: %v", err)
	}
	for _, entry := range history.Results {
		if entry.CategoryID != nil {
			t.Errorf("expected nil category on history entry %s", entry.ID)
		}
	}

	untouched, err := b.Records.FindByID(ctx, otherRecord.ID)
	if err != nil {
		t.Fatalf("find other's record: %v", err)
	}
	if untouched.CategoryID == nil {
		t.Error("expected other owner's record to keep its category")
	}
}

func testCategoryUniqueness(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	category := entity.NewCategory("Bills", "monthly bills", user.ID)
	if err := b.Categories.Create(ctx, category); err != nil {
		t.Fatalf("create category: %v", err)
	}

	exists, err := b.Categories.ExistsByNameAndOwner(ctx, "Bills", user.ID)
	if err != nil {
		t.Fatalf("exists check: %v", err)
	}
	if !exists {
		t.Error("expected Bills to exist for owner")
	}

	exists, err = b.Categories.ExistsByNameAndOwner(ctx, "Bills", uuid.New())
	if err != nil {
		t.Fatalf("exists check for other owner: %v", err)
	}
	if exists {
		t.Error("expected Bills to be scoped to its owner")
	}

	found, err := b.Categories.FindByNameAndOwner(ctx, "Bills", user.ID)
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if found.ID != category.ID {
		t.Errorf("expected category %s, got %s", category.ID, found.ID)
	}

	category.Description = "all recurring bills"
	category.UpdatedAt = baseTime.Add(time.Hour)
	if err := b.Categories.Update(ctx, category); err != nil {
		t.Fatalf("update category: %v", err)
	}
	updated, err := b.Categories.FindByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("find updated category: %v", err)
	}
	if updated.Description != "all recurring bills" {
		t.Errorf("expected updated description, got %q", updated.Description)
	}

	if err := b.Categories.Delete(ctx, category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if _, err := b.Categories.FindByID(ctx, category.ID); err == nil {
		t.Error("expected category to be gone")
	}
	if err := b.Categories.Delete(ctx, category.ID); err == nil {
		t.Error("expected error deleting a missing category")
	}
}

func testCategoryPagination(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	for i := 0; i < 22; i++ {
		category := &entity.Category{
			ID: uuid.New(), Name: "cat", OwnerID: user.ID,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
			UpdatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		}
		category.Name = category.ID.String()[:8]
		if err := b.Categories.Create(ctx, category); err != nil {
			t.Fatalf("create category %d: %v", i, err)
		}
	}

	result, err := b.Categories.FindByFilter(ctx, user.ID,
		query.Filter{}, query.DirectionAsc, query.Page{Number: 3, PerPage: 10})
	if err != nil {
		t.Fatalf("find page 3: %v", err)
	}
	if result.Count != 22 || result.TotalPages != 3 {
		t.Errorf("expected 22 categories over 3 pages, got %d over %d",
			result.Count, result.TotalPages)
	}
	if len(result.Results) != 2 {
		t.Errorf("expected 2 results on page 3, got %d", len(result.Results))
	}

	all, err := b.Categories.FindAllByOwner(ctx, user.ID)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 22 {
		t.Errorf("expected all 22 categories, got %d", len(all))
	}
}

// Categories expose no monetary value and no category reference of their
// own, so record-oriented filter fields must degrade the same way on every
// backend: a zero value matches all categories, anything else matches none.
func testCategoryRecordFilters(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	for _, name := range []string{"Groceries", "Transport"} {
		category := &entity.Category{
			ID: uuid.New(), Name: name, OwnerID: user.ID,
			CreatedAt: baseTime, UpdatedAt: baseTime,
		}
		if err := b.Categories.Create(ctx, category); err != nil {
			t.Fatalf("create category %q: %v", name, err)
		}
	}

	list := func(filter query.Filter) *query.Result[*entity.Category] {
		t.Helper()
		result, err := b.Categories.FindByFilter(ctx, user.ID,
			filter, query.DirectionAsc, query.DefaultPagination())
		if err != nil {
			t.Fatalf("find by filter %+v: %v", filter, err)
		}
		return result
	}

	nonzero, zero := int64(1000), int64(0)
	if result := list(query.Filter{Value: &nonzero}); result.Count != 0 {
		t.Errorf("expected no categories for a non-zero value filter, got %d", result.Count)
	}
	if result := list(query.Filter{Value: &zero}); result.Count != 2 {
		t.Errorf("expected all categories for a zero value filter, got %d", result.Count)
	}

	someID := uuid.New()
	if result := list(query.Filter{CategoryID: &someID}); result.Count != 0 {
		t.Errorf("expected no categories for a category filter, got %d", result.Count)
	}
}

func testUsers(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	found, err := b.Users.FindByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, found.ID)
	}

	if _, err := b.Users.FindByEmail(ctx, "nobody@example.com"); err == nil {
		t.Error("expected error for unknown email")
	}

	exists, err := b.Users.ExistsByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("exists by id: %v", err)
	}
	if !exists {
		t.Error("expected user to exist")
	}

	exists, err = b.Users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("exists by email: %v", err)
	}
	if !exists {
		t.Error("expected email to exist")
	}
}

func testRefreshTokens(t *testing.T, b *Backend) {
	ctx := context.Background()
	user := seedUser(t, b)

	if err := b.Tokens.SaveRefreshToken(ctx, "token-a", user.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("save token: %v", err)
	}

	valid, err := b.Tokens.IsRefreshTokenValid(ctx, "token-a")
	if err != nil {
		t.Fatalf("validity check: %v", err)
	}
	if !valid {
		t.Error("expected fresh token to be valid")
	}

	valid, err = b.Tokens.IsRefreshTokenValid(ctx, "unknown")
	if err != nil {
		t.Fatalf("unknown token check: %v", err)
	}
	if valid {
		t.Error("expected unknown token to be invalid")
	}

	if err := b.Tokens.SaveRefreshToken(ctx, "token-b", user.ID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("save expired token: %v", err)
	}
	valid, err = b.Tokens.IsRefreshTokenValid(ctx, "token-b")
	if err != nil {
		t.Fatalf("expired token check: %v", err)
	}
	if valid {
		t.Error("expected expired token to be invalid")
	}

	if err := b.Tokens.InvalidateRefreshToken(ctx, "token-a"); err != nil {
		t.Fatalf("invalidate token: %v", err)
	}
	valid, err = b.Tokens.IsRefreshTokenValid(ctx, "token-a")
	if err != nil {
		t.Fatalf("invalidated token check: %v", err)
	}
	if valid {
		t.Error("expected invalidated token to be invalid")
	}

	// Logout is idempotent.
	if err := b.Tokens.InvalidateRefreshToken(ctx, "token-a"); err != nil {
		t.Errorf("second invalidation should not fail: %v", err)
	}
}

func ids[T interface{ FilterID() uuid.UUID }](results []T) []uuid.UUID {
	out := make([]uuid.UUID, len(results))
	for i, r := range results {
		out[i] = r.FilterID()
	}
	return out
}
