package query

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// testRecord is the minimal Filterable used by the engine tests.
type testRecord struct {
	id         uuid.UUID
	name       string
	value      int64
	categoryID *uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func (r testRecord) FilterName() string           { return r.name }
func (r testRecord) FilterValue() int64           { return r.value }
func (r testRecord) FilterCategoryID() *uuid.UUID { return r.categoryID }
func (r testRecord) FilterCreatedAt() time.Time   { return r.createdAt }
func (r testRecord) FilterUpdatedAt() time.Time   { return r.updatedAt }
func (r testRecord) FilterID() uuid.UUID          { return r.id }

var testBase = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func newTestRecord(name string, createdAt time.Time) testRecord {
	return testRecord{
		id:        uuid.New(),
		name:      name,
		value:     100,
		createdAt: createdAt,
		updatedAt: createdAt,
	}
}

func TestMetadata(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name         string
		total        int64
		page         Page
		wantPage     int
		wantTotal    int
		wantNext     *int
		wantPrevious *int
	}{
		{"first of three", 25, Page{Number: 1, PerPage: 10}, 1, 3, intPtr(2), nil},
		{"middle of three", 25, Page{Number: 2, PerPage: 10}, 2, 3, intPtr(3), intPtr(1)},
		{"last of three", 25, Page{Number: 3, PerPage: 10}, 3, 3, nil, intPtr(2)},
		{"exact multiple", 20, Page{Number: 2, PerPage: 10}, 2, 2, nil, intPtr(1)},
		{"single page", 5, Page{Number: 1, PerPage: 10}, 1, 1, nil, nil},
		{"empty collection", 0, Page{Number: 1, PerPage: 10}, 1, 1, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := Metadata(tt.total, tt.page)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta.Count != tt.total {
				t.Errorf("count: want %d, got %d", tt.total, meta.Count)
			}
			if meta.Page != tt.wantPage {
				t.Errorf("page: want %d, got %d", tt.wantPage, meta.Page)
			}
			if meta.TotalPages != tt.wantTotal {
				t.Errorf("total_pages: want %d, got %d", tt.wantTotal, meta.TotalPages)
			}
			if !intPtrEqual(meta.Next, tt.wantNext) {
				t.Errorf("next: want %v, got %v", tt.wantNext, meta.Next)
			}
			if !intPtrEqual(meta.Previous, tt.wantPrevious) {
				t.Errorf("previous: want %v, got %v", tt.wantPrevious, meta.Previous)
			}
		})
	}

	t.Run("per_page must be positive", func(t *testing.T) {
		_, err := Metadata(10, Page{Number: 1, PerPage: 0})
		if !errors.Is(err, domainerror.ErrInvalidPerPage) {
			t.Errorf("expected ErrInvalidPerPage, got %v", err)
		}
	})

	t.Run("disabled returns everything as one page", func(t *testing.T) {
		meta, err := Metadata(42, Page{Disabled: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Page != 1 || meta.TotalPages != 1 {
			t.Errorf("expected page 1 of 1, got %d of %d", meta.Page, meta.TotalPages)
		}
		if meta.PerPage != 42 {
			t.Errorf("expected per_page to echo the total, got %d", meta.PerPage)
		}
		if meta.Next != nil || meta.Previous != nil {
			t.Error("expected nil next and previous")
		}
		if meta.Limit != -1 {
			t.Errorf("expected limit -1, got %d", meta.Limit)
		}
	})
}

func TestPaginate(t *testing.T) {
	records := make([]testRecord, 25)
	for i := range records {
		records[i] = newTestRecord("r", testBase.Add(time.Duration(i)*time.Minute))
	}

	t.Run("partial last page", func(t *testing.T) {
		result, err := Paginate(records, Page{Number: 3, PerPage: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Results) != 5 {
			t.Errorf("expected 5 results, got %d", len(result.Results))
		}
		if result.Count != 25 {
			t.Errorf("count reflects the full collection, got %d", result.Count)
		}
	})

	t.Run("page beyond last is empty but keeps metadata", func(t *testing.T) {
		result, err := Paginate(records, Page{Number: 9, PerPage: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Results) != 0 {
			t.Errorf("expected no results, got %d", len(result.Results))
		}
		if result.Count != 25 || result.TotalPages != 3 {
			t.Errorf("metadata should still describe the collection: count %d, total_pages %d",
				result.Count, result.TotalPages)
		}
	})

	t.Run("walking all pages reproduces the collection once", func(t *testing.T) {
		sorted := make([]testRecord, len(records))
		copy(sorted, records)
		Sort(sorted, DirectionAsc)

		// PerPage 7 does not divide 25, so the walk crosses a partial
		// last page too.
		var walked []testRecord
		first, err := Paginate(sorted, Page{Number: 1, PerPage: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for page := 1; page <= first.TotalPages; page++ {
			result, err := Paginate(sorted, Page{Number: page, PerPage: 7})
			if err != nil {
				t.Fatalf("page %d: unexpected error: %v", page, err)
			}
			walked = append(walked, result.Results...)
		}

		if len(walked) != len(sorted) {
			t.Fatalf("expected %d records across all pages, got %d", len(sorted), len(walked))
		}
		seen := make(map[uuid.UUID]bool, len(walked))
		for i, got := range walked {
			if got.id != sorted[i].id {
				t.Errorf("position %d: expected record %s, got %s", i, sorted[i].id, got.id)
			}
			if seen[got.id] {
				t.Errorf("record %s appeared on more than one page", got.id)
			}
			seen[got.id] = true
		}
	})

	t.Run("disabled is idempotent", func(t *testing.T) {
		first, err := Paginate(records, Page{Disabled: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Paginate(first.Results, Page{Disabled: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Results) != len(second.Results) {
			t.Errorf("re-paginating the full page changed the result: %d vs %d",
				len(first.Results), len(second.Results))
		}
	})
}

func TestDateRange(t *testing.T) {
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("single day covers midnight to last nanosecond", func(t *testing.T) {
		r := DateRange{From: &day}
		lo, hi, ok := r.Bounds()
		if !ok {
			t.Fatal("expected bounded range")
		}
		if !lo.Equal(day) {
			t.Errorf("lo: want %v, got %v", day, lo)
		}
		wantHi := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		if !hi.Equal(wantHi) {
			t.Errorf("hi: want %v, got %v", wantHi, hi)
		}

		if !r.Contains(day) {
			t.Error("midnight is inside the day")
		}
		if !r.Contains(wantHi) {
			t.Error("last nanosecond is inside the day")
		}
		if r.Contains(day.Add(-time.Nanosecond)) {
			t.Error("the nanosecond before midnight is outside")
		}
		if r.Contains(wantHi.Add(time.Nanosecond)) {
			t.Error("the next midnight is outside")
		}
	})

	t.Run("from and to are both inclusive", func(t *testing.T) {
		to := day.AddDate(0, 0, 2)
		r := DateRange{From: &day, To: &to}
		if !r.Contains(day) || !r.Contains(to.Add(23*time.Hour)) {
			t.Error("expected both endpoint days inside the range")
		}
		if r.Contains(to.AddDate(0, 0, 1)) {
			t.Error("expected the day after the range to be outside")
		}
	})

	t.Run("from time of day is ignored", func(t *testing.T) {
		noon := day.Add(12 * time.Hour)
		r := DateRange{From: &noon}
		if !r.Contains(day.Add(time.Hour)) {
			t.Error("a morning timestamp of the same day must match")
		}
	})

	t.Run("unbounded matches everything", func(t *testing.T) {
		var r DateRange
		if !r.Contains(time.Unix(0, 0)) || !r.Contains(testBase) {
			t.Error("zero range must match any timestamp")
		}
	})
}

func TestMatches(t *testing.T) {
	categoryID := uuid.New()
	record := testRecord{
		id:         uuid.New(),
		name:       "Grocery run",
		value:      15000,
		categoryID: &categoryID,
		createdAt:  testBase,
		updatedAt:  testBase.AddDate(0, 0, 3),
	}

	t.Run("zero filter matches", func(t *testing.T) {
		if !Matches(record, Filter{}) {
			t.Error("expected zero filter to match")
		}
	})

	t.Run("name is a case-sensitive substring", func(t *testing.T) {
		if !Matches(record, Filter{Name: "ocery"}) {
			t.Error("expected substring to match")
		}
		if Matches(record, Filter{Name: "grocery"}) {
			t.Error("expected lowercase to miss")
		}
	})

	t.Run("value is exact", func(t *testing.T) {
		exact, off := int64(15000), int64(150)
		if !Matches(record, Filter{Value: &exact}) {
			t.Error("expected exact value to match")
		}
		if Matches(record, Filter{Value: &off}) {
			t.Error("expected different value to miss")
		}
	})

	t.Run("category is exact and nil never matches", func(t *testing.T) {
		other := uuid.New()
		if !Matches(record, Filter{CategoryID: &categoryID}) {
			t.Error("expected matching category")
		}
		if Matches(record, Filter{CategoryID: &other}) {
			t.Error("expected other category to miss")
		}

		uncategorized := record
		uncategorized.categoryID = nil
		if Matches(uncategorized, Filter{CategoryID: &categoryID}) {
			t.Error("expected uncategorized record to miss a category filter")
		}
	})

	t.Run("predicates AND together", func(t *testing.T) {
		exact := int64(15000)
		if !Matches(record, Filter{Name: "Grocery", Value: &exact}) {
			t.Error("expected both predicates to match")
		}
		wrong := int64(1)
		if Matches(record, Filter{Name: "Grocery", Value: &wrong}) {
			t.Error("one failing predicate must fail the match")
		}
	})

	t.Run("updated_at range is independent of created_at", func(t *testing.T) {
		updatedDay := testBase.AddDate(0, 0, 3)
		if !Matches(record, Filter{UpdatedAt: DateRange{From: &updatedDay}}) {
			t.Error("expected updated_at day to match")
		}
		if Matches(record, Filter{CreatedAt: DateRange{From: &updatedDay}}) {
			t.Error("created_at is three days earlier and must miss")
		}
	})
}

func TestSort(t *testing.T) {
	t.Run("orders by created_at", func(t *testing.T) {
		a := newTestRecord("a", testBase)
		b := newTestRecord("b", testBase.Add(time.Hour))
		c := newTestRecord("c", testBase.Add(2*time.Hour))

		records := []testRecord{b, c, a}
		Sort(records, DirectionAsc)
		if records[0].name != "a" || records[2].name != "c" {
			t.Errorf("unexpected asc order: %s %s %s", records[0].name, records[1].name, records[2].name)
		}

		Sort(records, DirectionDesc)
		if records[0].name != "c" || records[2].name != "a" {
			t.Errorf("unexpected desc order: %s %s %s", records[0].name, records[1].name, records[2].name)
		}
	})

	t.Run("desc is the exact reverse of asc", func(t *testing.T) {
		records := make([]testRecord, 10)
		for i := range records {
			records[i] = newTestRecord("r", testBase.Add(time.Duration(i%4)*time.Hour))
		}

		asc := make([]testRecord, len(records))
		copy(asc, records)
		Sort(asc, DirectionAsc)

		desc := make([]testRecord, len(records))
		copy(desc, records)
		Sort(desc, DirectionDesc)

		// Ties share a timestamp, so the reversal holds per timestamp
		// group, not element by element. Compare group order instead.
		if asc[0].createdAt.After(asc[len(asc)-1].createdAt) {
			t.Error("asc must start at the oldest timestamp")
		}
		if desc[0].createdAt.Before(desc[len(desc)-1].createdAt) {
			t.Error("desc must start at the newest timestamp")
		}
	})

	t.Run("timestamp ties break by id bytes in both directions", func(t *testing.T) {
		tied := make([]testRecord, 6)
		for i := range tied {
			tied[i] = newTestRecord("tied", testBase)
		}

		first := make([]testRecord, len(tied))
		copy(first, tied)
		Sort(first, DirectionDesc)

		second := make([]testRecord, len(tied))
		copy(second, tied)
		Sort(second, DirectionAsc)

		for i := range first {
			if first[i].id != second[i].id {
				t.Fatalf("tie order differs between directions at %d", i)
			}
		}
		for i := 1; i < len(first); i++ {
			prev, cur := first[i-1].id, first[i].id
			if string(prev[:]) > string(cur[:]) {
				t.Fatalf("ties not in id byte order at %d", i)
			}
		}
	})
}

func TestApply(t *testing.T) {
	records := make([]testRecord, 30)
	for i := range records {
		name := "even"
		if i%2 == 1 {
			name = "odd"
		}
		records[i] = newTestRecord(name, testBase.Add(time.Duration(i)*time.Minute))
	}

	result, err := Apply(records, Filter{Name: "even"}, DirectionAsc, Page{Number: 2, PerPage: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 15 {
		t.Errorf("expected 15 matching records, got %d", result.Count)
	}
	if result.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", result.TotalPages)
	}
	if len(result.Results) != 5 {
		t.Errorf("expected 5 results on the last page, got %d", len(result.Results))
	}

	t.Run("invalid direction falls back to default", func(t *testing.T) {
		result, err := Apply(records, Filter{}, Direction("sideways"), DefaultPagination())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Results[0].createdAt.After(result.Results[1].createdAt) {
			t.Error("expected default desc ordering")
		}
	})
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
