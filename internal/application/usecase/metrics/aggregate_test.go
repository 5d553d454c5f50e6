package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/domain/entity"
)

func record(value int64, createdAt time.Time) *entity.Record {
	return &entity.Record{
		ID:        uuid.New(),
		Name:      "record",
		Value:     value,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func taggedRecord(value int64, createdAt time.Time, categoryID uuid.UUID) *entity.Record {
	r := record(value, createdAt)
	r.CategoryID = &categoryID
	return r
}

func TestMonthlySummary(t *testing.T) {
	end := time.Date(2024, time.June, 20, 15, 0, 0, 0, time.UTC)

	t.Run("empty months are zero-filled", func(t *testing.T) {
		incomes := []*entity.Record{
			record(50000, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
		}
		expenses := []*entity.Record{
			record(12000, time.Date(2023, time.August, 31, 23, 59, 59, 0, time.UTC)),
		}

		buckets := MonthlySummary(incomes, expenses, end)
		if len(buckets) != 13 {
			t.Fatalf("expected 13 buckets, got %d", len(buckets))
		}
		if buckets[0].Date != "2023-06" || buckets[12].Date != "2024-06" {
			t.Errorf("window should span 2023-06 to 2024-06, got %s to %s",
				buckets[0].Date, buckets[12].Date)
		}

		if buckets[12].IncomesTotal != 50000 {
			t.Errorf("expected income in the end month, got %d", buckets[12].IncomesTotal)
		}
		if buckets[2].ExpensesTotal != 12000 {
			t.Errorf("expected expense in 2023-08, got %d", buckets[2].ExpensesTotal)
		}

		zeroed := 0
		for _, bucket := range buckets {
			if bucket.IncomesTotal == 0 && bucket.ExpensesTotal == 0 {
				zeroed++
			}
		}
		if zeroed != 11 {
			t.Errorf("expected 11 empty buckets, got %d", zeroed)
		}
	})

	t.Run("same-month records accumulate", func(t *testing.T) {
		march := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
		incomes := []*entity.Record{
			record(1000, march),
			record(2500, march.AddDate(0, 0, 20)),
		}

		buckets := MonthlySummary(incomes, nil, end)
		var got int64
		for _, bucket := range buckets {
			if bucket.Date == "2024-03" {
				got = bucket.IncomesTotal
			}
		}
		if got != 3500 {
			t.Errorf("expected 3500 in 2024-03, got %d", got)
		}
	})

	t.Run("records outside the window are ignored", func(t *testing.T) {
		incomes := []*entity.Record{
			record(9999, time.Date(2023, time.May, 31, 0, 0, 0, 0, time.UTC)),
			record(9999, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),
		}

		for _, bucket := range MonthlySummary(incomes, nil, end) {
			if bucket.IncomesTotal != 0 {
				t.Errorf("bucket %s picked up an out-of-window record", bucket.Date)
			}
		}
	})
}

func TestMonthlyBalance(t *testing.T) {
	buckets := []MonthBucket{
		{Date: "2024-01", IncomesTotal: 5000, ExpensesTotal: 2000},
		{Date: "2024-02", IncomesTotal: 1000, ExpensesTotal: 4000},
		{Date: "2024-03"},
	}

	points := MonthlyBalance(buckets)
	want := []int64{3000, -3000, 0}
	for i, point := range points {
		if point.Balance != want[i] {
			t.Errorf("%s: want balance %d, got %d", point.Date, want[i], point.Balance)
		}
		if point.Date != buckets[i].Date {
			t.Errorf("point %d: want date %s, got %s", i, buckets[i].Date, point.Date)
		}
	}
}

func TestMonthlyDelta(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	june := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	may := time.Date(2024, time.May, 28, 0, 0, 0, 0, time.UTC)

	t.Run("amount sums both months", func(t *testing.T) {
		records := []*entity.Record{
			record(3000, june),
			record(1500, june),
			record(2000, may),
			record(700, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
		}

		delta := MonthlyDelta(records, now)
		if delta.Amount != 6500 {
			t.Errorf("expected amount 6500, got %d", delta.Amount)
		}
		if delta.DiffFromLastMonth != 225 {
			t.Errorf("expected diff 225, got %d", delta.DiffFromLastMonth)
		}
	})

	t.Run("empty last month yields zero diff", func(t *testing.T) {
		delta := MonthlyDelta([]*entity.Record{record(3000, june)}, now)
		if delta.Amount != 3000 {
			t.Errorf("expected amount 3000, got %d", delta.Amount)
		}
		if delta.DiffFromLastMonth != 0 {
			t.Errorf("expected zero diff, got %d", delta.DiffFromLastMonth)
		}
	})

	t.Run("year boundary", func(t *testing.T) {
		january := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
		december := time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC)

		delta := MonthlyDelta([]*entity.Record{
			record(1000, january),
			record(500, december),
		}, january)
		if delta.Amount != 1500 {
			t.Errorf("expected december to count as last month, got amount %d", delta.Amount)
		}
		if delta.DiffFromLastMonth != 200 {
			t.Errorf("expected diff 200, got %d", delta.DiffFromLastMonth)
		}
	})

	t.Run("no records", func(t *testing.T) {
		delta := MonthlyDelta(nil, now)
		if delta.Amount != 0 || delta.DiffFromLastMonth != 0 {
			t.Errorf("expected zero delta, got %+v", delta)
		}
	})
}

func TestBiggestExpenses(t *testing.T) {
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("orders by value and caps at ten", func(t *testing.T) {
		expenses := make([]*entity.Record, 0, 12)
		for i := 0; i < 12; i++ {
			expenses = append(expenses, record(int64(100*(i+1)), base.Add(time.Duration(i)*time.Hour)))
		}

		ranked := BiggestExpenses(expenses, nil)
		if len(ranked) != 10 {
			t.Fatalf("expected 10 results, got %d", len(ranked))
		}
		if ranked[0].Value != 1200 || ranked[9].Value != 300 {
			t.Errorf("expected values 1200 down to 300, got %d and %d",
				ranked[0].Value, ranked[9].Value)
		}
		for i := 1; i < len(ranked); i++ {
			if ranked[i].Value > ranked[i-1].Value {
				t.Fatalf("ranking not descending at %d", i)
			}
		}
	})

	t.Run("value ties rank newest first", func(t *testing.T) {
		older := record(500, base)
		newer := record(500, base.AddDate(0, 0, 3))

		ranked := BiggestExpenses([]*entity.Record{older, newer}, nil)
		if ranked[0].ID != newer.ID {
			t.Error("expected the newer record first on a value tie")
		}
	})

	t.Run("end date bounds the window", func(t *testing.T) {
		end := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
		inside := record(100, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC))
		tooOld := record(9000, time.Date(2023, time.May, 31, 23, 0, 0, 0, time.UTC))
		tooNew := record(9000, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))

		ranked := BiggestExpenses([]*entity.Record{inside, tooOld, tooNew}, &end)
		if len(ranked) != 1 {
			t.Fatalf("expected only the in-window record, got %d", len(ranked))
		}
		if ranked[0].ID != inside.ID {
			t.Error("wrong record survived the window")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := BiggestExpenses(nil, nil); len(got) != 0 {
			t.Errorf("expected empty ranking, got %d", len(got))
		}
	})
}

func TestCategoriesWithMostRecords(t *testing.T) {
	ownerID := uuid.New()
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("counts both kinds per category", func(t *testing.T) {
		groceries := entity.NewCategory("Groceries", "", ownerID)
		salary := entity.NewCategory("Salary", "", ownerID)
		unused := entity.NewCategory("Unused", "", ownerID)

		incomes := []*entity.Record{
			taggedRecord(100, base, salary.ID),
			taggedRecord(100, base, salary.ID),
			taggedRecord(100, base, groceries.ID),
		}
		expenses := []*entity.Record{
			taggedRecord(100, base, groceries.ID),
			taggedRecord(100, base, groceries.ID),
			taggedRecord(100, base, groceries.ID),
			record(100, base),
		}

		rankings := CategoriesWithMostRecords(
			[]*entity.Category{groceries, salary, unused}, incomes, expenses)
		if len(rankings) != 3 {
			t.Fatalf("expected 3 rankings, got %d", len(rankings))
		}

		if rankings[0].Name != "Groceries" ||
			rankings[0].IncomesQuantity != 1 || rankings[0].ExpensesQuantity != 3 {
			t.Errorf("unexpected top ranking: %+v", rankings[0])
		}
		if rankings[1].Name != "Salary" || rankings[1].IncomesQuantity != 2 {
			t.Errorf("unexpected second ranking: %+v", rankings[1])
		}
		if rankings[2].Name != "Unused" ||
			rankings[2].IncomesQuantity != 0 || rankings[2].ExpensesQuantity != 0 {
			t.Errorf("unused category should appear with zero counts: %+v", rankings[2])
		}
	})

	t.Run("count ties order by name", func(t *testing.T) {
		beta := entity.NewCategory("Beta", "", ownerID)
		alpha := entity.NewCategory("Alpha", "", ownerID)

		expenses := []*entity.Record{
			taggedRecord(100, base, beta.ID),
			taggedRecord(100, base, alpha.ID),
		}

		rankings := CategoriesWithMostRecords([]*entity.Category{beta, alpha}, nil, expenses)
		if rankings[0].Name != "Alpha" || rankings[1].Name != "Beta" {
			t.Errorf("expected name ascending on tie, got %s then %s",
				rankings[0].Name, rankings[1].Name)
		}
	})

	t.Run("caps at ten", func(t *testing.T) {
		categories := make([]*entity.Category, 0, 12)
		var expenses []*entity.Record
		for i := 0; i < 12; i++ {
			c := entity.NewCategory(fmt.Sprintf("Category %02d", i), "", ownerID)
			categories = append(categories, c)
			for j := 0; j <= i; j++ {
				expenses = append(expenses, taggedRecord(100, base, c.ID))
			}
		}

		rankings := CategoriesWithMostRecords(categories, nil, expenses)
		if len(rankings) != 10 {
			t.Fatalf("expected 10 rankings, got %d", len(rankings))
		}
		if rankings[0].Name != "Category 11" {
			t.Errorf("expected the most-referenced category first, got %s", rankings[0].Name)
		}
	})
}
