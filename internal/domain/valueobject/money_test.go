package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCents(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{"whole units", "1000", 100000},
		{"two decimal places", "19.99", 1999},
		{"one decimal place", "0.5", 50},
		{"sub-cent precision truncates", "10.009", 1000},
		{"negative amount", "-3.25", -325},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("bad fixture %q: %v", tt.amount, err)
			}
			if got := Cents(d); got != tt.want {
				t.Errorf("Cents(%s): want %d, got %d", tt.amount, tt.want, got)
			}
		})
	}
}

func TestCentsFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"plain amount", "1000.00", 100000},
		{"surrounding whitespace", "  42.10 ", 4210},
		{"blank is zero", "", 0},
		{"whitespace only is zero", "   ", 0},
		{"garbage is zero", "ten dollars", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CentsFromString(tt.input); got != tt.want {
				t.Errorf("CentsFromString(%q): want %d, got %d", tt.input, tt.want, got)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	if got := Amount(1999); !got.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("Amount(1999): want 19.99, got %s", got)
	}

	// Cents and Amount invert each other for representable amounts.
	for _, cents := range []int64{0, 1, 99, 100, 123456, -250} {
		if got := Cents(Amount(cents)); got != cents {
			t.Errorf("round trip %d: got %d", cents, got)
		}
	}
}
