package format

import (
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "R$ 0,00"},
		{cents: 5, want: "R$ 0,05"},
		{cents: 7000, want: "R$ 70,00"},
		{cents: 123456, want: "R$ 1.234,56"},
		{cents: 100000000, want: "R$ 1.000.000,00"},
		{cents: -9950, want: "-R$ 99,50"},
	}

	for _, tt := range tests {
		if got := Currency(tt.cents); got != tt.want {
			t.Errorf("Currency(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	ts := time.Date(2026, 9, 5, 19, 30, 0, 0, time.UTC)
	if got := Date(ts); got != "05/09/2026" {
		t.Errorf("Date = %q, want 05/09/2026", got)
	}
}

func TestISODate(t *testing.T) {
	if got := ISODate("2000-03-10"); got != "10/03/2000" {
		t.Errorf("ISODate = %q, want 10/03/2000", got)
	}
	if got := ISODate("not-a-date"); got != "not-a-date" {
		t.Errorf("ISODate should pass through unparseable input, got %q", got)
	}
}
