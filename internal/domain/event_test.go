package domain

import (
	"testing"
	"time"
)

func TestEvent_LotSelection(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	first := Lot{Name: "1o lote", PriceCents: 5000, StartsAt: now.AddDate(0, -2, 0)}
	second := Lot{Name: "2o lote", PriceCents: 7000, StartsAt: now.AddDate(0, -1, 0)}
	third := Lot{Name: "3o lote", PriceCents: 9000, StartsAt: now.AddDate(0, 1, 0)}
	fourth := Lot{Name: "4o lote", PriceCents: 11000, StartsAt: now.AddDate(0, 2, 0)}

	tests := []struct {
		name        string
		event       Event
		wantCurrent string
		wantNext    string
		wantPrice   int64
		wantOpen    bool
	}{
		{
			name:        "second lot active, third upcoming",
			event:       Event{PriceCents: 4000, Lots: []Lot{fourth, second, first, third}},
			wantCurrent: "2o lote",
			wantNext:    "3o lote",
			wantPrice:   7000,
			wantOpen:    true,
		},
		{
			name:        "no lot started yet closes registration",
			event:       Event{PriceCents: 4000, Lots: []Lot{third, fourth}},
			wantCurrent: "",
			wantNext:    "3o lote",
			wantPrice:   4000,
			wantOpen:    false,
		},
		{
			name:        "no lots falls back to base price",
			event:       Event{PriceCents: 4000},
			wantCurrent: "",
			wantNext:    "",
			wantPrice:   4000,
			wantOpen:    false,
		},
		{
			name:        "free event always open and zero priced",
			event:       Event{IsFree: true, PriceCents: 4000, Lots: []Lot{second}},
			wantCurrent: "2o lote",
			wantNext:    "",
			wantPrice:   0,
			wantOpen:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := tt.event.CurrentLot(now)
			if tt.wantCurrent == "" {
				if current != nil {
					t.Fatalf("expected no current lot, got %q", current.Name)
				}
			} else if current == nil || current.Name != tt.wantCurrent {
				t.Fatalf("expected current lot %q, got %v", tt.wantCurrent, current)
			}

			next := tt.event.NextLot(now)
			if tt.wantNext == "" {
				if next != nil {
					t.Fatalf("expected no next lot, got %q", next.Name)
				}
			} else if next == nil || next.Name != tt.wantNext {
				t.Fatalf("expected next lot %q, got %v", tt.wantNext, next)
			}

			if got := tt.event.CurrentPriceCents(now); got != tt.wantPrice {
				t.Errorf("expected price %d, got %d", tt.wantPrice, got)
			}
			if got := tt.event.RegistrationOpen(now); got != tt.wantOpen {
				t.Errorf("expected open=%v, got %v", tt.wantOpen, got)
			}
		})
	}
}

func TestAgeYears(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate string
		want      int
		wantOK    bool
	}{
		{name: "birthday already passed", birthDate: "2000-03-10", want: 26, wantOK: true},
		{name: "birthday later this year", birthDate: "2000-12-01", want: 25, wantOK: true},
		{name: "birthday today", birthDate: "2000-08-31", want: 26, wantOK: true},
		{name: "future date", birthDate: "2030-01-01", wantOK: false},
		{name: "garbage", birthDate: "31/08/2000", wantOK: false},
		{name: "empty", birthDate: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AgeYears(tt.birthDate, now)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %d years, got %d", tt.want, got)
			}
		})
	}
}
