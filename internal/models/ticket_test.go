package models

import (
	"strings"
	"testing"
)

func TestGeneratePNR_Unique(t *testing.T) {
	const n = 10000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		pnr, err := GeneratePNR()
		if err != nil {
			t.Fatalf("GeneratePNR failed: %v", err)
		}
		if !strings.HasPrefix(pnr, "PNR") {
			t.Fatalf("PNR %q missing prefix", pnr)
		}
		if seen[pnr] {
			t.Fatalf("duplicate PNR generated: %q", pnr)
		}
		seen[pnr] = true
	}
}

func TestSeatLabel(t *testing.T) {
	tests := []struct {
		classType      string
		totalSeats     int
		availableAfter int
		want           string
	}{
		{Class1AC, 24, 23, "1AC-1"},
		{Class1AC, 24, 22, "1AC-2"},
		{ClassSleeper, 72, 0, "SLEEPER-72"},
		{ClassGeneral, 50, 49, "GENERAL-1"},
	}

	for _, tt := range tests {
		if got := SeatLabel(tt.classType, tt.totalSeats, tt.availableAfter); got != tt.want {
			t.Errorf("SeatLabel(%s, %d, %d) = %q, want %q", tt.classType, tt.totalSeats, tt.availableAfter, got, tt.want)
		}
	}
}

func TestTicketBeforeCreate_Defaults(t *testing.T) {
	ticket := &Ticket{}
	if err := ticket.BeforeCreate(); err != nil {
		t.Fatalf("BeforeCreate failed: %v", err)
	}
	if ticket.ID.IsZero() {
		t.Error("expected ID to be set")
	}
	if ticket.PNR == "" {
		t.Error("expected PNR to be generated")
	}
	if ticket.Status != StatusBooked {
		t.Errorf("expected status %q, got %q", StatusBooked, ticket.Status)
	}
	if ticket.BookingDate.IsZero() || ticket.CreatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	// Existing values survive.
	again := *ticket
	if err := again.BeforeCreate(); err != nil {
		t.Fatalf("BeforeCreate failed: %v", err)
	}
	if again.PNR != ticket.PNR || again.ID != ticket.ID {
		t.Error("BeforeCreate must not overwrite existing identity")
	}
}
