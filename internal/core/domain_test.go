package core

import (
	"errors"
	"testing"
)

func TestPaymentTypeValidate(t *testing.T) {
	for _, ok := range []PaymentType{PaymentCash, PaymentNonCash} {
		if err := ok.Validate(); err != nil {
			t.Fatalf("%q expected ok, got %v", ok, err)
		}
	}
	for _, bad := range []PaymentType{"", "card", "CASH"} {
		if err := bad.Validate(); !errors.Is(err, ErrInvalidPayment) {
			t.Fatalf("%q expected ErrInvalidPayment, got %v", bad, err)
		}
	}
}

func TestTermValidate(t *testing.T) {
	good := Term{
		ID:        "t1",
		StartDate: MustParseDate("2024-06-01"),
		EndDate:   MustParseDate("2024-06-30"),
		Budget:    Money{Cents: 200000},
		Currency:  "USD",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Term)
		want error
	}{
		{"zero start", func(x *Term) { x.StartDate = Date{} }, ErrInvalidDate},
		{"end before start", func(x *Term) { x.EndDate = MustParseDate("2024-05-31") }, ErrDateRange},
		{"zero budget", func(x *Term) { x.Budget = Money{} }, ErrInvalidAmount},
		{"empty currency", func(x *Term) { x.Currency = " " }, ErrInvalidCurrency},
	}
	for _, tc := range cases {
		bad := good
		tc.mut(&bad)
		if err := bad.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	// A single-day term is valid.
	oneDay := good
	oneDay.EndDate = oneDay.StartDate
	if err := oneDay.Validate(); err != nil {
		t.Fatalf("single-day term: %v", err)
	}
}

func TestTermContains(t *testing.T) {
	term := Term{
		StartDate: MustParseDate("2024-06-01"),
		EndDate:   MustParseDate("2024-06-30"),
	}
	cases := []struct {
		date string
		want bool
	}{
		{"2024-06-01", true},
		{"2024-06-30", true},
		{"2024-06-15", true},
		{"2024-05-31", false},
		{"2024-07-01", false},
	}
	for _, tc := range cases {
		if got := term.Contains(MustParseDate(tc.date)); got != tc.want {
			t.Fatalf("Contains(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		ID:         "e1",
		TermID:     "t1",
		Amount:     Money{Cents: 1250},
		CategoryID: "cat-food",
		Type:       PaymentCash,
		Date:       MustParseDate("2024-06-02"),
		Note:       "groceries",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: Money{Cents: 1}, CategoryID: "c", Type: PaymentCash},                                          // zero date
		{Date: MustParseDate("2024-06-02"), CategoryID: "c", Type: PaymentCash},                                // zero amount
		{Date: MustParseDate("2024-06-02"), Amount: Money{Cents: 1}, CategoryID: "c", Type: "wire"},            // bad type
		{Date: MustParseDate("2024-06-02"), Amount: Money{Cents: 1}, CategoryID: "  ", Type: PaymentNonCash},   // blank category
		{Date: MustParseDate("2024-06-02"), Amount: Money{Cents: -5}, CategoryID: "c", Type: PaymentNonCash},   // negative amount
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
