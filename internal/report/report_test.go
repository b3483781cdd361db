package report

import (
	"math"
	"testing"

	"termly/internal/core"
)

func expense(cents int64, categoryID string, typ core.PaymentType, date core.Date) core.Expense {
	return core.Expense{
		ID:         "e",
		TermID:     "t",
		Amount:     core.Money{Cents: cents},
		CategoryID: categoryID,
		Type:       typ,
		Date:       date,
	}
}

func juneTerm(budgetCents int64) core.Term {
	return core.Term{
		ID:        "t",
		StartDate: core.NewDate(2024, 6, 1),
		EndDate:   core.NewDate(2024, 6, 30),
		Budget:    core.Money{Cents: budgetCents},
		Currency:  "USD",
	}
}

func TestSummarize(t *testing.T) {
	term := juneTerm(200000)
	expenses := []core.Expense{
		expense(60000, "cat-food", core.PaymentCash, core.NewDate(2024, 6, 2)),
		expense(50000, "cat-rent", core.PaymentNonCash, core.NewDate(2024, 6, 3)),
	}

	got := Summarize(term, expenses)
	if got.TotalSpent.Cents != 110000 {
		t.Errorf("TotalSpent = %d, want 110000", got.TotalSpent.Cents)
	}
	if got.Remaining.Cents != 90000 {
		t.Errorf("Remaining = %d, want 90000", got.Remaining.Cents)
	}
	if got.PercentUsed != 55 {
		t.Errorf("PercentUsed = %v, want 55", got.PercentUsed)
	}
	if got.RawPercent != 55 {
		t.Errorf("RawPercent = %v, want 55", got.RawPercent)
	}
}

func TestSummarizeOverspendKeepsRawPercent(t *testing.T) {
	term := juneTerm(100000)
	expenses := []core.Expense{
		expense(150000, "cat-other", core.PaymentCash, core.NewDate(2024, 6, 2)),
	}

	got := Summarize(term, expenses)
	if got.PercentUsed != 100 {
		t.Errorf("PercentUsed = %v, want clamped 100", got.PercentUsed)
	}
	if got.RawPercent != 150 {
		t.Errorf("RawPercent = %v, want 150", got.RawPercent)
	}
	if got.Remaining.Cents != -50000 {
		t.Errorf("Remaining = %d, want -50000", got.Remaining.Cents)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(juneTerm(100000), nil)
	if got.TotalSpent.Cents != 0 || got.Remaining.Cents != 100000 || got.RawPercent != 0 {
		t.Fatalf("empty summary = %+v", got)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	categories := []core.Category{
		{ID: "cat-food", Name: "Food"},
		{ID: "cat-rent", Name: "Rent"},
	}
	expenses := []core.Expense{
		expense(50000, "cat-rent", core.PaymentNonCash, core.NewDate(2024, 6, 3)),
		expense(40000, "cat-food", core.PaymentCash, core.NewDate(2024, 6, 2)),
		expense(20000, "cat-food", core.PaymentCash, core.NewDate(2024, 6, 5)),
		expense(1500, "cat-gone", core.PaymentCash, core.NewDate(2024, 6, 6)),
	}

	got := CategoryBreakdown(expenses, categories)
	want := []CategoryTotal{
		{Name: "Food", Total: core.Money{Cents: 60000}},
		{Name: "Rent", Total: core.Money{Cents: 50000}},
		{Name: "Unknown", Total: core.Money{Cents: 1500}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	var sum int64
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
		sum += got[i].Total.Cents
	}
	if sum != TotalSpent(expenses).Cents {
		t.Errorf("breakdown sum %d != total spent %d", sum, TotalSpent(expenses).Cents)
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	if got := CategoryBreakdown(nil, nil); len(got) != 0 {
		t.Fatalf("expected no rows, got %+v", got)
	}
}

func TestSplitByPayment(t *testing.T) {
	expenses := []core.Expense{
		expense(30000, "cat-food", core.PaymentCash, core.NewDate(2024, 6, 2)),
		expense(70000, "cat-rent", core.PaymentNonCash, core.NewDate(2024, 6, 3)),
	}

	got := SplitByPayment(expenses)
	if got.Cash.Cents != 30000 || got.NonCash.Cents != 70000 {
		t.Fatalf("split = %+v", got)
	}
	if got.CashPercent != 30 || got.NonCashPercent != 70 {
		t.Fatalf("percentages = %v/%v, want 30/70", got.CashPercent, got.NonCashPercent)
	}
	if sum := got.CashPercent + got.NonCashPercent; math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", sum)
	}
}

func TestSplitByPaymentEmpty(t *testing.T) {
	got := SplitByPayment(nil)
	if got.CashPercent != 0 || got.NonCashPercent != 0 {
		t.Fatalf("empty split percentages = %v/%v, want 0/0", got.CashPercent, got.NonCashPercent)
	}
}

func TestTermDays(t *testing.T) {
	if got := TermDays(juneTerm(100000)); got != 29 {
		t.Errorf("June 1 to June 30 = %d days, want 29", got)
	}
	oneDay := core.Term{StartDate: core.NewDate(2024, 6, 1), EndDate: core.NewDate(2024, 6, 1)}
	if got := TermDays(oneDay); got != 1 {
		t.Errorf("zero-length term = %d days, want floor of 1", got)
	}
}

func TestCompareDailyRate(t *testing.T) {
	// A 30-day past term with 300 spent (rate 10/day) against an active
	// term 10 days in with 150 spent (rate 15/day) reads 50% faster.
	past := core.Term{
		ID:        "past",
		StartDate: core.NewDate(2024, 5, 1),
		EndDate:   core.NewDate(2024, 5, 31),
		Budget:    core.Money{Cents: 100000},
		Currency:  "USD",
	}
	pastExpenses := []core.Expense{
		expense(30000, "cat-food", core.PaymentCash, core.NewDate(2024, 5, 10)),
	}
	active := juneTerm(100000)
	activeExpenses := []core.Expense{
		expense(15000, "cat-food", core.PaymentCash, core.NewDate(2024, 6, 5)),
	}
	today := core.NewDate(2024, 6, 11)

	got := CompareDailyRate(active, activeExpenses, past, pastExpenses, today)
	if got.PastDaily != 1000 {
		t.Errorf("PastDaily = %v cents/day, want 1000", got.PastDaily)
	}
	if got.ActiveDaily != 1500 {
		t.Errorf("ActiveDaily = %v cents/day, want 1500", got.ActiveDaily)
	}
	if math.Abs(got.DiffPercent-50) > 1e-9 {
		t.Errorf("DiffPercent = %v, want 50", got.DiffPercent)
	}
}

func TestCompareDailyRateZeroPast(t *testing.T) {
	past := core.Term{StartDate: core.NewDate(2024, 5, 1), EndDate: core.NewDate(2024, 5, 31)}
	active := juneTerm(100000)
	activeExpenses := []core.Expense{
		expense(15000, "cat-food", core.PaymentCash, core.NewDate(2024, 6, 5)),
	}

	got := CompareDailyRate(active, activeExpenses, past, nil, core.NewDate(2024, 6, 11))
	if got.DiffPercent != 0 {
		t.Fatalf("DiffPercent with silent past term = %v, want 0", got.DiffPercent)
	}
}

func TestCompareDailyRateFirstDay(t *testing.T) {
	// Today equals the start date; elapsed days floor at 1.
	active := juneTerm(100000)
	past := core.Term{StartDate: core.NewDate(2024, 5, 1), EndDate: core.NewDate(2024, 5, 31)}
	pastExpenses := []core.Expense{
		expense(31000, "cat-food", core.PaymentCash, core.NewDate(2024, 5, 2)),
	}
	activeExpenses := []core.Expense{
		expense(2000, "cat-food", core.PaymentCash, core.NewDate(2024, 6, 1)),
	}

	got := CompareDailyRate(active, activeExpenses, past, pastExpenses, core.NewDate(2024, 6, 1))
	if got.ActiveDaily != 2000 {
		t.Fatalf("ActiveDaily on day one = %v, want 2000", got.ActiveDaily)
	}
}
