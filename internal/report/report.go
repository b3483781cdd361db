// Package report computes derived views over a term's expense records:
// budget summaries, category breakdowns, payment splits and cross-term
// daily-rate comparisons. Everything here is a pure function of its
// inputs; nothing is mutated and nothing is persisted.
package report

import (
	"sort"

	"termly/internal/core"
)

// UnknownCategory labels expenses whose category no longer exists.
const UnknownCategory = "Unknown"

// Summary is the headline budget view for one term.
type Summary struct {
	TotalSpent core.Money `json:"totalSpent"`
	// Remaining may be negative; negative means overspend.
	Remaining core.Money `json:"remaining"`
	// PercentUsed is clamped to 100 for progress-bar display.
	PercentUsed float64 `json:"percentUsed"`
	// RawPercent is the unclamped ratio, kept for overspend detection.
	RawPercent float64 `json:"rawPercent"`
}

// CategoryTotal is one row of the category breakdown.
type CategoryTotal struct {
	Name  string     `json:"name"`
	Total core.Money `json:"total"`
}

// PaymentSplit divides spending between cash and non-cash payments.
type PaymentSplit struct {
	Cash           core.Money `json:"cash"`
	NonCash        core.Money `json:"nonCash"`
	CashPercent    float64    `json:"cashPercent"`
	NonCashPercent float64    `json:"nonCashPercent"`
}

// DailyRateComparison relates the active term's spending pace to a past
// term's, normalized per day so terms of unequal length compare fairly.
type DailyRateComparison struct {
	// Rates are in cents per day.
	ActiveDaily float64 `json:"activeDaily"`
	PastDaily   float64 `json:"pastDaily"`
	// DiffPercent is the active rate relative to the past rate; zero
	// when the past term had no spending.
	DiffPercent float64 `json:"diffPercent"`
}

// TotalSpent sums the expense amounts.
func TotalSpent(expenses []core.Expense) core.Money {
	var cents int64
	for _, e := range expenses {
		cents += e.Amount.Cents
	}
	return core.Money{Cents: cents}
}

// Summarize computes the headline figures for a term.
func Summarize(term core.Term, expenses []core.Expense) Summary {
	total := TotalSpent(expenses)
	raw := 0.0
	if term.Budget.Cents > 0 {
		raw = float64(total.Cents) / float64(term.Budget.Cents) * 100
	}
	clamped := raw
	if clamped > 100 {
		clamped = 100
	}
	return Summary{
		TotalSpent:  total,
		Remaining:   core.Money{Cents: term.Budget.Cents - total.Cents},
		PercentUsed: clamped,
		RawPercent:  raw,
	}
}

// CategoryName resolves a category id to its display name, degrading to
// "Unknown" for ids that no longer exist.
func CategoryName(categories []core.Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownCategory
}

// CategoryBreakdown sums expenses per category name, sorted by amount
// descending. Expenses referencing deleted categories collapse into a
// single "Unknown" row.
func CategoryBreakdown(expenses []core.Expense, categories []core.Category) []CategoryTotal {
	sums := make(map[string]int64)
	var order []string
	for _, e := range expenses {
		name := CategoryName(categories, e.CategoryID)
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] += e.Amount.Cents
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryTotal{Name: name, Total: core.Money{Cents: sums[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	return out
}

// SplitByPayment divides spending between payment types. The combined
// total is floored at 1 for the percentage division, so an empty
// expense set yields 0%/0% rather than NaN.
func SplitByPayment(expenses []core.Expense) PaymentSplit {
	var cash, nonCash int64
	for _, e := range expenses {
		switch e.Type {
		case core.PaymentCash:
			cash += e.Amount.Cents
		case core.PaymentNonCash:
			nonCash += e.Amount.Cents
		}
	}

	total := cash + nonCash
	if total < 1 {
		total = 1
	}
	return PaymentSplit{
		Cash:           core.Money{Cents: cash},
		NonCash:        core.Money{Cents: nonCash},
		CashPercent:    float64(cash) / float64(total) * 100,
		NonCashPercent: float64(nonCash) / float64(total) * 100,
	}
}

// TermDays returns a term's duration in whole days, minimum 1.
func TermDays(term core.Term) int {
	days := term.StartDate.DaysUntil(term.EndDate)
	if days < 1 {
		days = 1
	}
	return days
}

// CompareDailyRate relates the active term's daily spending average so
// far against a past term's average over its full duration. The past
// term is assumed closed, so its whole length counts; the active term
// only counts days elapsed up to today.
func CompareDailyRate(active core.Term, activeExpenses []core.Expense, past core.Term, pastExpenses []core.Expense, today core.Date) DailyRateComparison {
	activeDays := active.StartDate.DaysUntil(today)
	if activeDays < 1 {
		activeDays = 1
	}
	pastDays := TermDays(past)

	activeDaily := float64(TotalSpent(activeExpenses).Cents) / float64(activeDays)
	pastDaily := float64(TotalSpent(pastExpenses).Cents) / float64(pastDays)

	diff := 0.0
	if pastDaily != 0 {
		diff = (activeDaily - pastDaily) / pastDaily * 100
	}
	return DailyRateComparison{
		ActiveDaily: activeDaily,
		PastDaily:   pastDaily,
		DiffPercent: diff,
	}
}
