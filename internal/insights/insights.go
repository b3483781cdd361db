// Package insights turns a term's expense records into short
// human-readable observations. It is a fixed ordered rule list, not a
// search: rules run in sequence and each appends at most one line.
package insights

import (
	"fmt"
	"math"

	"termly/internal/core"
	"termly/internal/currency"
	"termly/internal/report"
)

// EmptyPrompt is the single insight shown before any expense exists.
const EmptyPrompt = "Start adding expenses to see smart insights here."

// Generate produces the ordered insight list for one term. It never
// fails; degenerate inputs fall through to fewer (or the prompt-only)
// insights.
func Generate(term core.Term, expenses []core.Expense, categories []core.Category, today core.Date) []string {
	if len(expenses) == 0 {
		return []string{EmptyPrompt}
	}

	var out []string
	summary := report.Summarize(term, expenses)

	// Budget tier, on the unclamped percentage.
	switch {
	case summary.RawPercent >= 100:
		out = append(out, "🚨 You have exceeded your monthly budget!")
	case summary.RawPercent >= 80:
		out = append(out, fmt.Sprintf("⚠️ Warning: You have used %.0f%% of your budget. Consider slowing down your spending.", summary.RawPercent))
	default:
		out = append(out, fmt.Sprintf("✅ You are on track, having used %.0f%% of your monthly budget.", summary.RawPercent))
	}

	// Top spending category.
	if breakdown := report.CategoryBreakdown(expenses, categories); len(breakdown) > 0 && breakdown[0].Total.Cents > 0 {
		out = append(out, fmt.Sprintf("📊 Most spending was in %s (%s).",
			breakdown[0].Name, currency.Format(breakdown[0].Total.Cents, term.Currency)))
	}

	// Payment mix: only the extremes are worth a line.
	if total := summary.TotalSpent.Cents; total > 0 {
		split := report.SplitByPayment(expenses)
		switch {
		case split.NonCashPercent > 70:
			out = append(out, fmt.Sprintf("💳 High card/digital usage: %.0f%% of your expenses are non-cash.", split.NonCashPercent))
		case split.NonCashPercent < 30:
			out = append(out, fmt.Sprintf("💵 Cash heavy: Only %.0f%% of your expenses are non-cash.", split.NonCashPercent))
		}
	}

	// Overspend projection, once a few days of data exist.
	if term.Contains(today) {
		daysPassed := term.StartDate.DaysUntil(today) + 1
		if daysPassed > 3 {
			totalDays := term.StartDate.DaysUntil(term.EndDate) + 1
			dailyRate := float64(summary.TotalSpent.Cents) / float64(daysPassed)
			projected := dailyRate * float64(totalDays)
			if projected > float64(term.Budget.Cents) {
				rateUnits := int64(math.Round(dailyRate / 100))
				out = append(out, fmt.Sprintf("📈 At your current spending rate (%s/day), you may exceed your budget by end of term.",
					currency.FormatWhole(rateUnits, term.Currency)))
			}
		}
	}

	return out
}
