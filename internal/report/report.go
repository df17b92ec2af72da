// Package report derives summary statistics from a transaction snapshot.
//
// Build is a pure function: identical inputs (including the reference time)
// produce an identical Report, so results are safe to memoize or recompute on
// every request. Degenerate inputs never error; empty lists and zero
// denominators yield zero/empty results.
package report

import (
	"sort"
	"time"

	"fintrack/internal/catalog"
	"fintrack/internal/core"
)

// CategoryShare is one category row of the expense breakdown.
type CategoryShare struct {
	catalog.Category
	Amount     core.Money `json:"amount"`
	Count      int        `json:"count"`
	Percentage float64    `json:"percentage"`
}

// PaymentShare is one payment-mode row of the breakdown. Credits and debits
// both count toward the mode's amount.
type PaymentShare struct {
	catalog.PaymentMode
	Amount     core.Money `json:"amount"`
	Count      int        `json:"count"`
	Percentage float64    `json:"percentage"`
}

// Report is the full set of derived statistics for one window.
type Report struct {
	TotalIncome           core.Money         `json:"totalIncome"`
	TotalExpenses         core.Money         `json:"totalExpenses"`
	NetBalance            core.Money         `json:"netBalance"`
	CategoryBreakdown     []CategoryShare    `json:"categoryBreakdown"`
	PaymentBreakdown      []PaymentShare     `json:"paymentBreakdown"`
	MonthlyChangePct      float64            `json:"monthlyChangePct"`
	AvgIncomePerDay       float64            `json:"avgIncomePerDay"`
	AvgExpensePerDay      float64            `json:"avgExpensePerDay"`
	TopExpenses           []core.Transaction `json:"topExpenses"`
	WeeklyTrendPct        float64            `json:"weeklyTrendPct"`
	TransactionCount      int                `json:"transactionCount"`
	CurrentMonthExpenses  core.Money         `json:"currentMonthExpenses"`
	PreviousMonthExpenses core.Money         `json:"previousMonthExpenses"`
}

const topExpenseLimit = 5

// Build computes a Report over the given snapshot. windowDays is the trailing
// number of calendar days, lower bound inclusive; values below 1 are treated
// as 1. The monthly comparison and weekly trend read the entire unfiltered
// list, everything else only the windowed subset.
func Build(transactions []core.Transaction, windowDays int, now time.Time) Report {
	if windowDays < 1 {
		windowDays = 1
	}

	today := core.DateOf(now)
	cutoff := today.AddDays(-windowDays)

	inWindow := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !t.Date.Before(cutoff.Time) && !t.Date.After(today.Time) {
			inWindow = append(inWindow, t)
		}
	}

	var income, expenses core.Money
	for _, t := range inWindow {
		switch t.Type {
		case core.Credit:
			income = income.Add(t.Amount)
		case core.Debit:
			expenses = expenses.Add(t.Amount)
		}
	}

	r := Report{
		TotalIncome:      income,
		TotalExpenses:    expenses,
		NetBalance:       income.Sub(expenses),
		TransactionCount: len(inWindow),
		AvgIncomePerDay:  income.Units() / float64(windowDays),
		AvgExpensePerDay: expenses.Units() / float64(windowDays),
	}

	r.CategoryBreakdown = categoryBreakdown(inWindow, expenses)
	r.PaymentBreakdown = paymentBreakdown(inWindow, income.Add(expenses))
	r.TopExpenses = topExpenses(inWindow)
	r.CurrentMonthExpenses, r.PreviousMonthExpenses, r.MonthlyChangePct = monthlyComparison(transactions, now)
	r.WeeklyTrendPct = weeklyTrend(transactions, today)

	return r
}

// categoryBreakdown sums debit amounts per expense-catalog entry. Entries with
// no spend are dropped; the rest sort descending by amount, ties keeping
// catalog declaration order.
func categoryBreakdown(inWindow []core.Transaction, totalExpenses core.Money) []CategoryShare {
	shares := make([]CategoryShare, 0, len(catalog.ExpenseCategories))
	for _, cat := range catalog.ExpenseCategories {
		var amount core.Money
		count := 0
		for _, t := range inWindow {
			if t.Type == core.Debit && t.Category == cat.ID {
				amount = amount.Add(t.Amount)
				count++
			}
		}
		if amount.Cents == 0 {
			continue
		}
		shares = append(shares, CategoryShare{
			Category:   cat,
			Amount:     amount,
			Count:      count,
			Percentage: percentage(amount, totalExpenses),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount.Cents > shares[j].Amount.Cents
	})
	return shares
}

// paymentBreakdown sums both credits and debits per payment mode. The share
// denominator is totalIncome+totalExpenses, deliberately unlike the category
// breakdown's expenses-only denominator.
func paymentBreakdown(inWindow []core.Transaction, totalVolume core.Money) []PaymentShare {
	shares := make([]PaymentShare, 0, len(catalog.PaymentModes))
	for _, mode := range catalog.PaymentModes {
		var amount core.Money
		count := 0
		for _, t := range inWindow {
			if t.PaymentMode == mode.ID {
				amount = amount.Add(t.Amount)
				count++
			}
		}
		if amount.Cents == 0 {
			continue
		}
		shares = append(shares, PaymentShare{
			PaymentMode: mode,
			Amount:      amount,
			Count:       count,
			Percentage:  percentage(amount, totalVolume),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount.Cents > shares[j].Amount.Cents
	})
	return shares
}

// topExpenses returns the five largest debits in the window, ties keeping the
// original list order.
func topExpenses(inWindow []core.Transaction) []core.Transaction {
	debits := make([]core.Transaction, 0, len(inWindow))
	for _, t := range inWindow {
		if t.Type == core.Debit {
			debits = append(debits, t)
		}
	}
	sort.SliceStable(debits, func(i, j int) bool {
		return debits[i].Amount.Cents > debits[j].Amount.Cents
	})
	if len(debits) > topExpenseLimit {
		debits = debits[:topExpenseLimit]
	}
	return debits
}

// monthlyComparison sums debits per calendar month for the current and
// previous month, over the entire unfiltered list.
func monthlyComparison(transactions []core.Transaction, now time.Time) (current, previous core.Money, changePct float64) {
	curStart := core.NewDate(now.Year(), int(now.Month()), 1)
	nextStart := core.Date{Time: curStart.AddDate(0, 1, 0)}
	prevStart := core.Date{Time: curStart.AddDate(0, -1, 0)}

	for _, t := range transactions {
		if t.Type != core.Debit {
			continue
		}
		switch {
		case !t.Date.Before(curStart.Time) && t.Date.Before(nextStart.Time):
			current = current.Add(t.Amount)
		case !t.Date.Before(prevStart.Time) && t.Date.Before(curStart.Time):
			previous = previous.Add(t.Amount)
		}
	}

	if previous.Cents > 0 {
		changePct = float64(current.Cents-previous.Cents) / float64(previous.Cents) * 100
	}
	return current, previous, changePct
}

// weeklyTrend compares debit totals of [today-7, today] against
// [today-14, today-7). Zero or negative means spending went down; the
// presentation layer branches on that sign, so it must be preserved.
func weeklyTrend(transactions []core.Transaction, today core.Date) float64 {
	sevenAgo := today.AddDays(-7)
	fourteenAgo := today.AddDays(-14)

	var recent, prior core.Money
	for _, t := range transactions {
		if t.Type != core.Debit {
			continue
		}
		switch {
		case !t.Date.Before(sevenAgo.Time) && !t.Date.After(today.Time):
			recent = recent.Add(t.Amount)
		case !t.Date.Before(fourteenAgo.Time) && t.Date.Before(sevenAgo.Time):
			prior = prior.Add(t.Amount)
		}
	}

	if prior.Cents == 0 {
		return 0
	}
	return float64(recent.Cents-prior.Cents) / float64(prior.Cents) * 100
}

func percentage(part, total core.Money) float64 {
	if total.Cents <= 0 {
		return 0
	}
	return float64(part.Cents) / float64(total.Cents) * 100
}
