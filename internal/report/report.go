// Package report computes the derived figures shown on the dashboard and
// analytics views. Every function is pure: it reads the collections it is
// given and never mutates them or touches persistence, so results can be
// recomputed on every call.
//
// Months are 1-indexed throughout (January = 1), matching time.Month.
package report

import (
	"sort"
	"strings"

	"financeflow/internal/core"
)

// MonthTotals holds the income and expense sums for one calendar month.
type MonthTotals struct {
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
}

// BudgetStatus is the utilization of a single budget for one month.
// Percentage may exceed 100; that is the over-budget state, not an error.
type BudgetStatus struct {
	Budget     core.Budget `json:"budget"`
	Spent      core.Money  `json:"spent"`
	Percentage float64     `json:"percentage"`
	Remaining  core.Money  `json:"remaining"`
	Over       bool        `json:"over"`
}

// GoalStatus is the progress of a single savings goal.
type GoalStatus struct {
	Goal       core.Goal  `json:"goal"`
	Percentage float64    `json:"percentage"`
	Remaining  core.Money `json:"remaining"`
	Complete   bool       `json:"complete"`
}

// CategoryTotal is an expense sum for one category.
type CategoryTotal struct {
	Category string     `json:"category"`
	Total    core.Money `json:"total"`
}

// MonthPoint is one entry of the monthly income/expense series.
type MonthPoint struct {
	Year    int        `json:"year"`
	Month   int        `json:"month"`
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
}

// FilterTransactions returns the transactions matching every given
// criterion. query is a case-insensitive substring match on the
// description, category and tt must match exactly. An empty criterion
// matches everything, so FilterTransactions(txs, "", "", "") returns
// all transactions.
func FilterTransactions(txs []core.Transaction, query, category string, tt core.TransactionType) []core.Transaction {
	query = strings.ToLower(query)
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if query != "" && !strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		if tt != "" && t.Type != tt {
			continue
		}
		out = append(out, t)
	}
	return out
}

// NetBalance returns income minus expense over all transactions,
// regardless of date.
func NetBalance(txs []core.Transaction) core.Money {
	var cents int64
	for _, t := range txs {
		switch t.Type {
		case core.Income:
			cents += t.Amount.Cents
		case core.Expense:
			cents -= t.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}

// MonthlyTotals sums income and expense over transactions dated in the
// given year and month.
func MonthlyTotals(txs []core.Transaction, year, month int) MonthTotals {
	var out MonthTotals
	for _, t := range txs {
		if !t.Date.InMonth(year, month) {
			continue
		}
		switch t.Type {
		case core.Income:
			out.Income.Cents += t.Amount.Cents
		case core.Expense:
			out.Expense.Cents += t.Amount.Cents
		}
	}
	return out
}

// BudgetUtilization reports, for each budget, the expense total of its
// category within the given month, the percentage of the cap used and
// the non-negative remainder. Budget order is preserved.
func BudgetUtilization(budgets []core.Budget, txs []core.Transaction, year, month int) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		var spent int64
		for _, t := range txs {
			if t.Type == core.Expense && t.Category == b.Category && t.Date.InMonth(year, month) {
				spent += t.Amount.Cents
			}
		}
		remaining := b.Amount.Cents - spent
		if remaining < 0 {
			remaining = 0
		}
		// A zero cap yields 0%, not NaN; stored blobs are outside the
		// store's validation reach.
		var pct float64
		if b.Amount.Cents > 0 {
			pct = float64(spent) / float64(b.Amount.Cents) * 100
		}
		out = append(out, BudgetStatus{
			Budget:     b,
			Spent:      core.Money{Cents: spent},
			Percentage: pct,
			Remaining:  core.Money{Cents: remaining},
			Over:       pct > 100,
		})
	}
	return out
}

// GoalProgress reports how far a goal has come. Progress above the
// target stays above 100%; remaining never goes negative.
func GoalProgress(g core.Goal) GoalStatus {
	var pct float64
	if g.Target.Cents > 0 {
		pct = float64(g.Current.Cents) / float64(g.Target.Cents) * 100
	}
	remaining := g.Target.Cents - g.Current.Cents
	if remaining < 0 {
		remaining = 0
	}
	return GoalStatus{
		Goal:       g,
		Percentage: pct,
		Remaining:  core.Money{Cents: remaining},
		Complete:   pct >= 100,
	}
}

// SavingsTotal sums current progress over all goals.
func SavingsTotal(goals []core.Goal) core.Money {
	var cents int64
	for _, g := range goals {
		cents += g.Current.Cents
	}
	return core.Money{Cents: cents}
}

// CategoryRanking groups expense transactions by category, sums them and
// returns the top n descending. Ties keep the order in which categories
// were first encountered, so the ranking is deterministic.
func CategoryRanking(txs []core.Transaction, n int) []CategoryTotal {
	sums := map[string]int64{}
	order := make([]string, 0)
	for _, t := range txs {
		if t.Type != core.Expense {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount.Cents
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryTotal{Category: c, Total: core.Money{Cents: sums[c]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlySeries groups all transactions by (year, month), sums income
// and expense per key and returns the last n entries in chronological
// order. Months with no transactions are absent, not zero-filled; a
// continuous chart has to fill the gaps itself.
func MonthlySeries(txs []core.Transaction, n int) []MonthPoint {
	type key struct{ year, month int }
	sums := map[key]*MonthPoint{}
	for _, t := range txs {
		k := key{t.Date.Year(), t.Date.Month()}
		p, ok := sums[k]
		if !ok {
			p = &MonthPoint{Year: k.year, Month: k.month}
			sums[k] = p
		}
		switch t.Type {
		case core.Income:
			p.Income.Cents += t.Amount.Cents
		case core.Expense:
			p.Expense.Cents += t.Amount.Cents
		}
	}
	out := make([]MonthPoint, 0, len(sums))
	for _, p := range sums {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// RecentTransactions returns the n newest transactions by date, falling
// back to creation time for same-day entries. The input is not modified.
func RecentTransactions(txs []core.Transaction, n int) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
