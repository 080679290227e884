package report

import (
	"math"
	"testing"

	"financeflow/internal/core"
)

func tx(amount int64, typ core.TransactionType, category string, year, month, day int) core.Transaction {
	return core.Transaction{
		Amount:      core.Money{Cents: amount},
		Description: "t",
		Category:    category,
		Type:        typ,
		Date:        core.NewDate(year, month, day),
	}
}

func TestFilterTransactions(t *testing.T) {
	named := func(desc string, typ core.TransactionType, category string) core.Transaction {
		r := tx(1000, typ, category, 2025, 3, 5)
		r.Description = desc
		return r
	}
	txs := []core.Transaction{
		named("Weekly groceries", core.Expense, "Food & Groceries"),
		named("Bus pass", core.Expense, "Transportation"),
		named("Website project", core.Income, "Freelance"),
	}

	tests := []struct {
		name     string
		query    string
		category string
		typ      core.TransactionType
		want     []string
	}{
		{"no filters", "", "", "", []string{"Weekly groceries", "Bus pass", "Website project"}},
		{"query is case-insensitive", "GROCER", "", "", []string{"Weekly groceries"}},
		{"category exact", "", "Transportation", "", []string{"Bus pass"}},
		{"type", "", "", core.Income, []string{"Website project"}},
		{"combined", "we", "", core.Expense, []string{"Weekly groceries"}},
		{"no match", "rent", "", "", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterTransactions(txs, tc.query, tc.category, tc.typ)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d transactions, got %+v", len(tc.want), got)
			}
			for i, d := range tc.want {
				if got[i].Description != d {
					t.Fatalf("result %d = %q, want %q", i, got[i].Description, d)
				}
			}
		})
	}
}

func TestNetBalance(t *testing.T) {
	txs := []core.Transaction{
		tx(10000, core.Income, "Freelance", 2025, 1, 10),
		tx(2500, core.Expense, "Food & Groceries", 2025, 1, 12),
		tx(500, core.Expense, "Transportation", 2024, 11, 3),
	}
	if got := NetBalance(txs); got.Cents != 7000 {
		t.Fatalf("expected 7000, got %d", got.Cents)
	}
	if got := NetBalance(nil); got.Cents != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got.Cents)
	}
}

func TestNetBalanceAddRemoveInvariant(t *testing.T) {
	txs := []core.Transaction{
		tx(10000, core.Income, "Freelance", 2025, 1, 10),
		tx(2500, core.Expense, "Food & Groceries", 2025, 1, 12),
	}
	before := NetBalance(txs).Cents
	txs = append(txs, tx(777, core.Expense, "Health", 2025, 1, 20))
	txs = txs[:len(txs)-1]
	if after := NetBalance(txs).Cents; after != before {
		t.Fatalf("expected %d after add+remove, got %d", before, after)
	}
}

func TestMonthlyTotals(t *testing.T) {
	txs := []core.Transaction{
		tx(10000, core.Income, "Part-time Job", 2025, 3, 1),
		tx(3000, core.Expense, "Utilities", 2025, 3, 5),
		tx(9999, core.Income, "Freelance", 2025, 2, 28), // previous month
		tx(1234, core.Expense, "Clothing", 2024, 3, 5),  // same month, other year
	}
	got := MonthlyTotals(txs, 2025, 3)
	if got.Income.Cents != 10000 || got.Expense.Cents != 3000 {
		t.Fatalf("expected 10000/3000, got %d/%d", got.Income.Cents, got.Expense.Cents)
	}
}

func TestBudgetUtilization(t *testing.T) {
	budgets := []core.Budget{{ID: "b1", Category: "Food & Groceries", Amount: core.Money{Cents: 20000}}}
	txs := []core.Transaction{
		tx(5000, core.Expense, "Food & Groceries", 2025, 4, 2),
		tx(3000, core.Expense, "Food & Groceries", 2025, 4, 20),
		tx(4000, core.Expense, "Food & Groceries", 2025, 3, 2), // wrong month
		tx(4000, core.Expense, "Transportation", 2025, 4, 2),   // wrong category
		tx(4000, core.Income, "Freelance", 2025, 4, 2),         // income ignored
	}
	out := BudgetUtilization(budgets, txs, 2025, 4)
	if len(out) != 1 {
		t.Fatalf("expected 1 status, got %d", len(out))
	}
	s := out[0]
	if s.Spent.Cents != 8000 {
		t.Fatalf("expected spent 8000, got %d", s.Spent.Cents)
	}
	if s.Percentage != 40.0 {
		t.Fatalf("expected 40%%, got %v", s.Percentage)
	}
	if s.Remaining.Cents != 12000 {
		t.Fatalf("expected remaining 12000, got %d", s.Remaining.Cents)
	}
	if s.Over {
		t.Fatalf("not over budget")
	}
}

func TestBudgetUtilizationOverBudget(t *testing.T) {
	budgets := []core.Budget{{Category: "Entertainment", Amount: core.Money{Cents: 1000}}}
	txs := []core.Transaction{tx(1500, core.Expense, "Entertainment", 2025, 1, 1)}
	out := BudgetUtilization(budgets, txs, 2025, 1)
	s := out[0]
	if !s.Over || s.Percentage != 150.0 {
		t.Fatalf("expected over budget at 150%%, got over=%v pct=%v", s.Over, s.Percentage)
	}
	if s.Remaining.Cents != 0 {
		t.Fatalf("remaining clamps at zero, got %d", s.Remaining.Cents)
	}
}

func TestBudgetUtilizationZeroCap(t *testing.T) {
	// Zero caps cannot enter through the store but may sit in a
	// hand-edited blob; the figures must stay finite.
	budgets := []core.Budget{{Category: "Entertainment", Amount: core.Money{}}}
	txs := []core.Transaction{tx(1500, core.Expense, "Entertainment", 2025, 1, 1)}
	s := BudgetUtilization(budgets, txs, 2025, 1)[0]
	if math.IsNaN(s.Percentage) || math.IsInf(s.Percentage, 0) {
		t.Fatalf("percentage must be finite, got %v", s.Percentage)
	}
	if s.Percentage != 0 || s.Over {
		t.Fatalf("zero cap: pct=%v over=%v", s.Percentage, s.Over)
	}
}

func TestGoalProgressZeroTarget(t *testing.T) {
	s := GoalProgress(core.Goal{Name: "Trip", Target: core.Money{}, Current: core.Money{Cents: 100}})
	if math.IsNaN(s.Percentage) || math.IsInf(s.Percentage, 0) {
		t.Fatalf("percentage must be finite, got %v", s.Percentage)
	}
	if s.Percentage != 0 || s.Complete {
		t.Fatalf("zero target: pct=%v complete=%v", s.Percentage, s.Complete)
	}
}

func TestGoalProgress(t *testing.T) {
	exact := GoalProgress(core.Goal{Target: core.Money{Cents: 50000}, Current: core.Money{Cents: 50000}})
	if exact.Percentage != 100 || !exact.Complete || exact.Remaining.Cents != 0 {
		t.Fatalf("exact goal: pct=%v complete=%v remaining=%d", exact.Percentage, exact.Complete, exact.Remaining.Cents)
	}

	over := GoalProgress(core.Goal{Target: core.Money{Cents: 50000}, Current: core.Money{Cents: 60000}})
	if over.Percentage != 120 || !over.Complete || over.Remaining.Cents != 0 {
		t.Fatalf("over goal: pct=%v complete=%v remaining=%d", over.Percentage, over.Complete, over.Remaining.Cents)
	}

	half := GoalProgress(core.Goal{Target: core.Money{Cents: 50000}, Current: core.Money{Cents: 25000}})
	if half.Percentage != 50 || half.Complete || half.Remaining.Cents != 25000 {
		t.Fatalf("half goal: pct=%v complete=%v remaining=%d", half.Percentage, half.Complete, half.Remaining.Cents)
	}
}

func TestSavingsTotal(t *testing.T) {
	goals := []core.Goal{
		{Current: core.Money{Cents: 100}},
		{Current: core.Money{Cents: 250}},
	}
	if got := SavingsTotal(goals); got.Cents != 350 {
		t.Fatalf("expected 350, got %d", got.Cents)
	}
}

func TestCategoryRankingTiebreak(t *testing.T) {
	txs := []core.Transaction{
		tx(10000, core.Expense, "Food & Groceries", 2025, 1, 1),
		tx(10000, core.Expense, "Transportation", 2025, 1, 2),
		tx(5000, core.Expense, "Health", 2025, 1, 3),
		tx(99999, core.Income, "Freelance", 2025, 1, 4), // income never ranks
	}
	out := CategoryRanking(txs, 0)
	want := []string{"Food & Groceries", "Transportation", "Health"}
	if len(out) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(out))
	}
	for i, w := range want {
		if out[i].Category != w {
			t.Fatalf("rank %d: expected %s, got %s", i, w, out[i].Category)
		}
	}
}

func TestCategoryRankingTopN(t *testing.T) {
	txs := []core.Transaction{
		tx(300, core.Expense, "Health", 2025, 1, 1),
		tx(200, core.Expense, "Clothing", 2025, 1, 1),
		tx(100, core.Expense, "Utilities", 2025, 1, 1),
	}
	out := CategoryRanking(txs, 2)
	if len(out) != 2 || out[0].Category != "Health" || out[1].Category != "Clothing" {
		t.Fatalf("unexpected ranking: %+v", out)
	}
}

func TestMonthlySeries(t *testing.T) {
	txs := []core.Transaction{
		tx(100, core.Income, "Freelance", 2024, 11, 1),
		tx(200, core.Expense, "Health", 2024, 11, 2),
		tx(300, core.Income, "Freelance", 2025, 1, 1),
		tx(400, core.Income, "Freelance", 2025, 2, 1),
	}
	out := MonthlySeries(txs, 0)
	if len(out) != 3 {
		t.Fatalf("expected 3 points (empty December absent), got %d", len(out))
	}
	if out[0].Year != 2024 || out[0].Month != 11 || out[0].Income.Cents != 100 || out[0].Expense.Cents != 200 {
		t.Fatalf("unexpected first point: %+v", out[0])
	}
	if out[2].Year != 2025 || out[2].Month != 2 {
		t.Fatalf("unexpected last point: %+v", out[2])
	}

	last2 := MonthlySeries(txs, 2)
	if len(last2) != 2 || last2[0].Month != 1 || last2[1].Month != 2 {
		t.Fatalf("expected last two months, got %+v", last2)
	}
}

func TestRecentTransactions(t *testing.T) {
	txs := []core.Transaction{
		tx(1, core.Expense, "Health", 2025, 1, 1),
		tx(2, core.Expense, "Health", 2025, 1, 10),
		tx(3, core.Expense, "Health", 2025, 1, 5),
	}
	out := RecentTransactions(txs, 2)
	if len(out) != 2 || out[0].Amount.Cents != 2 || out[1].Amount.Cents != 3 {
		t.Fatalf("unexpected recent order: %+v", out)
	}
	// Input order untouched.
	if txs[0].Amount.Cents != 1 {
		t.Fatalf("input mutated")
	}
}
