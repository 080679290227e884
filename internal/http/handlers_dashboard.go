package http

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"financeflow/internal/core"
	applog "financeflow/internal/log"
	"financeflow/internal/report"
)

// recentLimit is how many of the newest transactions the dashboard shows.
const recentLimit = 5

type dashboardResponse struct {
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	NetBalance   core.Money            `json:"netBalance"`
	MonthIncome  core.Money            `json:"monthIncome"`
	MonthExpense core.Money            `json:"monthExpense"`
	SavingsTotal core.Money            `json:"savingsTotal"`
	Recent       []core.Transaction    `json:"recentTransactions"`
	Budgets      []report.BudgetStatus `json:"budgets"`
	Goals        []report.GoalStatus   `json:"goals"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	year, month := parseYearMonth(r)
	key := strconv.Itoa(year) + "-" + strconv.Itoa(month)

	if data, found := s.dashCache.Get(key); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit", applog.FieldYear, year, applog.FieldMonth, month)
		writeJSON(w, http.StatusOK, data)
		return
	}

	data := s.buildDashboard(year, month)
	s.dashCache.Set(key, data)
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) buildDashboard(year, month int) dashboardResponse {
	txs := s.tracker.Transactions()
	budgets := s.tracker.Budgets()
	goals := s.tracker.Goals()

	totals := report.MonthlyTotals(txs, year, month)

	statuses := report.BudgetUtilization(budgets, txs, year, month)
	// The dashboard shows the budgets closest to (or past) their cap.
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Percentage > statuses[j].Percentage
	})
	if n := s.limits.DashboardBudgets; len(statuses) > n {
		statuses = statuses[:n]
	}

	progress := make([]report.GoalStatus, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, report.GoalProgress(g))
	}

	return dashboardResponse{
		Year:         year,
		Month:        month,
		NetBalance:   report.NetBalance(txs),
		MonthIncome:  totals.Income,
		MonthExpense: totals.Expense,
		SavingsTotal: report.SavingsTotal(goals),
		Recent:       report.RecentTransactions(txs, recentLimit),
		Budgets:      statuses,
		Goals:        progress,
	}
}

func (s *Server) handleCategoryRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	limit := parseLimit(r, "limit", s.limits.Ranking)
	writeJSON(w, http.StatusOK, report.CategoryRanking(s.tracker.Transactions(), limit))
}

func (s *Server) handleMonthlySeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	months := parseLimit(r, "months", s.limits.SeriesMonths)
	writeJSON(w, http.StatusOK, report.MonthlySeries(s.tracker.Transactions(), months))
}
