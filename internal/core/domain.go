package core

import (
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Date is a calendar day without a time component.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string          `json:"id"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Type        TransactionType `json:"type"`
		Date        Date            `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	Budget struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
	}

	Goal struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Target   Money  `json:"target"`
		Current  Money  `json:"current"`
		Deadline Date   `json:"deadline"` // zero value means no deadline
	}
)

// IncomeCategories and ExpenseCategories are the fixed, disjoint category
// sets. A transaction's category must belong to the set matching its type.
var (
	IncomeCategories = []string{
		"Part-time Job",
		"Family Support",
		"Student Loan",
		"Freelance",
		"Scholarship",
		"Other Income",
	}

	ExpenseCategories = []string{
		"Accommodation",
		"Food & Groceries",
		"Textbooks",
		"Transportation",
		"Entertainment",
		"Utilities",
		"Clothing",
		"Health",
		"Other Expenses",
	}
)

// CategoriesFor returns the allowed categories for a transaction type.
func CategoriesFor(t TransactionType) []string {
	switch t {
	case Income:
		return IncomeCategories
	case Expense:
		return ExpenseCategories
	}
	return nil
}

func validCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}
	return false
}

// NewDate creates a Date from year, month (1-12) and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// InMonth reports whether the date falls in the given year and month (1-12).
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

func (t Transaction) Validate() error {
	var bad []string
	if t.Amount.Cents <= 0 {
		bad = append(bad, "amount")
	}
	desc := strings.TrimSpace(t.Description)
	if desc == "" || len(desc) > 200 {
		bad = append(bad, "description")
	}
	switch t.Type {
	case Income, Expense:
		if !validCategory(t.Type, t.Category) {
			bad = append(bad, "category")
		}
	default:
		bad = append(bad, "type")
	}
	if t.Date.IsZero() {
		bad = append(bad, "date")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

func (b Budget) Validate() error {
	var bad []string
	if b.Amount.Cents <= 0 {
		bad = append(bad, "amount")
	}
	if !validCategory(Expense, b.Category) {
		bad = append(bad, "category")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

func (g Goal) Validate() error {
	var bad []string
	name := strings.TrimSpace(g.Name)
	if name == "" || len(name) > 200 {
		bad = append(bad, "name")
	}
	if g.Target.Cents <= 0 {
		bad = append(bad, "target")
	}
	if g.Current.Cents < 0 {
		bad = append(bad, "current")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}
