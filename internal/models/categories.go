package models

// CategoryOther collects amounts whose category is not part of the enum.
const CategoryOther = "Other"

// IncomeCategories is the fixed, ordered category set for income.
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investments",
	"Gifts",
	"Business",
	CategoryOther,
}

// ExpenseCategories is the fixed, ordered category set for expenses.
var ExpenseCategories = []string{
	"Rent",
	"Groceries",
	"Utilities",
	"Transport",
	"Dining",
	"Entertainment",
	"Healthcare",
	"Education",
	"Shopping",
	"Insurance",
	CategoryOther,
}

// CategoriesFor returns the category enum for t, or nil for an unknown type.
func CategoriesFor(t TransactionType) []string {
	switch t {
	case TransactionTypeIncome:
		return IncomeCategories
	case TransactionTypeExpense:
		return ExpenseCategories
	}
	return nil
}

// IsValidCategory reports whether category belongs to the enum of t.
func IsValidCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}
	return false
}
