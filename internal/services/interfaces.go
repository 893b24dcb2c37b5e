package services

import "spendwise/internal/models"

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(name, email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// ExpenseInput carries the four mutable fields of an expense. Updates are a
// full replace of all four.
type ExpenseInput struct {
	Title    string
	Amount   float64
	Category string
	Date     string
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category *string
	FromDate *string
	ToDate   *string
}

// CategoryTotal is the spend aggregated over one category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    float64         `json:"total"`
	Count    int64           `json:"count"`
}

// MonthTotal is the spend aggregated over one calendar month (YYYY-MM).
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// ExpenseSummary aggregates a user's spending.
type ExpenseSummary struct {
	Total      float64         `json:"total"`
	Count      int64           `json:"count"`
	ByCategory []CategoryTotal `json:"byCategory"`
	ByMonth    []MonthTotal    `json:"byMonth"`
}

// ExpenseServicer defines the contract for expense-related business logic.
// Every operation is scoped to the owning user; records owned by anyone else
// behave exactly like records that do not exist.
type ExpenseServicer interface {
	CreateExpense(userID string, in ExpenseInput) (*models.Expense, error)
	GetUserExpenses(userID string, filter ExpenseFilter) ([]models.Expense, error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, in ExpenseInput) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	GetSummary(userID string) (*ExpenseSummary, error)
}
