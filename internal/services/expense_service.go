package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// validateInput enforces the server-side rules regardless of what the client
// claims to have validated.
func validateInput(in *ExpenseInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if len(in.Title) < 3 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Title must be at least 3 characters long")
	}
	if in.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be a number greater than 0")
	}
	if !models.ValidCategory(in.Category) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is invalid")
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date format")
	}
	return nil
}

// CreateExpense creates a new expense owned by the given user.
func (s *expenseService) CreateExpense(userID string, in ExpenseInput) (*models.Expense, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:   userID,
		Title:    in.Title,
		Amount:   in.Amount,
		Category: models.Category(in.Category),
		Date:     in.Date,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserExpenses retrieves the user's expenses, newest first, with optional
// category and date-range filters.
func (s *expenseService) GetUserExpenses(userID string, filter ExpenseFilter) ([]models.Expense, error) {
	query := s.db.Where("user_id = ?", userID)

	if filter.Category != nil {
		if !models.ValidCategory(*filter.Category) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is invalid")
		}
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}

	var expenses []models.Expense
	if err := query.Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user. An expense
// owned by a different user comes back as not found.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense replaces the four mutable fields of an expense in place.
func (s *expenseService) UpdateExpense(userID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":    in.Title,
		"amount":   in.Amount,
		"category": in.Category,
		"date":     in.Date,
	}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// DeleteExpense deletes an expense. Same not-found semantics as reads.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSummary aggregates the user's spending: overall total and count plus
// per-category and per-month breakdowns.
func (s *expenseService) GetSummary(userID string) (*ExpenseSummary, error) {
	summary := &ExpenseSummary{
		ByCategory: []CategoryTotal{},
		ByMonth:    []MonthTotal{},
	}

	row := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0), COUNT(*)").
		Where("user_id = ?", userID).
		Row()
	if err := row.Scan(&summary.Total, &summary.Count); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&models.Expense{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Order("total DESC").
		Scan(&summary.ByCategory).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Dates are stored as YYYY-MM-DD strings, so the month is a prefix.
	if err := s.db.Model(&models.Expense{}).
		Select("substr(date, 1, 7) AS month, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("substr(date, 1, 7)").
		Order("month DESC").
		Scan(&summary.ByMonth).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if summary.ByCategory == nil {
		summary.ByCategory = []CategoryTotal{}
	}
	if summary.ByMonth == nil {
		summary.ByMonth = []MonthTotal{}
	}

	return summary, nil
}
