package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// ExpenseHandler handles expense CRUD requests. Every method expects an
// already-verified owner ID injected by the auth middleware.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create/update payload. Updates replace all
// four fields, so the same shape serves both.
type ExpenseRequest struct {
	Title    string  `json:"title" binding:"required,min=3,max=200"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Category string  `json:"category" binding:"required,expense_category"`
	Date     string  `json:"date" binding:"required,expense_date"`
}

// ListQuery holds the optional list filters.
type ListQuery struct {
	Category string `form:"category" binding:"omitempty,expense_category"`
	From     string `form:"from" binding:"omitempty,expense_date"`
	To       string `form:"to" binding:"omitempty,expense_date"`
}

func (r ExpenseRequest) toInput() services.ExpenseInput {
	return services.ExpenseInput{
		Title:    r.Title,
		Amount:   r.Amount,
		Category: r.Category,
		Date:     r.Date,
	}
}

// List returns the caller's expenses
// @Summary     List expenses
// @Description List the authenticated user's expenses, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Filter by category"
// @Param       from     query string false "Earliest date (YYYY-MM-DD)"
// @Param       to       query string false "Latest date (YYYY-MM-DD)"
// @Success     200 {array}  models.Expense
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ExpenseFilter{}
	if q.Category != "" {
		filter.Category = &q.Category
	}
	if q.From != "" {
		filter.FromDate = &q.From
	}
	if q.To != "" {
		filter.ToDate = &q.To
	}

	expenses, err := h.expenseService.GetUserExpenses(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// Create adds a new expense
// @Summary     Create expense
// @Description Create a new expense owned by the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense data"
// @Success     201 {object} models.Expense
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// Update replaces an expense's mutable fields
// @Summary     Update expense
// @Description Replace the title, amount, category, and date of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Expense ID"
// @Param       request body ExpenseRequest true "Expense data"
// @Success     200 {object} models.Expense
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [patch]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Delete removes an expense
// @Summary     Delete expense
// @Description Delete an expense owned by the authenticated user
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// Summary aggregates the caller's spending
// @Summary     Expense summary
// @Description Aggregate totals, per-category, and per-month spending
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ExpenseSummary
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.expenseService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
