package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// --- mock service ---

type mockExpenseService struct {
	createFn  func(userID string, in services.ExpenseInput) (*models.Expense, error)
	listFn    func(userID string, filter services.ExpenseFilter) ([]models.Expense, error)
	getFn     func(userID, expenseID string) (*models.Expense, error)
	updateFn  func(userID, expenseID string, in services.ExpenseInput) (*models.Expense, error)
	deleteFn  func(userID, expenseID string) error
	summaryFn func(userID string) (*services.ExpenseSummary, error)
}

func (m *mockExpenseService) CreateExpense(userID string, in services.ExpenseInput) (*models.Expense, error) {
	if m.createFn != nil {
		return m.createFn(userID, in)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetUserExpenses(userID string, filter services.ExpenseFilter) ([]models.Expense, error) {
	if m.listFn != nil {
		return m.listFn(userID, filter)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	if m.getFn != nil {
		return m.getFn(userID, expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(userID, expenseID string, in services.ExpenseInput) (*models.Expense, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, expenseID, in)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, expenseID)
	}
	return nil
}

func (m *mockExpenseService) GetSummary(userID string) (*services.ExpenseSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(userID)
	}
	return &services.ExpenseSummary{}, nil
}

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	expenses := r.Group("/api/expenses", injectUserID("user-1"))
	expenses.GET("", handler.List)
	expenses.POST("", handler.Create)
	expenses.GET("/summary", handler.Summary)
	expenses.PATCH("/:id", handler.Update)
	expenses.DELETE("/:id", handler.Delete)
	return r
}

// --- tests ---

func TestExpenseHandler_List(t *testing.T) {
	t.Run("returns bare array scoped to caller", func(t *testing.T) {
		var gotUserID string
		svc := &mockExpenseService{
			listFn: func(userID string, _ services.ExpenseFilter) ([]models.Expense, error) {
				gotUserID = userID
				return []models.Expense{
					{Base: models.Base{ID: "e1"}, Title: "Groceries", Amount: 42.50, Category: models.CategoryFood, Date: "2024-01-15"},
				}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		rec := doRequest(r, "GET", "/api/expenses", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUserID != "user-1" {
			t.Errorf("expected injected user ID, got %q", gotUserID)
		}
		if body := rec.Body.String(); body[0] != '[' {
			t.Errorf("expected a JSON array, got: %s", body)
		}
	})

	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.ExpenseFilter
		svc := &mockExpenseService{
			listFn: func(_ string, filter services.ExpenseFilter) ([]models.Expense, error) {
				gotFilter = filter
				return []models.Expense{}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		rec := doRequest(r, "GET", "/api/expenses?category=Food&from=2024-01-01&to=2024-01-31", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.Category == nil || *gotFilter.Category != "Food" {
			t.Errorf("expected category filter Food, got %v", gotFilter.Category)
		}
		if gotFilter.FromDate == nil || *gotFilter.FromDate != "2024-01-01" {
			t.Errorf("expected from filter, got %v", gotFilter.FromDate)
		}
		if gotFilter.ToDate == nil || *gotFilter.ToDate != "2024-01-31" {
			t.Errorf("expected to filter, got %v", gotFilter.ToDate)
		}
	})

	t.Run("rejects invalid filter category", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		rec := doRequest(r, "GET", "/api/expenses?category=Nope", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_Create(t *testing.T) {
	t.Run("returns 201 with created expense", func(t *testing.T) {
		svc := &mockExpenseService{
			createFn: func(userID string, in services.ExpenseInput) (*models.Expense, error) {
				return &models.Expense{
					Base:     models.Base{ID: "e1"},
					UserID:   userID,
					Title:    in.Title,
					Amount:   in.Amount,
					Category: models.Category(in.Category),
					Date:     in.Date,
				}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		rec := doRequest(r, "POST", "/api/expenses",
			`{"title":"Groceries","amount":42.50,"category":"Food","date":"2024-01-15"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["id"] != "e1" {
			t.Errorf("expected generated id in response, got %v", result["id"])
		}
		if result["amount"] != 42.50 {
			t.Errorf("expected amount 42.50, got %v", result["amount"])
		}
	})

	t.Run("rejects invalid payloads at binding", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		for name, body := range map[string]string{
			"short_title":  `{"title":"ab","amount":10,"category":"Food","date":"2024-01-15"}`,
			"zero_amount":  `{"title":"Groceries","amount":0,"category":"Food","date":"2024-01-15"}`,
			"bad_category": `{"title":"Groceries","amount":10,"category":"Candy","date":"2024-01-15"}`,
			"bad_date":     `{"title":"Groceries","amount":10,"category":"Food","date":"Jan 15"}`,
			"not_json":     `title=Groceries`,
		} {
			rec := doRequest(r, "POST", "/api/expenses", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", name, rec.Code)
			}
		}
	})
}

func TestExpenseHandler_Update(t *testing.T) {
	t.Run("returns 200 with updated expense", func(t *testing.T) {
		var gotID string
		svc := &mockExpenseService{
			updateFn: func(_, expenseID string, in services.ExpenseInput) (*models.Expense, error) {
				gotID = expenseID
				return &models.Expense{Base: models.Base{ID: expenseID}, Title: in.Title}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		rec := doRequest(r, "PATCH", "/api/expenses/e1",
			`{"title":"Taxi home","amount":18,"category":"Transport","date":"2024-02-01"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != "e1" {
			t.Errorf("expected path id e1, got %q", gotID)
		}
	})

	t.Run("returns 404 when service reports not found", func(t *testing.T) {
		svc := &mockExpenseService{
			updateFn: func(string, string, services.ExpenseInput) (*models.Expense, error) {
				return nil, apperrors.ErrExpenseNotFound
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		rec := doRequest(r, "PATCH", "/api/expenses/e1",
			`{"title":"Taxi home","amount":18,"category":"Transport","date":"2024-02-01"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Expense not found")
	})
}

func TestExpenseHandler_Delete(t *testing.T) {
	t.Run("returns confirmation message", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		rec := doRequest(r, "DELETE", "/api/expenses/e1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["message"] != "Expense deleted successfully" {
			t.Errorf("unexpected message: %v", result["message"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockExpenseService{
			deleteFn: func(string, string) error { return apperrors.ErrExpenseNotFound },
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		rec := doRequest(r, "DELETE", "/api/expenses/e1", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_Summary(t *testing.T) {
	svc := &mockExpenseService{
		summaryFn: func(string) (*services.ExpenseSummary, error) {
			return &services.ExpenseSummary{
				Total: 116,
				Count: 3,
				ByCategory: []services.CategoryTotal{
					{Category: models.CategoryBills, Total: 100, Count: 1},
				},
				ByMonth: []services.MonthTotal{{Month: "2024-02", Total: 100}},
			}, nil
		},
	}
	r := setupExpenseRouter(NewExpenseHandler(svc))

	rec := doRequest(r, "GET", "/api/expenses/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total"] != float64(116) {
		t.Errorf("expected total 116, got %v", result["total"])
	}
	if result["count"] != float64(3) {
		t.Errorf("expected count 3, got %v", result["count"])
	}
}
