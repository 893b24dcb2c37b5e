package models

// Category is the closed set of expense categories.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryHealthcare    Category = "Healthcare"
	CategoryOthers        Category = "Others"
)

// Categories lists every valid expense category.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealthcare,
	CategoryOthers,
}

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Expense is a dated, categorized entry owned by exactly one user.
// Date is the calendar date of the expense as an ISO string (YYYY-MM-DD),
// distinct from the record's creation timestamp.
type Expense struct {
	Base
	UserID   string   `gorm:"type:uuid;not null;index:idx_expenses_user_date;index:idx_expenses_user_category" json:"-"`
	Title    string   `gorm:"not null" json:"title"`
	Amount   float64  `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category Category `gorm:"not null;index:idx_expenses_user_category" json:"category"`
	Date     string   `gorm:"not null;index:idx_expenses_user_date" json:"date"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
