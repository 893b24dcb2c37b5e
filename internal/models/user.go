package models

// User represents a registered account. The email is stored lowercased and
// the password column only ever holds a bcrypt digest.
type User struct {
	Base
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Expenses []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
