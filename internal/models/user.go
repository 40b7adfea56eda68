package models

// User represents the user model in the database
type User struct {
	Base
	Username     string        `gorm:"uniqueIndex;not null" json:"username"`
	Password     string        `gorm:"not null" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
