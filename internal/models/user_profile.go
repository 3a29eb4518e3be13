package models

// UserProfile is the locally stored identity of an authenticated user.
type UserProfile struct {
	Base
	UserID    string `gorm:"not null;uniqueIndex" json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
