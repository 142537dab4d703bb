package models

// User represents an account of the multi-user web application.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
}

// Credentials is the username/password pair submitted on register and login.
type Credentials struct {
	Username string `json:"username" form:"username" validate:"required,max=100"`
	Password string `json:"password" form:"password" validate:"required"`
}
