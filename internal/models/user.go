package models

import "gorm.io/gorm"

// User represents an account in the task manager.
type User struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string      `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Email      string      `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string      `json:"-" gorm:"type:varchar(255)" validate:"required"` // Always stored hashed
	Age        int         `json:"age" validate:"gte=0"`
	Avatar     []byte      `json:"-"` // Normalized 250x250 PNG, or nil
	Tokens     []AuthToken `json:"-" gorm:"foreignKey:UserID"`
	gorm.Model `json:"-"`  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// AuthToken is a single issued session. A row existing for (UserID, Token) is
// what makes a signed token acceptable; deleting the row revokes the session
// even before the token itself expires.
type AuthToken struct {
	ID         string `json:"-" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"-" gorm:"index;type:varchar(36)"`
	Token      string `json:"token" gorm:"type:text"`
	gorm.Model `json:"-"`
}
