package models

import "time"

// Task is a single to-do item, always owned by exactly one user.
type Task struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Description string    `json:"description" validate:"required,min=1,max=500"`
	Completed   bool      `json:"completed"`
	OwnerID     string    `json:"owner" gorm:"index;type:varchar(36)" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
