package models

import "time"

// User is owned by the account subsystem; the core only reads it to fill
// gateway customer details and to check ownership.
type User struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email     string `gorm:"unique;not null" json:"email"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	Role      string `gorm:"type:VARCHAR(20);default:'user'" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
