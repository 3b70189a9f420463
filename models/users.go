package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"user"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
