package models

import "time"

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password string `json:"-" gorm:"not null"`            // bcrypt hash
	Role     string `json:"role" gorm:"size:20;not null"` // "admin" | "student"
	Name     string `json:"name" gorm:"size:120;not null"`

	// Hostel profile, filled via the complete-profile popup.
	RollNo          string `json:"rollNo" gorm:"size:30;index"`
	RoomNumber      string `json:"roomNumber" gorm:"size:20"`
	Phone           string `json:"phone" gorm:"size:15"`
	ProfileComplete bool   `json:"profileComplete" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
