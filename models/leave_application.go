package models

import "time"

// Leave statuses. Pending is the only status a student can create;
// the other two are set by an admin decision.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// LeaveTypes is the closed set offered by the apply form. The service
// rejects anything outside it so the store never holds an invalid type.
var LeaveTypes = []string{
	"Sick Leave",
	"Casual Leave",
	"Emergency Leave",
	"Vacation Leave",
	"Family Function Leave",
	"Festival Leave",
	"Examination Leave",
	"Personal Leave",
	"Official Leave",
	"Other",
}

type LeaveApplication struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	StudentID     string `json:"studentId" gorm:"size:30;index;not null"`
	Name          string `json:"name" gorm:"size:120;not null"`
	RoomNumber    string `json:"roomNumber" gorm:"size:20;not null"`
	ContactNumber string `json:"contactNumber" gorm:"size:15;not null"`
	LeaveType     string `json:"leaveType" gorm:"size:40;not null"`
	Destination   string `json:"destination" gorm:"size:200"`
	StartDate     string `json:"startDate" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate       string `json:"endDate" gorm:"size:10;not null"`   // YYYY-MM-DD
	Reason        string `json:"reason" gorm:"type:text;not null"`
	Status        string `json:"status" gorm:"size:20;not null"` // Pending/Approved/Rejected

	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	DecidedBy *uint      `json:"decidedBy,omitempty"` // user id of the deciding admin

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
