package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session statuses.
const (
	SessionScheduled = "Scheduled"
	SessionCancelled = "Cancelled"
	SessionCompleted = "Completed"
)

// Session is a scheduled class run by a trainer.
type Session struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Trainer      primitive.ObjectID `bson:"trainer" json:"trainer"`
	Date         time.Time          `bson:"date" json:"date"`
	StartTime    string             `bson:"startTime" json:"startTime"` // HH:MM
	Capacity     int                `bson:"capacity" json:"capacity"`
	Status       string             `bson:"status" json:"status"`
	StartingDate *time.Time         `bson:"startingdate,omitempty" json:"startingdate,omitempty"`
	Location     string             `bson:"location" json:"location"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Attendance records a member's presence at a session. Exactly one document
// per (sessionId, memberId); marking attendance twice updates in place.
type Attendance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID    primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	MemberID     primitive.ObjectID `bson:"memberId" json:"memberId"`
	IsPresent    bool               `bson:"isPresent" json:"isPresent"`
	DateAttended time.Time          `bson:"dateAttended" json:"dateAttended"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Employee attendance statuses.
const (
	EmpAttPresent = "Present"
	EmpAttAbsent  = "Absent"
	EmpAttLeave   = "Leave"
	EmpAttHoliday = "Holiday"
)

// EmployeeAttendance records one employee's attendance for one day. The date
// is truncated to the start of day; one document per (employee, date).
type EmployeeAttendance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Employee  primitive.ObjectID `bson:"employee" json:"employee"`
	Date      time.Time          `bson:"date" json:"date"`
	Status    string             `bson:"status" json:"status"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}
