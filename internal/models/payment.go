package models

import (
	"time"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// Payment records money owed or received for one appointment. Transfer
// payments start Pending and are flipped to Paid by the due-payment sweep once
// the appointment's scheduled time has passed; cash is marked Paid on the spot.
type Payment struct {
	BaseModel
	AppointmentID string        `gorm:"size:36;index;not null" json:"appointmentId"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Method        string        `gorm:"size:30;not null" json:"method"`
	Status        PaymentStatus `gorm:"size:20;default:'Pending'" json:"status"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
