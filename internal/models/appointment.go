package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCanceled  AppointmentStatus = "Canceled"
)

// statusTransitions lists the legal next states per status. Completed and
// Canceled are terminal.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
	StatusCompleted: {},
	StatusCanceled:  {},
}

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s AppointmentStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether moving from one status to next is legal.
// The data layer does not hard-block illegal writes; route handlers are
// expected to consult this before saving.
func CanTransition(from, next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment represents one repair-shop booking. Rows are soft-deleted via
// IsDeleted rather than removed.
type Appointment struct {
	BaseModel
	CustomerID       string            `gorm:"size:36;index" json:"customerId"`
	VehicleID        string            `gorm:"size:36;index" json:"vehicleId"`
	MechanicID       *string           `gorm:"size:36;index" json:"mechanicId"`
	AppointmentDate  time.Time         `json:"appointmentDate"`
	EstimatedEndTime time.Time         `json:"estimatedEndTime"`
	ServiceDuration  int               `json:"serviceDuration"` // minutes
	Status           AppointmentStatus `gorm:"size:20;default:'Pending'" json:"status"`
	Notes            string            `gorm:"type:text" json:"notes"`
	PaymentMethod    string            `gorm:"size:30" json:"paymentMethod"`
	IsDeleted        bool              `gorm:"default:false;index" json:"-"`

	// Relations
	Customer User                 `gorm:"foreignKey:CustomerID" json:"-"`
	Vehicle  Vehicle              `gorm:"foreignKey:VehicleID" json:"-"`
	Mechanic *User                `gorm:"foreignKey:MechanicID" json:"-"`
	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services,omitempty"`
}
