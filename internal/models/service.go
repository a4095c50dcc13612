package models

// Service represents one catalog entry the shop offers (oil change, brake
// check, ...). DurationMinutes feeds the appointment end-time computation.
type Service struct {
	BaseModel
	Name            string  `gorm:"size:150;not null" json:"name"`
	Description     string  `gorm:"type:text" json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `gorm:"not null;default:30" json:"durationMinutes"`
	IsActive        bool    `gorm:"default:true" json:"isActive"`
}

// AppointmentService is one line item on an appointment. Line items are owned
// by their appointment: updating an appointment's services deletes the old set
// and reinserts the new one.
type AppointmentService struct {
	BaseModel
	AppointmentID string `gorm:"size:36;index;not null" json:"appointmentId"`
	ServiceID     string `gorm:"size:36;index;not null" json:"serviceId"`
	Quantity      int    `gorm:"not null;default:1" json:"quantity"`

	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
