package models

// Vehicle represents a customer's vehicle, keyed by its license plate.
// Rows are created lazily the first time a plate shows up in a booking.
type Vehicle struct {
	BaseModel
	LicensePlate string `gorm:"uniqueIndex;size:20;not null" json:"licensePlate"`
	Brand        string `gorm:"size:100" json:"brand"`
	Model        string `gorm:"size:100" json:"model"`
	Year         int    `json:"year"`
	CustomerID   string `gorm:"size:36;index" json:"customerId"`

	Customer User `gorm:"foreignKey:CustomerID" json:"-"`
}
