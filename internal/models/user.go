package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleCustomer   Role = "customer"
)

// User represents a user in the system. A mechanic is a user with the
// technician role.
type User struct {
	BaseModel
	Email       string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FullName    string `gorm:"size:150" json:"fullName"`
	PhoneNumber string `gorm:"size:20" json:"phoneNumber,omitempty"`
	Role        Role   `gorm:"size:20;default:'customer'" json:"role"`

	// Relations (not always preloaded)
	RefreshTokens        []RefreshToken  `gorm:"foreignKey:UserID" json:"-"`
	Vehicles             []Vehicle       `gorm:"foreignKey:CustomerID" json:"-"`
	Appointments         []Appointment   `gorm:"foreignKey:CustomerID" json:"-"`
	AssignedAppointments []Appointment   `gorm:"foreignKey:MechanicID" json:"-"`
	Shifts               []StaffSchedule `gorm:"foreignKey:MechanicID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
