package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-server/internal/middleware"
	"autoshop-server/internal/models"
	"autoshop-server/internal/scheduling"
	"autoshop-server/internal/utils"
)

// AppointmentHandler handles appointment lifecycle requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// ServiceItemRequest is one requested service line item.
type ServiceItemRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CreateAppointmentRequest represents the request body for booking an
// appointment. The status field is accepted but ignored: new appointments
// always start Pending.
type CreateAppointmentRequest struct {
	CustomerID       string               `json:"customerId"`
	LicensePlate     string               `json:"licensePlate" binding:"required"`
	Brand            string               `json:"brand"`
	Model            string               `json:"model"`
	Year             int                  `json:"year"`
	AppointmentDate  string               `json:"appointmentDate" binding:"required"`
	EstimatedEndTime string               `json:"estimatedEndTime"`
	MechanicID       string               `json:"mechanicId"`
	PaymentMethod    string               `json:"paymentMethod"`
	Notes            string               `json:"notes"`
	Status           string               `json:"status"`
	Services         []ServiceItemRequest `json:"services" binding:"required,min=1,dive"`
}

var errServiceNotFound = errors.New("service not found")

// resolveServices loads the requested services and returns the line items plus
// the total duration in minutes. Quantity defaults to 1.
func (h *AppointmentHandler) resolveServices(items []ServiceItemRequest) ([]models.AppointmentService, int, error) {
	lineItems := make([]models.AppointmentService, 0, len(items))
	total := 0
	for _, item := range items {
		var svc models.Service
		if err := h.DB.First(&svc, "id = ?", item.ServiceID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, 0, fmt.Errorf("%w: %s", errServiceNotFound, item.ServiceID)
			}
			return nil, 0, err
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += svc.DurationMinutes * qty
		lineItems = append(lineItems, models.AppointmentService{
			ServiceID: svc.ID,
			Quantity:  qty,
		})
	}
	return lineItems, total, nil
}

// CreateAppointment books a new appointment: the vehicle row is resolved or
// inserted by license plate, the estimated end time is computed from the
// requested services, and the appointment plus its line items are written in
// one transaction.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	customerID := userID
	if req.CustomerID != "" && req.CustomerID != userID {
		if userRole != models.RoleAdmin {
			utils.Forbidden(c, "Customers can only book appointments for themselves.")
			return
		}
		customerID = req.CustomerID
	}

	startTime, err := scheduling.ParseDateTime(req.AppointmentDate)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var mechanicID *string
	if req.MechanicID != "" {
		var mechanic models.User
		if err := h.DB.Where("id = ? AND role = ?", req.MechanicID, models.RoleTechnician).
			First(&mechanic).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Mechanic not found or user is not a technician")
			} else {
				utils.InternalServerError(c, "Database error verifying mechanic: "+err.Error())
			}
			return
		}
		mechanicID = &mechanic.ID
	}

	lineItems, totalMinutes, err := h.resolveServices(req.Services)
	if err != nil {
		if errors.Is(err, errServiceNotFound) {
			utils.NotFound(c, err.Error())
		} else {
			utils.InternalServerError(c, "Failed to resolve services: "+err.Error())
		}
		return
	}

	endTime := startTime.Add(time.Duration(totalMinutes) * time.Minute)
	if req.EstimatedEndTime != "" {
		explicit, err := scheduling.ParseDateTime(req.EstimatedEndTime)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		endTime = explicit
	}

	var appointment models.Appointment
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		err := tx.Where("license_plate = ?", req.LicensePlate).First(&vehicle).Error
		if err == gorm.ErrRecordNotFound {
			year := req.Year
			if year == 0 {
				year = time.Now().Year()
			}
			vehicle = models.Vehicle{
				LicensePlate: req.LicensePlate,
				Brand:        req.Brand,
				Model:        req.Model,
				Year:         year,
				CustomerID:   customerID,
			}
			if err := tx.Create(&vehicle).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		appointment = models.Appointment{
			CustomerID:       customerID,
			VehicleID:        vehicle.ID,
			MechanicID:       mechanicID,
			AppointmentDate:  startTime,
			EstimatedEndTime: endTime,
			ServiceDuration:  totalMinutes,
			Status:           models.StatusPending,
			Notes:            req.Notes,
			PaymentMethod:    req.PaymentMethod,
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		for i := range lineItems {
			lineItems[i].AppointmentID = appointment.ID
			if err := tx.Create(&lineItems[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("appointment create failed: %v", err)
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", gin.H{
		"appointmentId": appointment.ID,
		"vehicleId":     appointment.VehicleID,
	})
}

// VehicleUpdateRequest carries optional vehicle field updates alongside an
// appointment update.
type VehicleUpdateRequest struct {
	LicensePlate *string `json:"licensePlate"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
}

// UpdateAppointmentRequest represents a partial appointment update. Omitted
// fields keep their prior values; a supplied services list fully replaces the
// existing line items.
type UpdateAppointmentRequest struct {
	Status          *string               `json:"status"`
	Notes           *string               `json:"notes"`
	MechanicID      *string               `json:"mechanicId"`
	AppointmentDate *string               `json:"appointmentDate"`
	PaymentMethod   *string               `json:"paymentMethod"`
	Vehicle         *VehicleUpdateRequest `json:"vehicle"`
	Services        *[]ServiceItemRequest `json:"services"`
}

func (r *UpdateAppointmentRequest) touchesMoreThanStatusNotes() bool {
	return r.MechanicID != nil || r.AppointmentDate != nil || r.PaymentMethod != nil ||
		r.Vehicle != nil || r.Services != nil
}

// UpdateAppointment applies a partial update to an appointment. Admins may
// update everything; the owning customer and the assigned mechanic may only
// touch status and notes. Status changes must follow the transition rules:
// Pending -> Confirmed/Canceled, Confirmed -> Completed/Canceled.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND is_deleted = ?", c.Param("id"), false).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin {
		isOwner := userID == appointment.CustomerID
		isAssigned := appointment.MechanicID != nil && *appointment.MechanicID == userID
		if !isOwner && !isAssigned {
			utils.Forbidden(c, "You are not authorized to update this appointment")
			return
		}
		if req.touchesMoreThanStatusNotes() {
			utils.Forbidden(c, "Only status and notes may be updated on your own appointment")
			return
		}
	}

	if req.Status != nil {
		next := models.AppointmentStatus(*req.Status)
		if !models.ValidStatus(next) {
			utils.BadRequest(c, "Unknown status: "+*req.Status)
			return
		}
		if next != appointment.Status && !models.CanTransition(appointment.Status, next) {
			utils.BadRequest(c, fmt.Sprintf("Illegal status transition from %s to %s", appointment.Status, next))
			return
		}
		appointment.Status = next
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.PaymentMethod != nil {
		appointment.PaymentMethod = *req.PaymentMethod
	}

	if req.AppointmentDate != nil {
		// Strict input contract: a malformed date is rejected outright, never
		// silently ignored.
		startTime, err := scheduling.ParseDateTime(*req.AppointmentDate)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		appointment.AppointmentDate = startTime
	}

	if req.MechanicID != nil {
		if *req.MechanicID == "" {
			appointment.MechanicID = nil
		} else {
			var mechanic models.User
			if err := h.DB.Where("id = ? AND role = ?", *req.MechanicID, models.RoleTechnician).
				First(&mechanic).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					utils.NotFound(c, "Mechanic not found or user is not a technician")
				} else {
					utils.InternalServerError(c, "Database error verifying mechanic: "+err.Error())
				}
				return
			}
			appointment.MechanicID = &mechanic.ID
		}
	}

	var lineItems []models.AppointmentService
	if req.Services != nil {
		if len(*req.Services) == 0 {
			utils.BadRequest(c, "services must not be empty")
			return
		}
		var totalMinutes int
		var err error
		lineItems, totalMinutes, err = h.resolveServices(*req.Services)
		if err != nil {
			if errors.Is(err, errServiceNotFound) {
				utils.NotFound(c, err.Error())
			} else {
				utils.InternalServerError(c, "Failed to resolve services: "+err.Error())
			}
			return
		}
		appointment.ServiceDuration = totalMinutes
	}

	// Keep the invariant: estimated end = start + total service duration.
	if req.AppointmentDate != nil || req.Services != nil {
		appointment.EstimatedEndTime = appointment.AppointmentDate.
			Add(time.Duration(appointment.ServiceDuration) * time.Minute)
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}

		if req.Vehicle != nil {
			var vehicle models.Vehicle
			if err := tx.First(&vehicle, "id = ?", appointment.VehicleID).Error; err != nil {
				return err
			}
			if req.Vehicle.LicensePlate != nil {
				vehicle.LicensePlate = *req.Vehicle.LicensePlate
			}
			if req.Vehicle.Brand != nil {
				vehicle.Brand = *req.Vehicle.Brand
			}
			if req.Vehicle.Model != nil {
				vehicle.Model = *req.Vehicle.Model
			}
			if req.Vehicle.Year != nil {
				vehicle.Year = *req.Vehicle.Year
			}
			if err := tx.Save(&vehicle).Error; err != nil {
				return err
			}
		}

		if req.Services != nil {
			// Replace, not merge: drop the whole line-item set and reinsert.
			if err := tx.Where("appointment_id = ?", appointment.ID).
				Delete(&models.AppointmentService{}).Error; err != nil {
				return err
			}
			for i := range lineItems {
				lineItems[i].AppointmentID = appointment.ID
				if err := tx.Create(&lineItems[i]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("appointment update failed: %v", err)
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", gin.H{"appointmentId": appointment.ID})
}

// CancelAppointment cancels an appointment unless it has already been
// completed.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND is_deleted = ?", c.Param("id"), false).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	isOwner := userID == appointment.CustomerID
	isAssigned := appointment.MechanicID != nil && *appointment.MechanicID == userID
	if userRole != models.RoleAdmin && !isOwner && !isAssigned {
		utils.Forbidden(c, "You are not authorized to cancel this appointment")
		return
	}

	if appointment.Status == models.StatusCompleted {
		utils.BadRequest(c, "Cannot cancel a completed appointment")
		return
	}

	appointment.Status = models.StatusCanceled
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment canceled", gin.H{"appointmentId": appointment.ID})
}

// AppointmentView is the flat list shape for the admin console: appointment,
// customer, vehicle and mechanic joined, services concatenated into one
// display string.
type AppointmentView struct {
	ID               string    `json:"id"`
	CustomerName     string    `json:"customerName"`
	LicensePlate     string    `json:"licensePlate"`
	VehicleBrand     string    `json:"vehicleBrand"`
	VehicleModel     string    `json:"vehicleModel"`
	MechanicName     string    `json:"mechanicName,omitempty"`
	AppointmentDate  time.Time `json:"appointmentDate"`
	EstimatedEndTime time.Time `json:"estimatedEndTime"`
	ServiceDuration  int       `json:"serviceDuration"`
	Status           string    `json:"status"`
	Services         string    `json:"services"`
	PaymentMethod    string    `json:"paymentMethod,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

func appointmentView(a models.Appointment) AppointmentView {
	names := make([]string, 0, len(a.Services))
	for _, item := range a.Services {
		name := item.Service.Name
		if item.Quantity > 1 {
			name = fmt.Sprintf("%s x%d", name, item.Quantity)
		}
		names = append(names, name)
	}

	view := AppointmentView{
		ID:               a.ID,
		CustomerName:     a.Customer.FullName,
		LicensePlate:     a.Vehicle.LicensePlate,
		VehicleBrand:     a.Vehicle.Brand,
		VehicleModel:     a.Vehicle.Model,
		AppointmentDate:  a.AppointmentDate,
		EstimatedEndTime: a.EstimatedEndTime,
		ServiceDuration:  a.ServiceDuration,
		Status:           string(a.Status),
		Services:         strings.Join(names, ", "),
		PaymentMethod:    a.PaymentMethod,
		Notes:            a.Notes,
	}
	if a.Mechanic != nil {
		view.MechanicName = a.Mechanic.FullName
	}
	return view
}

func (h *AppointmentHandler) appointmentQuery() *gorm.DB {
	return h.DB.Preload("Customer").Preload("Vehicle").Preload("Mechanic").
		Preload("Services.Service").
		Where("is_deleted = ?", false)
}

// ListAppointments handles the admin list view with optional dateFrom, dateTo
// and status filters. Each filter is appended independently; soft-deleted rows
// are always excluded.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	query := h.appointmentQuery()

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		from, err := scheduling.ParseDate(dateFrom)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		fromTime, _ := time.ParseInLocation(scheduling.DateLayout, from, time.Local)
		query = query.Where("appointment_date >= ?", fromTime)
	}
	if dateTo := c.Query("dateTo"); dateTo != "" {
		to, err := scheduling.ParseDate(dateTo)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		toTime, _ := time.ParseInLocation(scheduling.DateLayout, to, time.Local)
		query = query.Where("appointment_date < ?", toTime.AddDate(0, 0, 1))
	}
	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(models.AppointmentStatus(status)) {
			utils.BadRequest(c, "Unknown status: "+status)
			return
		}
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date desc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	views := make([]AppointmentView, len(appointments))
	for i, a := range appointments {
		views[i] = appointmentView(a)
	}
	utils.Success(c, "", gin.H{"appointments": views})
}

// GetMyAppointments handles fetching the calling user's appointments: owned
// bookings for customers, assigned jobs for technicians.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.appointmentQuery().Order("appointment_date desc")
	switch userRole {
	case models.RoleTechnician:
		query = query.Where("mechanic_id = ?", userID)
	case models.RoleAdmin:
		// Admins see everything.
	default:
		query = query.Where("customer_id = ?", userID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	views := make([]AppointmentView, len(appointments))
	for i, a := range appointments {
		views[i] = appointmentView(a)
	}
	utils.Success(c, "", gin.H{"appointments": views})
}

// LineItemView is one service line item on the appointment detail view.
type LineItemView struct {
	ServiceID       string  `json:"serviceId"`
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// GetAppointment handles fetching a single appointment with its line items.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := h.appointmentQuery().First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	isOwner := userID == appointment.CustomerID
	isAssigned := appointment.MechanicID != nil && *appointment.MechanicID == userID
	if userRole != models.RoleAdmin && !isOwner && !isAssigned {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	items := make([]LineItemView, len(appointment.Services))
	for i, item := range appointment.Services {
		items[i] = LineItemView{
			ServiceID:       item.ServiceID,
			Name:            item.Service.Name,
			Quantity:        item.Quantity,
			Price:           item.Service.Price,
			DurationMinutes: item.Service.DurationMinutes,
		}
	}

	utils.Success(c, "", gin.H{
		"appointment": appointmentView(appointment),
		"services":    items,
	})
}
