package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-server/internal/middleware"
	"autoshop-server/internal/models"
	"autoshop-server/internal/utils"
)

// PaymentHandler handles payment records for appointments.
type PaymentHandler struct {
	DB *gorm.DB
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

// CreatePaymentRequest represents the request body for recording a payment.
type CreatePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required,oneof=cash transfer card"`
}

// CreatePayment records a payment for an appointment. Cash is marked Paid on
// the spot; transfer and card start Pending and are settled by the due sweep.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
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
	if userRole != models.RoleAdmin && userID != appointment.CustomerID {
		utils.Forbidden(c, "You are not authorized to record a payment for this appointment")
		return
	}

	var req CreatePaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	payment := models.Payment{
		AppointmentID: appointment.ID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        models.PaymentPending,
	}
	if req.Method == "cash" {
		now := time.Now()
		payment.Status = models.PaymentPaid
		payment.PaidAt = &now
	}

	if err := h.DB.Create(&payment).Error; err != nil {
		utils.InternalServerError(c, "Failed to record payment: "+err.Error())
		return
	}

	utils.Created(c, "Payment recorded", gin.H{"paymentId": payment.ID, "status": payment.Status})
}

// ProcessDuePayments flips pending payments to Paid once the owning
// appointment's scheduled time has passed. Polled by the admin console; there
// is no background worker.
func (h *PaymentHandler) ProcessDuePayments(c *gin.Context) {
	var due []models.Payment
	if err := h.DB.Joins("Appointment").
		Where("payments.status = ?", models.PaymentPending).
		Where("Appointment.appointment_date <= ?", time.Now()).
		Find(&due).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch due payments: "+err.Error())
		return
	}

	processed := 0
	for i := range due {
		now := time.Now()
		due[i].Status = models.PaymentPaid
		due[i].PaidAt = &now
		if err := h.DB.Save(&due[i]).Error; err != nil {
			log.Printf("payment sweep failed for %s: %v", due[i].ID, err)
			utils.InternalServerError(c, "Failed to process payment "+due[i].ID+": "+err.Error())
			return
		}
		processed++
	}

	utils.Success(c, "Due payments processed", gin.H{"processed": processed})
}
