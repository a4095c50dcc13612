package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-server/internal/models"
	"autoshop-server/internal/utils"
)

// DashboardHandler serves the admin dashboard aggregates.
type DashboardHandler struct {
	DB *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

func (h *DashboardHandler) countByStatus(status models.AppointmentStatus) (int64, error) {
	var n int64
	query := h.DB.Model(&models.Appointment{}).Where("is_deleted = ?", false)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&n).Error
	return n, err
}

// GetDashboard returns the appointment status counts. Each count is its own
// query; the dashboard re-queries on every load.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	total, err := h.countByStatus("")
	if err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}
	pending, err := h.countByStatus(models.StatusPending)
	if err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}
	confirmed, err := h.countByStatus(models.StatusConfirmed)
	if err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}
	completed, err := h.countByStatus(models.StatusCompleted)
	if err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	utils.Success(c, "", gin.H{
		"total":     total,
		"pending":   pending,
		"confirmed": confirmed,
		"completed": completed,
	})
}
