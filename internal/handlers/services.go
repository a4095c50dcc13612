package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-server/internal/models"
	"autoshop-server/internal/utils"
)

// ServiceHandler serves the service catalog.
type ServiceHandler struct {
	DB *gorm.DB
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{DB: db}
}

// ListServices handles fetching the active service catalog for booking forms.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.DB.Where("is_active = ?", true).Order("name asc").Find(&services).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch services: "+err.Error())
		return
	}
	utils.Success(c, "", gin.H{"services": services})
}
