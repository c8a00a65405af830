package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

// CatalogHandler manages a team's services and retail products.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=5,max=480"`
	Price           int    `json:"price" binding:"min=0"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("team_id = ?", middleware.TeamIDFrom(c)).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	svc := models.Service{
		TeamID:          middleware.TeamIDFrom(c),
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) SetServiceActive(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var svc models.Service
	if err := h.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", id, middleware.TeamIDFrom(c)).
		First(&svc).Error; err != nil {
		notFoundOrInternal(c, err, "service_not_found", "Service not found.")
		return
	}

	if err := h.db.WithContext(ctx).Model(&svc).Update("is_active", *req.IsActive).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService refuses services still referenced by bookings; deactivate
// those instead.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	teamID := middleware.TeamIDFrom(c)

	var svc models.Service
	if err := h.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", id, teamID).
		First(&svc).Error; err != nil {
		notFoundOrInternal(c, err, "service_not_found", "Service not found.")
		return
	}

	var bookings int64
	if err := h.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("service_id = ?", svc.ID).
		Count(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}
	if bookings > 0 {
		httperr.Conflict(c, "service_in_use", "The service has bookings. Deactivate it instead.")
		return
	}

	if err := h.db.WithContext(ctx).Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// PRODUCTS
// ======================================================

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var products []models.Product
	if err := h.db.WithContext(c.Request.Context()).
		Where("team_id = ?", middleware.TeamIDFrom(c)).
		Order("name ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	product := models.Product{
		TeamID:      middleware.TeamIDFrom(c),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Could not create the product.")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND team_id = ?", id, middleware.TeamIDFrom(c)).
		Delete(&models.Product{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_product", "Could not delete the product.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}
	c.Status(http.StatusNoContent)
}

func notFoundOrInternal(c *gin.Context, err error, code, message string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, code, message)
		return
	}
	httperr.Internal(c, "internal_error", "Unexpected error.")
}
