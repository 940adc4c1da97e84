package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/middleware"
)

// HostelController handles hostel operations
type HostelController struct {
	hostelService *services.HostelService
}

// NewHostelController creates a new HostelController
func NewHostelController(hostelService *services.HostelService) *HostelController {
	return &HostelController{hostelService: hostelService}
}

// CreateHostel creates a hostel
// @Summary Create a hostel
// @Tags hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHostelRequest true "Hostel details"
// @Success 201 {object} dto.APIResponse{data=models.Hostel} "Hostel created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /hostels [post]
func (c *HostelController) CreateHostel(ctx *gin.Context) {
	var req dto.CreateHostelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid hostel data", err)
		return
	}

	hostel := &models.Hostel{
		Name:     req.Name,
		Type:     req.Type,
		WardenID: req.WardenID,
	}

	if err := c.hostelService.CreateHostel(ctx, hostel); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, hostel)
}

// GetHostel retrieves a hostel with its rooms
// @Summary Get hostel by ID
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} dto.APIResponse{data=models.Hostel} "Hostel"
// @Failure 404 {object} dto.ErrorResponse "Hostel not found"
// @Router /hostels/{id} [get]
func (c *HostelController) GetHostel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	hostel, err := c.hostelService.GetHostel(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, hostel)
}

// ListHostels retrieves all hostels
// @Summary List hostels
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Hostel} "Hostels"
// @Router /hostels [get]
func (c *HostelController) ListHostels(ctx *gin.Context) {
	hostels, err := c.hostelService.ListHostels(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, hostels)
}

// UpdateHostel updates hostel details
// @Summary Update hostel
// @Tags hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Param request body dto.UpdateHostelRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Hostel} "Updated hostel"
// @Failure 404 {object} dto.ErrorResponse "Hostel not found"
// @Router /hostels/{id} [put]
func (c *HostelController) UpdateHostel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateHostelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid hostel data", err)
		return
	}

	hostel, err := c.hostelService.GetHostel(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if req.Name != nil {
		hostel.Name = *req.Name
	}
	if req.Type != nil {
		hostel.Type = *req.Type
	}
	if req.WardenID != nil {
		hostel.WardenID = req.WardenID
	}

	if err := c.hostelService.UpdateHostel(ctx, hostel); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, hostel)
}

// DeleteHostel removes a hostel and its dependent rows
// @Summary Delete hostel
// @Description Cascading delete; rejected while any room has active allotments
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Deleted"
// @Failure 409 {object} dto.ErrorResponse "Hostel has active allotments"
// @Router /hostels/{id} [delete]
func (c *HostelController) DeleteHostel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.hostelService.DeleteHostel(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondMessage(ctx, http.StatusOK, "Hostel deleted")
}
