package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/middleware"
)

// MaintenanceController handles maintenance ticket operations
type MaintenanceController struct {
	maintenanceService *services.MaintenanceService
}

// NewMaintenanceController creates a new MaintenanceController
func NewMaintenanceController(maintenanceService *services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{maintenanceService: maintenanceService}
}

// ReportIssue files a maintenance ticket
// @Summary Report a maintenance issue
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMaintenanceRequest true "Ticket details"
// @Success 201 {object} dto.APIResponse{data=models.MaintenanceRequest} "Ticket filed"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /maintenance [post]
func (c *MaintenanceController) ReportIssue(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateMaintenanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid maintenance data", err)
		return
	}

	ticket, err := c.maintenanceService.ReportIssue(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, ticket)
}

// ListRequests lists maintenance tickets
// @Summary List maintenance tickets
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, in_progress, resolved)
// @Success 200 {object} dto.APIResponse{data=[]models.MaintenanceRequest} "Tickets"
// @Router /maintenance [get]
func (c *MaintenanceController) ListRequests(ctx *gin.Context) {
	var status *models.MaintenanceStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.MaintenanceStatus(raw)
		status = &s
	}

	tickets, err := c.maintenanceService.ListRequests(ctx, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, tickets)
}

// ListMyRequests lists the caller's maintenance tickets
// @Summary List own maintenance tickets
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.MaintenanceRequest} "Tickets"
// @Router /maintenance/me [get]
func (c *MaintenanceController) ListMyRequests(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	tickets, err := c.maintenanceService.ListMyRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, tickets)
}

// GetRequest retrieves a maintenance ticket
// @Summary Get maintenance ticket by ID
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.APIResponse{data=models.MaintenanceRequest} "Ticket"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Router /maintenance/{id} [get]
func (c *MaintenanceController) GetRequest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	ticket, err := c.maintenanceService.GetRequest(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, ticket)
}

// UpdateStatus moves a ticket through its lifecycle
// @Summary Update ticket status
// @Description Moves a ticket between pending, in_progress and resolved; resolving records the cost
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body dto.UpdateMaintenanceStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.MaintenanceRequest} "Updated ticket"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Router /maintenance/{id}/status [put]
func (c *MaintenanceController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMaintenanceStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid status data", err)
		return
	}

	ticket, err := c.maintenanceService.UpdateStatus(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, ticket)
}
