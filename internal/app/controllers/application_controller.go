package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/middleware"
)

// ApplicationController handles the room application workflow
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// SubmitApplication files a room application for the caller
// @Summary Submit application
// @Description Files a pending room application; one pending application per user
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitApplicationRequest true "Application details"
// @Success 201 {object} dto.APIResponse{data=models.AllotmentApplication} "Application submitted"
// @Failure 409 {object} dto.ErrorResponse "A pending application already exists"
// @Router /applications [post]
func (c *ApplicationController) SubmitApplication(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid application data", err)
		return
	}

	app, err := c.applicationService.SubmitApplication(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, app)
}

// ListMyApplications returns the caller's applications
// @Summary List own applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AllotmentApplication} "Applications"
// @Router /applications/me [get]
func (c *ApplicationController) ListMyApplications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	apps, err := c.applicationService.ListUserApplications(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, apps)
}

// ListPendingScored returns pending applications ranked for triage
// @Summary List pending applications with priority
// @Description Pending applications annotated with priority score, ordered for warden review
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ScoredApplicationResponse} "Scored applications"
// @Router /applications/pending [get]
func (c *ApplicationController) ListPendingScored(ctx *gin.Context) {
	scored, err := c.applicationService.ListPendingScored(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, scored)
}

// GetApplication retrieves an application by ID
// @Summary Get application by ID
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.AllotmentApplication} "Application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.GetApplication(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, app)
}

// ApproveApplication approves a pending application
// @Summary Approve application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.AllotmentApplication} "Approved application"
// @Failure 409 {object} dto.ErrorResponse "Application already reviewed"
// @Router /applications/{id}/approve [post]
func (c *ApplicationController) ApproveApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	app, err := c.applicationService.ApproveApplication(ctx, id, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, app)
}

// RejectApplication rejects a pending application
// @Summary Reject application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.AllotmentApplication} "Rejected application"
// @Failure 409 {object} dto.ErrorResponse "Application already reviewed"
// @Router /applications/{id}/reject [post]
func (c *ApplicationController) RejectApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	app, err := c.applicationService.RejectApplication(ctx, id, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, app)
}

// AllocateApplication assigns a room to an application
// @Summary Allocate room to application
// @Description Assigns the given room, or auto-selects one when no room is specified
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ReviewApplicationRequest false "Optional explicit room"
// @Success 200 {object} dto.APIResponse{data=models.AllotmentApplication} "Allocated application"
// @Failure 409 {object} dto.ErrorResponse "No available rooms to auto-allocate"
// @Router /applications/{id}/allocate [post]
func (c *ApplicationController) AllocateApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			respondBindingError(ctx, "Invalid allocation data", err)
			return
		}
	}

	app, err := c.applicationService.AllocateApplication(ctx, id, reviewerID, req.RoomID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, app)
}
