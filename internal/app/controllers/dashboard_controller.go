package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/middleware"
)

// DashboardController serves the admin dashboard counters and settings
type DashboardController struct {
	dashboardService *services.DashboardService
	settingsService  *services.SettingsService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, settingsService *services.SettingsService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		settingsService:  settingsService,
	}
}

// Stats returns aggregated counters for the dashboard
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse} "Statistics"
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.dashboardService.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, stats)
}

// ListSettings lists all administrative settings
// @Summary List settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Setting} "Settings"
// @Router /settings [get]
func (c *DashboardController) ListSettings(ctx *gin.Context) {
	settings, err := c.settingsService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, settings)
}

// GetSetting retrieves a setting by key
// @Summary Get setting
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Success 200 {object} dto.APIResponse{data=models.Setting} "Setting"
// @Failure 404 {object} dto.ErrorResponse "Setting not found"
// @Router /settings/{key} [get]
func (c *DashboardController) GetSetting(ctx *gin.Context) {
	setting, err := c.settingsService.Get(ctx, ctx.Param("key"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, setting)
}

// SetSetting upserts a setting
// @Summary Set setting
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Param request body dto.SetSettingRequest true "Value"
// @Success 200 {object} dto.APIResponse{data=models.Setting} "Stored setting"
// @Router /settings/{key} [put]
func (c *DashboardController) SetSetting(ctx *gin.Context) {
	var req dto.SetSettingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid setting data", err)
		return
	}

	setting, err := c.settingsService.Set(ctx, ctx.Param("key"), req.Value)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, setting)
}
