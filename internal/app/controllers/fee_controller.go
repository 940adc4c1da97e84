package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/middleware"
)

// FeeController handles fee operations
type FeeController struct {
	feeService *services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService *services.FeeService) *FeeController {
	return &FeeController{feeService: feeService}
}

// CreateFee raises a charge against a student
// @Summary Create fee
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeeRequest true "Fee details"
// @Success 201 {object} dto.APIResponse{data=models.Fee} "Fee created"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /fees [post]
func (c *FeeController) CreateFee(ctx *gin.Context) {
	var req dto.CreateFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid fee data", err)
		return
	}

	fee, err := c.feeService.CreateFee(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, fee)
}

// CreateHostelFees raises the same charge against every occupant of a hostel
// @Summary Create fees for all hostel occupants
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Param request body dto.CreateHostelFeesRequest true "Fee details"
// @Success 201 {object} dto.APIResponse{data=dto.CountResponse} "Fees created"
// @Failure 404 {object} dto.ErrorResponse "Hostel not found"
// @Router /hostels/{id}/fees [post]
func (c *FeeController) CreateHostelFees(ctx *gin.Context) {
	hostelID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateHostelFeesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid fee data", err)
		return
	}

	count, err := c.feeService.CreateHostelFees(ctx, hostelID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, dto.CountResponse{Count: count})
}

// ListFees lists fees
// @Summary List fees
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(unpaid, paid)
// @Success 200 {object} dto.APIResponse{data=[]models.Fee} "Fees"
// @Router /fees [get]
func (c *FeeController) ListFees(ctx *gin.Context) {
	status := feeStatusFilter(ctx)

	fees, err := c.feeService.ListFees(ctx, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, fees)
}

// ListMyFees lists the caller's fees
// @Summary List own fees
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Fee} "Fees"
// @Router /fees/me [get]
func (c *FeeController) ListMyFees(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	fees, err := c.feeService.ListMyFees(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, fees)
}

// ListStudentFees lists a student's fees
// @Summary List fees for a student
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Fee} "Fees"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/fees [get]
func (c *FeeController) ListStudentFees(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fees, err := c.feeService.ListStudentFees(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, fees)
}

// RecordPayment marks a fee as paid
// @Summary Record payment
// @Description Records a received payment against an unpaid fee
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Param request body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.APIResponse{data=models.Fee} "Paid fee"
// @Failure 409 {object} dto.ErrorResponse "Fee already paid"
// @Router /fees/{id}/payment [post]
func (c *FeeController) RecordPayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid payment data", err)
		return
	}

	fee, err := c.feeService.RecordPayment(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, fee)
}

// Summary aggregates fee totals
// @Summary Fee summary
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FeeSummaryResponse} "Totals"
// @Router /fees/summary [get]
func (c *FeeController) Summary(ctx *gin.Context) {
	summary, err := c.feeService.Summary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, summary)
}

// ExportCSV downloads fees as CSV
// @Summary Export fees as CSV
// @Tags fees
// @Produce text/csv
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(unpaid, paid)
// @Success 200 {string} string "CSV payload"
// @Router /fees/export [get]
func (c *FeeController) ExportCSV(ctx *gin.Context) {
	status := feeStatusFilter(ctx)

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="fees.csv"`)

	if err := c.feeService.ExportCSV(ctx, ctx.Writer, status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
}

func feeStatusFilter(ctx *gin.Context) *models.FeeStatus {
	if raw := ctx.Query("status"); raw != "" {
		s := models.FeeStatus(raw)
		return &s
	}
	return nil
}
