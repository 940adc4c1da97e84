package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/middleware"
)

// AllotmentController handles room allotment operations
type AllotmentController struct {
	allotmentService *services.AllotmentService
	studentService   *services.StudentService
}

// NewAllotmentController creates a new AllotmentController
func NewAllotmentController(allotmentService *services.AllotmentService, studentService *services.StudentService) *AllotmentController {
	return &AllotmentController{
		allotmentService: allotmentService,
		studentService:   studentService,
	}
}

// CreateAllotment manually assigns a student to a room
// @Summary Create allotment
// @Description Assigns a student to a room; rejected if the student already has an active allotment or the room is full
// @Tags allotments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAllotmentRequest true "Student and room"
// @Success 201 {object} dto.APIResponse{data=models.RoomAllotment} "Allotment created"
// @Failure 404 {object} dto.ErrorResponse "Student or room not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate active allotment or room full"
// @Router /allotments [post]
func (c *AllotmentController) CreateAllotment(ctx *gin.Context) {
	var req dto.CreateAllotmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid allotment data", err)
		return
	}

	allotment, err := c.allotmentService.CreateAllotment(ctx, req.StudentID, req.RoomID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, allotment)
}

// GetAllotment retrieves an allotment by ID
// @Summary Get allotment by ID
// @Tags allotments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allotment ID"
// @Success 200 {object} dto.APIResponse{data=models.RoomAllotment} "Allotment"
// @Failure 404 {object} dto.ErrorResponse "Allotment not found"
// @Router /allotments/{id} [get]
func (c *AllotmentController) GetAllotment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	allotment, err := c.allotmentService.GetAllotment(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, allotment)
}

// VacateAllotment soft-terminates an active allotment
// @Summary Vacate allotment
// @Tags allotments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allotment ID"
// @Success 200 {object} dto.APIResponse{data=models.RoomAllotment} "Vacated allotment"
// @Failure 404 {object} dto.ErrorResponse "No active allotment found"
// @Router /allotments/{id}/vacate [post]
func (c *AllotmentController) VacateAllotment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	allotment, err := c.allotmentService.VacateAllotment(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, allotment)
}

// GetMyAllotment returns the caller's active allotment
// @Summary Get own active allotment
// @Tags allotments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.RoomAllotment} "Active allotment"
// @Failure 404 {object} dto.ErrorResponse "No active allotment or student record"
// @Router /allotments/me [get]
func (c *AllotmentController) GetMyAllotment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	allotment, err := c.allotmentService.GetActiveAllotmentForStudent(ctx, student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if allotment == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No active allotment found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	respondData(ctx, http.StatusOK, allotment)
}
