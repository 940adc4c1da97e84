package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/middleware"
	"github.com/hostelhub/hostelhub/internal/pkg/helpers"
)

// StudentController handles student record operations
type StudentController struct {
	studentService   *services.StudentService
	allotmentService *services.AllotmentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, allotmentService *services.AllotmentService) *StudentController {
	return &StudentController{
		studentService:   studentService,
		allotmentService: allotmentService,
	}
}

// CreateStudent creates a resident record
// @Summary Create a student record
// @Description Creates a resident record from warden tooling
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Register number already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid student data", err)
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, student)
}

// GetStudent retrieves a student record
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}

// ListStudents retrieves a page of student records
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, pageSize := helpers.ParsePageParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	students, total, err := c.studentService.ListStudents(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:       students,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	})
}

// UpdateStudent applies partial updates to a student record
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Updated student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid student data", err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}

// LinkUser attaches a user account to a student record
// @Summary Link user account
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.LinkUserRequest true "User to link"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Linked"
// @Failure 404 {object} dto.ErrorResponse "Student or user not found"
// @Router /students/{id}/link [post]
func (c *StudentController) LinkUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.LinkUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid link request", err)
		return
	}

	if err := c.studentService.LinkUser(ctx, id, req.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondMessage(ctx, http.StatusOK, "User linked to student record")
}

// DeleteStudent removes a student record
// @Summary Delete student
// @Description Removes a student record; rejected while an active allotment exists
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Deleted"
// @Failure 409 {object} dto.ErrorResponse "Student has an active allotment"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondMessage(ctx, http.StatusOK, "Student deleted")
}

// GetStudentAllotments retrieves a student's allotment history
// @Summary Get student allotment history
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.RoomAllotment} "Allotments"
// @Router /students/{id}/allotments [get]
func (c *StudentController) GetStudentAllotments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.studentService.GetStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	allotments, err := c.allotmentService.ListAllotmentsForStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, allotments)
}

// GetMyRecord returns the student record linked to the caller's account
// @Summary Get own student record
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student record"
// @Failure 404 {object} dto.ErrorResponse "No student record linked"
// @Router /students/me [get]
func (c *StudentController) GetMyRecord(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}
