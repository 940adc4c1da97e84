package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/middleware"
)

// RoomController handles room operations
type RoomController struct {
	roomService      *services.RoomService
	allotmentService *services.AllotmentService
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService *services.RoomService, allotmentService *services.AllotmentService) *RoomController {
	return &RoomController{
		roomService:      roomService,
		allotmentService: allotmentService,
	}
}

// CreateRoom adds a room to a hostel
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Param request body dto.CreateRoomRequest true "Room details"
// @Success 201 {object} dto.APIResponse{data=models.Room} "Room created"
// @Failure 404 {object} dto.ErrorResponse "Hostel not found"
// @Failure 409 {object} dto.ErrorResponse "Room number already exists"
// @Router /hostels/{id}/rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	hostelID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid room data", err)
		return
	}

	room := &models.Room{
		HostelID: hostelID,
		RoomNo:   req.RoomNo,
		Capacity: req.Capacity,
	}

	if err := c.roomService.CreateRoom(ctx, room); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, room)
}

// ListRoomsByHostel retrieves a hostel's rooms with occupancy
// @Summary List rooms in a hostel
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Room} "Rooms"
// @Failure 404 {object} dto.ErrorResponse "Hostel not found"
// @Router /hostels/{id}/rooms [get]
func (c *RoomController) ListRoomsByHostel(ctx *gin.Context) {
	hostelID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	rooms, err := c.roomService.ListRoomsByHostel(ctx, hostelID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, rooms)
}

// ListAvailableRooms retrieves rooms with spare capacity
// @Summary List available rooms
// @Description Rooms with spare capacity that are not under maintenance
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param type query string false "Restrict to hostels of this type (Mens or Womens)"
// @Success 200 {object} dto.APIResponse{data=[]models.Room} "Available rooms"
// @Router /rooms/available [get]
func (c *RoomController) ListAvailableRooms(ctx *gin.Context) {
	var hostelType *string
	if t := ctx.Query("type"); t != "" {
		hostelType = &t
	}

	rooms, err := c.roomService.ListAvailableRooms(ctx, hostelType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, rooms)
}

// GetRoom retrieves a room with its occupants
// @Summary Get room by ID
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Room"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	room, err := c.roomService.GetRoom(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, room)
}

// UpdateRoom updates a room's number or capacity
// @Summary Update room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Updated room"
// @Failure 409 {object} dto.ErrorResponse "Capacity below current occupancy"
// @Router /rooms/{id} [put]
func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid room data", err)
		return
	}

	room, err := c.roomService.GetRoom(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if req.RoomNo != nil {
		room.RoomNo = *req.RoomNo
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}

	if err := c.roomService.UpdateRoom(ctx, room); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, room)
}

// SetRoomStatus toggles the maintenance flag on a room
// @Summary Set room status
// @Description Puts a room under maintenance or returns it to occupancy-derived status
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Updated room"
// @Failure 409 {object} dto.ErrorResponse "Room has active occupants"
// @Router /rooms/{id}/status [put]
func (c *RoomController) SetRoomStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid status data", err)
		return
	}

	underMaintenance := models.RoomStatus(req.Status) == models.RoomStatusUnderMaintenance
	room, err := c.roomService.SetMaintenanceStatus(ctx, id, underMaintenance)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, room)
}

// GetRoomOccupants retrieves the active allotments for a room
// @Summary List room occupants
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=[]models.RoomAllotment} "Active allotments"
// @Router /rooms/{id}/occupants [get]
func (c *RoomController) GetRoomOccupants(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.roomService.GetRoom(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	occupants, err := c.allotmentService.ListActiveOccupants(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, occupants)
}

// VacateRoom force-clears every active allotment in a room
// @Summary Vacate room
// @Description Soft-terminates every active allotment in the room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse} "Vacated count"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id}/vacate [post]
func (c *RoomController) VacateRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	count, err := c.roomService.VacateRoom(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.CountResponse{Count: count})
}

// DeleteRoom removes a room and its dependent rows
// @Summary Delete room
// @Description Rejected while the room has active allotments
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Deleted"
// @Failure 409 {object} dto.ErrorResponse "Room has active allotments"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.roomService.DeleteRoom(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondMessage(ctx, http.StatusOK, "Room deleted")
}
