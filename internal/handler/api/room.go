package api

import (
	"errors"
	"net/http"
	"time"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/domain/room"
	reqdto "room-reserve/internal/handler/dto/request"
	resdto "room-reserve/internal/handler/dto/response"
	"room-reserve/internal/infra"
	"room-reserve/internal/usecase/commands"
	"room-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomCommands       commands.RoomCommands
	roomQueries        queries.RoomQueries
	reservationQueries queries.ReservationQueries
}

func NewRoomHandler(
	roomCommands commands.RoomCommands,
	roomQueries queries.RoomQueries,
	reservationQueries queries.ReservationQueries,
) *RoomHandler {
	return &RoomHandler{
		roomCommands:       roomCommands,
		roomQueries:        roomQueries,
		reservationQueries: reservationQueries,
	}
}

// @Summary List rooms
// @Description List all rooms in the catalog
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RoomResponse
// @Failure 401 {object} map[string]string
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	views, err := h.roomQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RoomResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromRoomView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get room
// @Description Get room by ID
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	view, err := h.roomQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "ROOM_NOT_FOUND", "error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary Create room
// @Description Register a new room (admin only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room request"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.roomCommands.CreateRoom(c.Request.Context(), req.ToCommand())
	if err != nil {
		writeRoomError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRoomView(view))
}

// @Summary Update room
// @Description Change room capacity or active flag (admin only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.UpdateRoomRequest true "Room update"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rooms/{id} [patch]
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.UpdateRoomRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.roomCommands.UpdateRoom(c.Request.Context(), id, req.ToCommand())
	if err != nil {
		writeRoomError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary Check availability
// @Description Report whether a half-open interval is free on the room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param start query string true "Interval start (RFC3339)"
// @Param end query string true "Interval end (RFC3339)"
// @Param exclude query string false "Reservation ID to exclude"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) GetAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start time format",
		})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end time format",
		})
		return
	}

	var excludeID *uuid.UUID
	if raw := c.Query("exclude"); raw != "" {
		id, perr := uuid.Parse(raw)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid exclude ID format",
			})
			return
		}
		excludeID = &id
	}

	if _, err := h.roomQueries.GetByID(c.Request.Context(), roomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "ROOM_NOT_FOUND", "error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	available, err := h.reservationQueries.CheckAvailability(c.Request.Context(), roomID, start, end, excludeID)
	if err != nil {
		if errors.Is(err, reservation.ErrInvalidInterval) {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":  "INVALID_INTERVAL",
				"error": "End time must be after start time",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
		Available: available,
	})
}

// @Summary Get room reservations
// @Description List reservations on a room (admin only)
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /rooms/{id}/reservations [get]
func (h *RoomHandler) GetRoomReservations(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	limit, offset := paginationParams(c)

	items, err := h.reservationQueries.ListByRoom(c.Request.Context(), roomID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ReservationListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromReservationListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

func writeRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "ROOM_NOT_FOUND", "error": "Room not found"})
	case errors.Is(err, commands.ErrDuplicateRoomName):
		c.JSON(http.StatusConflict, gin.H{"code": "DUPLICATE_ROOM_NAME", "error": "Room name already exists"})
	case errors.Is(err, room.ErrEmptyRoomName):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "EMPTY_ROOM_NAME", "error": "Room name must not be empty"})
	case errors.Is(err, room.ErrRoomNameTooLong):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "ROOM_NAME_TOO_LONG", "error": "Room name is too long"})
	case errors.Is(err, room.ErrInvalidCapacity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "INVALID_CAPACITY", "error": "Capacity must be at least 1"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
