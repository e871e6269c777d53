package api

import (
	"errors"
	"net/http"
	"strconv"

	"room-reserve/internal/domain/reservation"
	reqdto "room-reserve/internal/handler/dto/request"
	resdto "room-reserve/internal/handler/dto/response"
	"room-reserve/internal/handler/middleware"
	"room-reserve/internal/infra"
	"room-reserve/internal/usecase/commands"
	"room-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Create a new reservation for a room
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.reservationCommands.CreateReservation(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Get reservation by ID; users see only their own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Get user reservations
// @Description Get reservations for the current user
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	limit, offset := paginationParams(c)

	items, err := h.reservationQueries.ListByUser(c.Request.Context(), userID, limit, offset)
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

// @Summary Cancel reservation
// @Description Cancel a reservation as its owner or as an admin
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.reservationCommands.CancelReservation(c.Request.Context(), id, actor)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Override reservation status
// @Description Set an arbitrary status on a reservation (admin only)
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.OverrideStatusRequest true "Target status"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/status [patch]
func (h *ReservationHandler) OverrideStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.OverrideStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	target, err := reservation.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":  "INVALID_TARGET_STATUS",
			"error": "Unknown reservation status",
		})
		return
	}

	view, err := h.reservationCommands.OverrideStatus(c.Request.Context(), id, target, actor)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func paginationParams(c *gin.Context) (limit, offset int32) {
	limit = 50
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 32); err == nil && v > 0 && v <= 200 {
		limit = int32(v)
	}
	if v, err := strconv.ParseInt(c.Query("offset"), 10, 32); err == nil && v >= 0 {
		offset = int32(v)
	}
	return limit, offset
}

// Every rejection carries a stable code distinguishable from the others, so
// clients can react to CAPACITY_EXCEEDED and SLOT_CONFLICT differently.
func writeReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "ROOM_NOT_FOUND", "error": "Room not found"})
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "RESERVATION_NOT_FOUND", "error": "Reservation not found"})
	case errors.Is(err, commands.ErrSlotConflict), errors.Is(err, reservation.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"code": "SLOT_CONFLICT", "error": "Time slot overlaps an existing reservation"})
	case errors.Is(err, reservation.ErrRoomUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "ROOM_UNAVAILABLE", "error": "Room is not available for booking"})
	case errors.Is(err, reservation.ErrCapacityExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "CAPACITY_EXCEEDED", "error": "Attendees exceed room capacity"})
	case errors.Is(err, reservation.ErrInvalidAttendees):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "INVALID_ATTENDEES", "error": "Attendee count must be at least 1"})
	case errors.Is(err, reservation.ErrInvalidStart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "INVALID_START", "error": "Start time must be in the future"})
	case errors.Is(err, reservation.ErrInvalidInterval):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "INVALID_INTERVAL", "error": "End time must be after start time"})
	case errors.Is(err, reservation.ErrDurationTooShort):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "DURATION_TOO_SHORT", "error": "Reservation is shorter than the minimum duration"})
	case errors.Is(err, reservation.ErrDurationTooLong):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "DURATION_TOO_LONG", "error": "Reservation is longer than the maximum duration"})
	case errors.Is(err, reservation.ErrEmptyPurpose):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "EMPTY_PURPOSE", "error": "Purpose must not be empty"})
	case errors.Is(err, reservation.ErrPurposeTooLong):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "PURPOSE_TOO_LONG", "error": "Purpose is too long"})
	case errors.Is(err, reservation.ErrNoteTooLong):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "NOTE_TOO_LONG", "error": "Special requirements are too long"})
	case errors.Is(err, reservation.ErrInvalidTargetStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "INVALID_TARGET_STATUS", "error": "Unknown reservation status"})
	case errors.Is(err, reservation.ErrTerminalState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "TERMINAL_STATE", "error": "Reservation is already cancelled or completed"})
	case errors.Is(err, reservation.ErrCancelWindowClosed):
		c.JSON(http.StatusForbidden, gin.H{"code": "CANCEL_WINDOW_CLOSED", "error": "Cancellation window has closed"})
	case errors.Is(err, reservation.ErrNotCancellable):
		c.JSON(http.StatusForbidden, gin.H{"code": "NOT_CANCELLABLE", "error": "Only confirmed reservations can be cancelled"})
	case errors.Is(err, reservation.ErrNotOwner), errors.Is(err, reservation.ErrStatusChangeDenied), errors.Is(err, queries.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"code": "ACCESS_DENIED", "error": "Not allowed to act on this reservation"})
	case infra.IsKind(err, infra.KindNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "RESERVATION_NOT_FOUND", "error": "Reservation not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
