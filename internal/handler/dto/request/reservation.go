package request

import (
	"strings"
	"time"

	"room-reserve/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID              uuid.UUID `json:"room_id" binding:"required"`
	StartTime           time.Time `json:"start_time" binding:"required"`
	EndTime             time.Time `json:"end_time" binding:"required"`
	Attendees           int       `json:"attendees" binding:"required"`
	Purpose             string    `json:"purpose" binding:"required"`
	SpecialRequirements string    `json:"special_requirements"`
}

func (r CreateReservationRequest) ToCommand() commands.CreateReservationCommand {
	return commands.CreateReservationCommand{
		RoomID:              r.RoomID,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		Attendees:           r.Attendees,
		Purpose:             strings.TrimSpace(r.Purpose),
		SpecialRequirements: strings.TrimSpace(r.SpecialRequirements),
	}
}

type OverrideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
