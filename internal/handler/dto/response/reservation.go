package response

import (
	"time"

	"room-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                  uuid.UUID `json:"id"`
	RoomID              uuid.UUID `json:"roomId"`
	RoomName            string    `json:"roomName"`
	UserID              uuid.UUID `json:"userId"`
	UserEmail           string    `json:"userEmail"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	Attendees           int       `json:"attendees"`
	Purpose             string    `json:"purpose"`
	SpecialRequirements string    `json:"specialRequirements"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	RoomName  string    `json:"roomName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type AvailabilityResponse struct {
	RoomID    uuid.UUID `json:"roomId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:                  rm.ID,
		RoomID:              rm.RoomID,
		RoomName:            rm.RoomName,
		UserID:              rm.UserID,
		UserEmail:           rm.UserEmail,
		StartTime:           rm.StartTime,
		EndTime:             rm.EndTime,
		Attendees:           rm.Attendees,
		Purpose:             rm.Purpose,
		SpecialRequirements: rm.SpecialRequirements,
		Status:              rm.Status,
		CreatedAt:           rm.CreatedAt,
		UpdatedAt:           rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:        rm.ID,
		RoomID:    rm.RoomID,
		RoomName:  rm.RoomName,
		StartTime: rm.StartTime,
		EndTime:   rm.EndTime,
		Status:    rm.Status,
		CreatedAt: rm.CreatedAt,
	}
}
