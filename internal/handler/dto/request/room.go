package request

import (
	"strings"

	"room-reserve/internal/usecase/commands"
)

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
}

func (r CreateRoomRequest) ToCommand() commands.CreateRoomCommand {
	return commands.CreateRoomCommand{
		Name:     strings.TrimSpace(r.Name),
		Capacity: r.Capacity,
	}
}

type UpdateRoomRequest struct {
	Capacity *int  `json:"capacity,omitempty"`
	IsActive *bool `json:"is_active,omitempty"`
}

func (r UpdateRoomRequest) ToCommand() commands.UpdateRoomCommand {
	return commands.UpdateRoomCommand{
		Capacity: r.Capacity,
		IsActive: r.IsActive,
	}
}
