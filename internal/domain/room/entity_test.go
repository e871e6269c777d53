//go:build unit

package room_test

import (
	"strings"
	"testing"
	"time"

	"room-reserve/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := room.NewRoom("Conference Room A", 10)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Conference Room A", actual.Name())
		assert.Equal(t, 10, actual.Capacity())
		assert.True(t, actual.IsActive())
	})

	t.Run("name validation", func(t *testing.T) {
		cases := []struct {
			name     string
			roomName string
			errIs    error
		}{
			{name: "empty name", roomName: "", errIs: room.ErrEmptyRoomName},
			{name: "whitespace only name", roomName: "   ", errIs: room.ErrEmptyRoomName},
			{name: "maximum length name", roomName: strings.Repeat("a", room.MaxRoomNameLength)},
			{name: "name exceeds maximum length", roomName: strings.Repeat("a", room.MaxRoomNameLength+1), errIs: room.ErrRoomNameTooLong},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				actual, err := room.NewRoom(tc.roomName, 5)
				if tc.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, actual)
				} else {
					require.Nil(t, actual)
					require.ErrorIs(t, err, tc.errIs)
				}
			})
		}
	})

	t.Run("capacity validation", func(t *testing.T) {
		_, err := room.NewRoom("Room", 0)
		require.ErrorIs(t, err, room.ErrInvalidCapacity)

		_, err = room.NewRoom("Room", -1)
		require.ErrorIs(t, err, room.ErrInvalidCapacity)

		actual, err := room.NewRoom("Room", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, actual.Capacity())
	})
}

func TestCanHost(t *testing.T) {
	r := room.ReconstructRoom(uuid.New(), "Room", 10, true, time.Time{}, time.Time{})

	assert.True(t, r.CanHost(1))
	assert.True(t, r.CanHost(10))
	assert.False(t, r.CanHost(11))
}
