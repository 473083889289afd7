package randx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuestID(t *testing.T) {
	id, err := GuestID()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, GuestIDPrefix))
	require.Len(t, id, len(GuestIDPrefix)+GuestIDRawLength)

	other, err := GuestID()
	require.NoError(t, err)
	require.NotEqual(t, id, other)
}

func TestNickname(t *testing.T) {
	name, err := Nickname()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "User_"))
}

func TestMessageIDUnique(t *testing.T) {
	require.NotEqual(t, MessageID(), MessageID())
}

func TestIsValidRoomName(t *testing.T) {
	valid := []string{"lobby", "room42", "a", "my-room", "my_room", "ABCxyz09"}
	for _, name := range valid {
		require.True(t, IsValidRoomName(name), "%q should be valid", name)
	}

	invalid := []string{"", "has space", "emoji😀", "slash/room", strings.Repeat("x", MaxRoomNameLength+1), "dot.room"}
	for _, name := range invalid {
		require.False(t, IsValidRoomName(name), "%q should be invalid", name)
	}
}
