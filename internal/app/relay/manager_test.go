package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManagerresolvesSameNameToSameRoom(t *testing.T) {
	m := NewManager(0)
	defer m.Shutdown()

	first := m.GetOrCreateRoom("alpha")
	second := m.GetOrCreateRoom("alpha")
	require.Same(t, first, second)

	other := m.GetOrCreateRoom("beta")
	require.NotSame(t, first, other)
	require.Equal(t, 2, m.RoomCount())
}

func TestManagerGetRoomWithoutCreate(t *testing.T) {
	m := NewManager(0)
	defer m.Shutdown()

	require.Nil(t, m.GetRoom("missing"))

	created := m.GetOrCreateRoom("present")
	require.Same(t, created, m.GetRoom("present"))
}

func TestManagerAppliesRoomCapacity(t *testing.T) {
	m := NewManager(3)
	defer m.Shutdown()

	room := m.GetOrCreateRoom("capped")
	require.Equal(t, 3, room.MaxClients)
}

func TestManagerRemovesStoppedRoom(t *testing.T) {
	m := NewManager(0)
	defer m.Shutdown()

	room := m.GetOrCreateRoom("transient")
	require.Equal(t, 1, m.RoomCount())

	room.Stop()

	require.Eventually(t, func() bool {
		return m.RoomCount() == 0
	}, 2*time.Second, 10*time.Millisecond)

	// The name is free for a fresh coordinator afterwards.
	recreated := m.GetOrCreateRoom("transient")
	require.NotSame(t, room, recreated)
}

func TestManagerShutdownStopsRooms(t *testing.T) {
	m := NewManager(0)

	m.GetOrCreateRoom("a")
	m.GetOrCreateRoom("b")

	m.Shutdown()
	require.Equal(t, 0, m.RoomCount())
}
