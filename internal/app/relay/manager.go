/*
Package relay contains the real-time message relay: rooms, their connected
clients, and the manager that owns the room registry.

This file defines the Manager, the process-wide resolver from room name to
the single Room instance responsible for that name. Rooms are created lazily
on first reference and removed when their loop reports completion.
*/
package relay

import (
	"sync"

	"github.com/rs/zerolog"

	"wsrelay/internal/pkg/logx"
)

// cleanupQueueSize buffers room-finished notifications to the manager.
const cleanupQueueSize = 16

// Manager coordinates all active rooms.
type Manager struct {
	// rooms maps room name to its one live coordinator.
	rooms map[string]*Room

	// roomMaxClients is applied to every room created; 0 means unlimited.
	roomMaxClients int

	mu sync.RWMutex

	// cleanup receives notifications from finished room loops.
	cleanup chan RoomCleanupMsg

	// wg tracks the cleanup goroutine for shutdown.
	wg sync.WaitGroup

	logger zerolog.Logger
}

// NewManager constructs a Manager and starts its cleanup loop.
func NewManager(roomMaxClients int) *Manager {
	m := &Manager{
		rooms:          make(map[string]*Room),
		roomMaxClients: roomMaxClients,
		cleanup:        make(chan RoomCleanupMsg, cleanupQueueSize),
		logger:         logx.Logger().With().Str("component", "Manager").Logger(),
	}

	m.wg.Add(1)
	go m.runCleanupLoop()

	return m
}

// runCleanupLoop removes rooms whose loops have finished.
func (m *Manager) runCleanupLoop() {
	defer m.wg.Done()

	m.logger.Info().Msg("Cleanup loop started.")

	for msg := range m.cleanup {
		m.deleteRoom(msg)
	}

	m.logger.Info().Msg("Cleanup loop stopped.")
}

// deleteRoom drops the named room, but only if it is still the same instance
// that reported completion; a name recreated in the meantime is left alone.
func (m *Manager) deleteRoom(msg RoomCleanupMsg) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.rooms[msg.Name]; ok && current == msg.Room {
		delete(m.rooms, msg.Name)
		m.logger.Info().Str("room", msg.Name).Msg("Room removed.")
	}
}

// GetOrCreateRoom resolves name to its coordinator, creating and starting
// one on first reference. Two callers racing on the same name always end up
// with the same instance.
func (m *Manager) GetOrCreateRoom(name string) *Room {
	m.mu.RLock()
	room, ok := m.rooms[name]
	m.mu.RUnlock()

	if ok {
		return room
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rooms == nil {
		// Shutdown already ran; hand back a stopped room so callers fail
		// cleanly instead of blocking on a loop that will never start.
		room := NewRoom(name, m.roomMaxClients, m.cleanup)
		room.Stop()
		return room
	}

	if room, ok = m.rooms[name]; ok {
		return room
	}

	room = NewRoom(name, m.roomMaxClients, m.cleanup)
	m.rooms[name] = room

	go room.Run()

	m.logger.Info().Str("room", name).Int("max_clients", m.roomMaxClients).Msg("Room created and started.")
	return room
}

// GetRoom returns the coordinator for name, or nil when none exists.
func (m *Manager) GetRoom(name string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[name]
}

// RoomCount returns the number of live rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Shutdown stops every room loop and waits for the cleanup goroutine.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down Manager...")

	m.mu.Lock()
	for _, room := range m.rooms {
		room.Stop()
	}
	m.rooms = nil
	m.mu.Unlock()

	close(m.cleanup)
	m.wg.Wait()

	m.logger.Info().Msg("Manager shutdown complete.")
}
