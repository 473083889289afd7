/*
Package relay contains the real-time message relay: rooms, their connected
clients, and the manager that owns the room registry.

This file defines the Room struct, the coordinator for one named room. The
Run loop is the sole writer to the client registry: register, unregister and
broadcast events all pass through it one at a time, so a room never needs
finer-grained locking than the read lock taken by external snapshots.
*/
package relay

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wsrelay/internal/pkg/logx"
)

const (
	// broadcastQueueSize buffers messages headed into the room loop.
	broadcastQueueSize = 1024

	// RoomInactivityTimeout is how long an empty room lives before its loop
	// shuts down and the manager removes it.
	RoomInactivityTimeout = 5 * time.Minute
)

// RoomCleanupMsg asks the manager to drop a finished room. The room pointer
// lets the manager ignore the request when the name was already reused by a
// fresh instance.
type RoomCleanupMsg struct {
	Name string
	Room *Room
}

// Room coordinates all connections sharing one room name.
type Room struct {
	// Name is the room identity resolved from the request path.
	Name string

	// MaxClients caps concurrent members; 0 means unlimited.
	MaxClients int

	// clients is the live-connection registry, keyed by participant ID.
	// Only the Run loop mutates it.
	clients map[string]*Client

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client

	// cleanupChan notifies the manager when the loop finishes.
	cleanupChan chan<- RoomCleanupMsg

	stopChan chan struct{}
	stopOnce sync.Once

	// shutdownTimer fires when the room has been empty too long.
	shutdownTimer *time.Timer

	// mu guards read access to clients from outside the Run loop.
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewRoom creates a room. The caller is expected to start Run on its own
// goroutine; until then no events are consumed.
func NewRoom(name string, maxClients int, cleanupChan chan<- RoomCleanupMsg) *Room {
	roomLogger := logx.Logger().With().
		Str("room", name).
		Logger()

	return &Room{
		Name:          name,
		MaxClients:    maxClients,
		clients:       make(map[string]*Client),
		broadcast:     make(chan Message, broadcastQueueSize),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		cleanupChan:   cleanupChan,
		stopChan:      make(chan struct{}),
		shutdownTimer: time.NewTimer(RoomInactivityTimeout),
		logger:        roomLogger,
	}
}

// Stop terminates the Run loop immediately.
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
}

// RegisterClient queues a client for registration without blocking.
func (r *Room) RegisterClient(client *Client) {
	select {
	case r.register <- client:
	case <-r.stopChan:
		r.logger.Warn().Msg("Register on a stopped room, closing client.")
		client.closeSend()
	}
}

// Broadcast queues a message for delivery to the room. A full broadcast
// queue drops the message rather than blocking the caller's read pump.
func (r *Room) Broadcast(msg Message) {
	select {
	case r.broadcast <- msg:
	default:
		r.logger.Warn().Str("msg_type", string(msg.Type)).Msg("Broadcast queue full, dropping message.")
	}
}

// MemberCount returns the number of live connections.
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Members returns a snapshot of the connected participants.
func (r *Room) Members() []Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]Participant, 0, len(r.clients))
	for _, client := range r.clients {
		members = append(members, client.participant)
	}
	return members
}

// IsFull reports whether the room is at capacity.
func (r *Room) IsFull() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.MaxClients > 0 && len(r.clients) >= r.MaxClients
}

// Run is the room's event loop. It processes one event at a time and exits
// on the inactivity timer or an explicit Stop, notifying the manager either
// way.
func (r *Room) Run() {
	defer r.finish()

	for {
		select {
		case client := <-r.register:
			r.handleRegister(client)

		case client := <-r.unregister:
			r.handleUnregister(client)

		case message := <-r.broadcast:
			r.deliver(message)

		case <-r.shutdownTimer.C:
			r.logger.Info().Dur("timeout", RoomInactivityTimeout).Msg("Room inactivity timeout reached, shutting down.")
			return

		case <-r.stopChan:
			r.logger.Info().Msg("Room stop requested.")
			return
		}
	}
}

// finish notifies the manager and releases every remaining client.
func (r *Room) finish() {
	r.logger.Info().Msg("Room loop finished, notifying manager for cleanup.")

	r.shutdownTimer.Stop()

	// During manager shutdown the cleanup channel may already be closed;
	// the notification is best-effort either way.
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Warn().Msg("Manager cleanup channel closed, skipping notification.")
			}
		}()

		select {
		case r.cleanupChan <- RoomCleanupMsg{Name: r.Name, Room: r}:
		default:
			r.logger.Warn().Msg("Manager cleanup channel full, skipping notification.")
		}
	}()

	r.mu.Lock()
	for _, client := range r.clients {
		client.closeSend()
	}
	r.clients = make(map[string]*Client)
	r.mu.Unlock()
}

// handleRegister admits a client, replacing any previous connection holding
// the same identity, and announces the join.
func (r *Room) handleRegister(client *Client) {
	id := client.participant.ID

	r.mu.Lock()

	if existing, ok := r.clients[id]; ok {
		r.logger.Warn().Str("client_id", id).Msg("Identity already connected, replacing old connection.")
		existing.Kick("Session replaced by a newer connection.")
		delete(r.clients, id)
	}

	if r.MaxClients > 0 && len(r.clients) >= r.MaxClients {
		r.mu.Unlock()
		r.logger.Warn().Str("client_id", id).Int("max_clients", r.MaxClients).Msg("Room is full, rejecting client.")
		client.closeSend()
		return
	}

	// A registration cancels any pending inactivity shutdown.
	if r.shutdownTimer.Stop() {
		select {
		case <-r.shutdownTimer.C:
		default:
		}
	}

	r.clients[id] = client
	total := len(r.clients)

	state := RoomStatePayload{
		Room:    r.Name,
		You:     client.participant,
		Members: make([]Participant, 0, total),
	}
	for _, c := range r.clients {
		state.Members = append(state.Members, c.participant)
	}

	r.mu.Unlock()

	r.logger.Info().Str("client_id", id).Int("total_members", total).Msg("Client joined room.")

	if err := client.SendRoomState(state); err != nil {
		r.handleUnregister(client)
		return
	}

	joined := NewMessage(TypeUserJoined, r.Name, SystemParticipant, "")
	joined.Payload = UserEventPayload{User: client.participant}
	r.deliverExcept(joined, id)
}

// handleUnregister removes a client if it still owns its registry slot. A
// stale connection that was already replaced is ignored.
func (r *Room) handleUnregister(client *Client) {
	id := client.participant.ID

	r.mu.Lock()

	current, ok := r.clients[id]
	if !ok || current != client {
		r.mu.Unlock()
		if ok {
			r.logger.Info().Str("stale_client_id", id).Msg("Ignoring unregister for replaced connection.")
		}
		client.closeSend()
		return
	}

	delete(r.clients, id)
	remaining := len(r.clients)

	if remaining == 0 {
		if r.shutdownTimer.Stop() {
			select {
			case <-r.shutdownTimer.C:
			default:
			}
		}
		r.shutdownTimer.Reset(RoomInactivityTimeout)
	}

	r.mu.Unlock()

	client.closeSend()

	r.logger.Info().Str("client_id", id).Int("total_members", remaining).Msg("Client left room.")

	left := NewMessage(TypeUserLeft, r.Name, SystemParticipant, "")
	left.Payload = UserEventPayload{User: client.participant}
	r.deliverExcept(left, id)
}

// deliver fans a message out to every member except its sender.
func (r *Room) deliver(message Message) {
	r.deliverExcept(message, message.Sender.ID)
}

// deliverExcept fans a message out to every member except excludeID. A
// member whose outbound queue is full is scheduled for disconnection;
// delivery to the rest of the room is unaffected.
func (r *Room) deliverExcept(message Message, excludeID string) {
	frame, err := json.Marshal(message)
	if err != nil {
		r.logger.Error().Err(err).Str("message_id", message.ID).Msg("Error marshaling message for delivery.")
		return
	}

	var stalled []*Client

	r.mu.RLock()
	for _, client := range r.clients {
		if client.participant.ID == excludeID {
			continue
		}

		if err := client.enqueue(frame); err != nil {
			r.logger.Warn().Str("client_id", client.participant.ID).Msg("Member queue overflow, disconnecting.")
			stalled = append(stalled, client)
		}
	}
	r.mu.RUnlock()

	for _, client := range stalled {
		r.handleUnregister(client)
	}
}
