/*
Package relay contains the real-time message relay: rooms, their connected
clients, and the manager that owns the room registry.

This file defines the Client struct wrapping one accepted websocket
connection, with its read and write pumps and its bounded outbound queue.
*/
package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"wsrelay/internal/pkg/errs"
	"wsrelay/internal/pkg/logx"
)

const (
	// writeWait bounds a single write to the websocket.
	writeWait = 10 * time.Second

	// pongWait is the read deadline; a client that sends nothing (not even a
	// pong) for this long is considered dead and reaped.
	pongWait = 60 * time.Second

	// pingPeriod is how often the server pings. Must be below pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps a single inbound frame in bytes.
	maxMessageSize = 8192

	// MaxBodyBytes caps the body of a relayed text message.
	MaxBodyBytes = 4096

	// sendQueueSize is the per-connection outbound queue capacity. A client
	// whose queue fills up is disconnected rather than allowed to stall the
	// room loop.
	sendQueueSize = 256

	// WsCloseCodeSessionKicked is the close code (4000-4999 application
	// range) sent when a newer connection replaces this one.
	WsCloseCodeSessionKicked = 4001
)

// Client is one accepted duplex connection attached to a room.
type Client struct {
	room *Room

	conn *websocket.Conn

	participant Participant

	// send is the bounded outbound queue drained by WritePump.
	send chan []byte

	// sendMu serializes closing the queue against concurrent enqueues from
	// the read pump and the room loop.
	sendMu     sync.RWMutex
	sendClosed bool

	logger zerolog.Logger
}

// NewClient wraps an upgraded connection for the given room and identity.
func NewClient(room *Room, conn *websocket.Conn, participant Participant) *Client {
	clientLogger := logx.Logger().With().
		Str("client_id", participant.ID).
		Str("room", room.Name).
		Logger()

	return &Client{
		room:        room,
		conn:        conn,
		participant: participant,
		send:        make(chan []byte, sendQueueSize),
		logger:      clientLogger,
	}
}

// Participant returns the identity attached to this connection.
func (c *Client) Participant() Participant {
	return c.participant
}

// closeSend closes the outbound queue exactly once.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}

// ReadPump reads frames from the connection until it closes or errors, then
// deregisters the client. It maintains the pong-based liveness deadline.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Read failed, closing connection")
			}
			break
		}

		c.processInbound(frame)
	}
}

// cleanupOnDisconnect hands the client back to the room and closes the
// transport. Transport errors never propagate past this point.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	select {
	case c.room.unregister <- c:
	default:
		c.logger.Warn().Msg("Room unregister channel blocked, proceeding with close.")
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection close returned an error")
	}
}

// processInbound dispatches one client frame. A frame that is not a valid
// inbound envelope is treated as raw text and echoed back to the sender,
// which is the minimal relay contract.
func (c *Client) processInbound(frame []byte) {
	var inbound struct {
		Type MessageType `json:"type"`
		Body string      `json:"body"`
	}

	if err := json.Unmarshal(frame, &inbound); err != nil || inbound.Type == "" {
		c.echo(string(frame))
		return
	}

	switch inbound.Type {
	case TypeEcho:
		c.echo(inbound.Body)

	case TypeText:
		if len(inbound.Body) > MaxBodyBytes {
			c.SendError(errs.NewError(errs.ErrMessageTooLong))
			return
		}
		c.room.Broadcast(NewMessage(TypeText, c.room.Name, c.participant, inbound.Body))

	default:
		c.logger.Warn().Str("msg_type", string(inbound.Type)).Msg("Client sent unsupported message type")
	}
}

// echo replies to this client alone with the transformed body. The reply
// never passes through the room loop, so per-sender order is preserved by
// the serial read pump.
func (c *Client) echo(body string) {
	msg := NewMessage(TypeEcho, c.room.Name, c.participant, "echo: "+body)
	if err := c.sendMessage(msg); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to queue echo reply")
	}
}

// WritePump drains the send queue onto the connection and keeps the
// heartbeat alive. It owns all writes to the socket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close returned an error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueued(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueued writes one queued frame. A closed queue sends the close frame
// and ends the pump.
func (c *Client) writeQueued(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePing sends the periodic heartbeat ping.
func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Info().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// sendMessage marshals msg and enqueues it without ever blocking. A full
// queue is an error surfaced to the caller; the room loop reacts by
// disconnecting the slow client.
func (c *Client) sendMessage(msg Message) error {
	frame, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error marshaling message for client")
		return err
	}

	return c.enqueue(frame)
}

// enqueue pushes an already-marshaled frame onto the send queue. The read
// lock held across the send keeps closeSend from closing the channel under
// an in-flight enqueue.
func (c *Client) enqueue(frame []byte) error {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()

	if c.sendClosed {
		return fmt.Errorf("client send queue closed")
	}

	select {
	case c.send <- frame:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full, dropping frame")
		return fmt.Errorf("client send queue full")
	}
}

// SendError queues a TypeError message describing err.
func (c *Client) SendError(err error) {
	code := errs.ErrUnknown
	text := "Internal server error."

	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		text = customErr.Message
	}

	msg := NewMessage(TypeError, c.room.Name, SystemParticipant, "")
	msg.Payload = ErrorPayload{Code: code, Message: text}

	if sendErr := c.sendMessage(msg); sendErr != nil {
		c.logger.Warn().Err(sendErr).Msg("Failed to queue error message")
	}
}

// SendRoomState queues the initial TypeRoomState message for this client.
func (c *Client) SendRoomState(payload RoomStatePayload) error {
	msg := NewMessage(TypeRoomState, c.room.Name, SystemParticipant, "")
	msg.Payload = payload

	return c.sendMessage(msg)
}

// Kick closes the connection with the session-replaced close code and shuts
// the outbound queue. Used when a newer connection claims the same identity.
func (c *Client) Kick(reason string) {
	c.logger.Warn().
		Int("close_code", WsCloseCodeSessionKicked).
		Str("reason", reason).
		Msg("Kicking client connection.")

	closeFrame := websocket.FormatCloseMessage(WsCloseCodeSessionKicked, reason)

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.CloseMessage, closeFrame); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to write kick close frame.")
	}

	c.closeSend()
}
