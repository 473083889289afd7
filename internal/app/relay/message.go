/*
Package relay contains the real-time message relay: rooms, their connected
clients, and the manager that owns the room registry.

This file defines the JSON wire envelope exchanged over the websocket. Every
server-to-client frame is a Message; client-to-server frames are either an
inbound envelope ({"type":..,"body":..}) or raw text, which is treated as a
request for the minimal echo contract.
*/
package relay

import (
	"time"

	"wsrelay/internal/pkg/randx"
)

// MessageType discriminates wire messages.
type MessageType string

const (
	// TypeText is a chat message relayed to every other room member.
	TypeText MessageType = "TEXT"

	// TypeEcho is returned to the sender alone, body prefixed "echo: ".
	TypeEcho MessageType = "ECHO"

	// TypeRoomState is sent to a client right after it joins.
	TypeRoomState MessageType = "ROOM_STATE"

	// TypeUserJoined announces a new member to the rest of the room.
	TypeUserJoined MessageType = "USER_JOINED"

	// TypeUserLeft announces a departed member to the rest of the room.
	TypeUserLeft MessageType = "USER_LEFT"

	// TypeError carries an application error to a single client.
	TypeError MessageType = "ERROR"
)

// Participant identifies the origin of a message.
type Participant struct {
	// ID is the connection's identity: the token subject when the client
	// authenticated, otherwise a generated guest ID.
	ID string `json:"id"`

	// Name is the display name shown to other members.
	Name string `json:"name"`

	// Role is the participant role carried over from the token, if any.
	Role string `json:"role,omitempty"`
}

// SystemParticipant is the sender of server-originated messages.
var SystemParticipant = Participant{ID: "system", Name: "System"}

// Message is the envelope for every server-to-client frame.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Room      string      `json:"room"`
	Sender    Participant `json:"sender"`
	Timestamp int64       `json:"timestamp"`
	Body      string      `json:"body,omitempty"`
	Payload   any         `json:"payload,omitempty"`
}

// RoomStatePayload is the payload of a TypeRoomState message.
type RoomStatePayload struct {
	Room    string        `json:"room"`
	You     Participant   `json:"you"`
	Members []Participant `json:"members"`
}

// UserEventPayload is the payload of join/leave announcements.
type UserEventPayload struct {
	User Participant `json:"user"`
}

// ErrorPayload is the payload of a TypeError message.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewMessage builds an envelope with a fresh ID and the current timestamp
// in Unix milliseconds.
func NewMessage(msgType MessageType, room string, sender Participant, body string) Message {
	return Message{
		ID:        randx.MessageID(),
		Type:      msgType,
		Room:      room,
		Sender:    sender,
		Timestamp: time.Now().UnixMilli(),
		Body:      body,
	}
}
