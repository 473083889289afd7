/*
Package handler provides the HTTP handlers and routing for the relay server.

This file contains HandleWebSocket: rate limiting, room resolution, the
upgrade-or-426 check, optional token verification, and the hand-off of the
upgraded connection to its room coordinator.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"wsrelay/internal/app/relay"
	"wsrelay/internal/pkg/auth/token"
	"wsrelay/internal/pkg/errs"
	"wsrelay/internal/pkg/limiter"
	"wsrelay/internal/pkg/logx"
	"wsrelay/internal/pkg/randx"
	"wsrelay/internal/pkg/resp"
)

// HandleWebSocket processes connection requests to /ws and /ws/{room}.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)
		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		roomName := chi.URLParam(r, "room")
		if roomName == "" {
			roomName = deps.Config.DefaultRoom
		}
		if !randx.IsValidRoomName(roomName) {
			logx.Warn("WebSocket request rejected: invalid room name", "room", roomName)
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNameInvalid))
			return
		}

		// A request that does not ask for the upgrade cannot become a
		// session; nothing else about it matters.
		if !websocket.IsWebSocketUpgrade(r) {
			logx.Warn("WebSocket request rejected: not an upgrade request", "room", roomName)
			resp.RespondError(w, r, errs.NewError(errs.ErrUpgradeRequired))
			return
		}

		participant, customErr := resolveParticipant(r, deps.Config.JWTSecret)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		room := deps.Manager.GetOrCreateRoom(roomName)
		if room.IsFull() {
			logx.Info("WebSocket connection rejected: room is full.", "room", roomName)
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomIsFull))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote its own error response.
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := relay.NewClient(room, conn, participant)

		go client.WritePump()

		logx.Info("WebSocket connection established", "client_id", participant.ID, "room", roomName)

		room.RegisterClient(client)

		client.ReadPump()
	}
}

// resolveParticipant derives the connection identity. A token supplied via
// the "token" query parameter must verify; a request without one gets a
// generated guest identity, optionally named by the "name" query parameter.
func resolveParticipant(r *http.Request, secret string) (relay.Participant, *errs.CustomError) {
	query := r.URL.Query()

	if tokenString := query.Get("token"); tokenString != "" {
		claims, ok := token.Verify(tokenString, secret)
		if !ok {
			logx.Warn("WebSocket request rejected: invalid token")
			return relay.Participant{}, errs.NewError(errs.ErrInvalidToken)
		}
		return participantFromClaims(claims)
	}

	guestID, err := randx.GuestID()
	if err != nil {
		logx.Error(err, "Failed to generate guest ID")
		return relay.Participant{}, errs.NewError(errs.ErrUnknown)
	}

	name := query.Get("name")
	if name == "" {
		if name, err = randx.Nickname(); err != nil {
			name = "User_X"
		}
	}

	return relay.Participant{ID: guestID, Name: name, Role: "guest"}, nil
}

// participantFromClaims maps verified token claims onto a participant.
func participantFromClaims(claims token.Claims) (relay.Participant, *errs.CustomError) {
	participant := relay.Participant{}

	if sub, ok := claims["sub"].(string); ok {
		participant.ID = sub
	}
	if name, ok := claims["name"].(string); ok {
		participant.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		participant.Role = role
	}

	if participant.ID == "" {
		guestID, err := randx.GuestID()
		if err != nil {
			return relay.Participant{}, errs.NewError(errs.ErrUnknown)
		}
		participant.ID = guestID
	}
	if participant.Name == "" {
		participant.Name = participant.ID
	}

	return participant, nil
}
