/*
Package handler provides the HTTP handlers and routing for the relay server.

This file holds the read-only room occupancy endpoint used for operational
visibility.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wsrelay/internal/pkg/errs"
	"wsrelay/internal/pkg/randx"
	"wsrelay/internal/pkg/resp"
)

// HandleGetRoom returns the member count and roster of a live room.
func HandleGetRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomName := chi.URLParam(r, "room")
		if !randx.IsValidRoomName(roomName) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNameInvalid))
			return
		}

		room := deps.Manager.GetRoom(roomName)
		if room == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"room":    room.Name,
			"members": room.MemberCount(),
			"roster":  room.Members(),
		})
	}
}
