/*
Package errs defines the application error type and the error code taxonomy.

This file maps every error code to its message and HTTP status. A zero status
means HTTP 200 with a non-zero business code in the JSON envelope.
*/
package errs

import "net/http"

// errorMap holds the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrNotFound:             {Code: ErrNotFound, Message: "Not found.", Status: http.StatusNotFound},

	// 2xxx: Relay and Room Errors
	ErrRoomNotFound:    {Code: ErrRoomNotFound, Message: "Room not found.", Status: http.StatusNotFound},
	ErrRoomIsFull:      {Code: ErrRoomIsFull, Message: "This room is full."},
	ErrUpgradeRequired: {Code: ErrUpgradeRequired, Message: "WebSocket upgrade required.", Status: http.StatusUpgradeRequired},
	ErrMessageTooLong:  {Code: ErrMessageTooLong, Message: "Message is too long."},
	ErrRoomNameInvalid: {Code: ErrRoomNameInvalid, Message: "Invalid room name."},

	// 3xxx: Token and Identity Errors
	ErrInvalidToken:  {Code: ErrInvalidToken, Message: "Authentication failed.", Status: http.StatusUnauthorized},
	ErrSessionKicked: {Code: ErrSessionKicked, Message: "You were connected from another device."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
