/*
Package errs defines the application error type and the error code taxonomy.

The numeric codes identify specific failures both in server logs and in the
JSON body returned to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates an unsupported Content-Type header.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a malformed request body.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates the per-IP request rate was exceeded.
	ErrRateLimitExceeded = 1005

	// ErrNotFound indicates the requested route does not exist.
	ErrNotFound = 1006
)

// 2xxx: Relay and Room Errors
const (
	// ErrRoomNotFound indicates the referenced room does not exist.
	ErrRoomNotFound = 2001

	// ErrRoomIsFull indicates the room has reached its connection capacity.
	ErrRoomIsFull = 2002

	// ErrUpgradeRequired indicates a request to the websocket endpoint that
	// did not ask for a protocol upgrade.
	ErrUpgradeRequired = 2003

	// ErrMessageTooLong indicates a message body exceeding the size limit.
	ErrMessageTooLong = 2004

	// ErrRoomNameInvalid indicates a room name outside the allowed alphabet.
	ErrRoomNameInvalid = 2005
)

// 3xxx: Token and Identity Errors
const (
	// ErrInvalidToken covers every token failure: malformed, forged, or
	// expired. The causes are deliberately never distinguished to callers.
	ErrInvalidToken = 3001

	// ErrSessionKicked indicates the connection was replaced by a newer one
	// carrying the same identity.
	ErrSessionKicked = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown is the catch-all internal server error.
	ErrUnknown = 5000
)
