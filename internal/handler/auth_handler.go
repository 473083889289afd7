/*
Package handler provides the HTTP handlers and routing for the relay server.

This file holds the token issuance and verification endpoints. Login issues a
guest identity with a signed token; verify exposes the codec's Verify call to
the rest of the application with the uniform invalid-token failure.
*/
package handler

import (
	"net/http"
	"unicode/utf8"

	"wsrelay/internal/pkg/auth/token"
	"wsrelay/internal/pkg/errs"
	"wsrelay/internal/pkg/logx"
	"wsrelay/internal/pkg/randx"
	"wsrelay/internal/pkg/req"
	"wsrelay/internal/pkg/resp"
)

// MaxNameLength bounds the display name accepted at login.
const MaxNameLength = 32

type LoginInput struct {
	// Name is the optional display name; a random one is generated otherwise.
	Name string `json:"name,omitempty"`

	// Role is the optional participant role embedded in the token.
	Role string `json:"role,omitempty"`
}

// HandleLogin issues a guest identity and a signed token carrying it.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if utf8.RuneCountInString(input.Name) > MaxNameLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		guestID, err := randx.GuestID()
		if err != nil {
			logx.Error(err, "Failed to generate guest ID for login")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		name := input.Name
		if name == "" {
			if name, err = randx.Nickname(); err != nil {
				name = guestID
			}
		}

		role := input.Role
		if role == "" {
			role = "guest"
		}

		claims := token.Claims{
			"sub":  guestID,
			"name": name,
			"role": role,
		}

		tokenString, err := token.Sign(claims, deps.Config.JWTSecret, deps.Config.TokenTTL)
		if err != nil {
			logx.Error(err, "Failed to sign token at login")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token":     tokenString,
			"expiresIn": int(deps.Config.TokenTTL.Seconds()),
			"user": map[string]any{
				"id":   guestID,
				"name": name,
				"role": role,
			},
		})
	}
}

type VerifyInput struct {
	Token string `json:"token"`
}

// HandleVerify checks a presented token and returns its claims. The token
// comes from the Authorization header or, failing that, the request body.
// Every failure mode yields the same invalid-token response.
func HandleVerify(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := token.BearerToken(r)

		if tokenString == "" {
			var input VerifyInput
			if customErr := req.BindJSON(r, &input); customErr != nil {
				resp.RespondError(w, r, customErr)
				return
			}
			tokenString = input.Token
		}

		claims, ok := token.Verify(tokenString, deps.Config.JWTSecret)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidToken))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"claims": claims,
		})
	}
}
