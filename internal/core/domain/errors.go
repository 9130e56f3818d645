package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the subject lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the session token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the session token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrServiceUnavailable indicates the integration is not configured on this deployment
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrConfiguration indicates a required secret or credential is missing
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication indicates an authentication tag did not verify (tampering or wrong key)
	ErrAuthentication = errors.New("authentication failed")

	// ErrMalformedInput indicates an envelope or token does not have the expected shape
	ErrMalformedInput = errors.New("malformed input")

	// ErrProvider indicates an upstream provider call failed
	ErrProvider = errors.New("provider error")

	// ErrRateLimited indicates too many attempts in the current window
	ErrRateLimited = errors.New("rate limited")

	// ErrChannelNotFound indicates the messaging provider does not know the target
	ErrChannelNotFound = errors.New("channel target not found")

	// ErrChannelBlocked indicates the target blocked the bot
	ErrChannelBlocked = errors.New("channel blocked")

	// ErrSessionMismatch indicates the session subject differs from the state subject
	ErrSessionMismatch = errors.New("session mismatch")

	// ErrNotConnected indicates the subject has no usable integration for the provider
	ErrNotConnected = errors.New("integration not connected")

	// ErrSyncDisabled indicates the subject turned off sync for this kind of event
	ErrSyncDisabled = errors.New("sync disabled")
)

// ProviderError carries the detail of a failed provider call.
// The detail is for server-side logs only; handlers surface a generic message.
type ProviderError struct {
	Provider    Provider
	StatusCode  int
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: provider error (status %d)", e.Provider, e.StatusCode)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Description != "" {
		msg += ": " + e.Description
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrProvider) match.
func (e *ProviderError) Unwrap() error {
	return ErrProvider
}
