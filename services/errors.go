package services

import "errors"

// Domain failures the controllers translate into HTTP responses. Anything
// else coming out of a service is an internal persistence error.
var (
	ErrRoomNotFound       = errors.New("room_not_found")
	ErrInvalidPersonID    = errors.New("invalid_person_id")
	ErrRoomUnavailable    = errors.New("room_unavailable")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRoom        = errors.New("invalid_room")
)
