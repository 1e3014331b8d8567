package services

import "errors"

// Errors shared across services and the HTTP mapping layer.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrBracketNotFound    = errors.New("bracket not found")
	ErrBracketExists      = errors.New("tournament already has a bracket")
	ErrNoTeamsRegistered  = errors.New("no teams registered for this tournament")
	ErrValidationFailed   = errors.New("validation failed")
)
