package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrDuplicateGenre       = errors.New("a genre with this name already exists")
	ErrSeatAlreadyTaken     = errors.New("seat is already taken for this movie session")
	ErrMovieSessionNotFound = errors.New("movie session does not exist")
)

// FilterError reports a malformed filter value supplied by a client. Every
// filter-parsing failure is expressed as a FilterError so handlers surface
// them through a single error channel.
type FilterError struct {
	Message string
}

func NewFilterError(message string) *FilterError {
	return &FilterError{Message: message}
}

func (e *FilterError) Error() string {
	return e.Message
}

// SeatRangeError reports a ticket seat coordinate outside the bounds of the
// session's cinema hall.
type SeatRangeError struct {
	Field string
	Value int
	Max   int
}

func (e *SeatRangeError) Error() string {
	return fmt.Sprintf("%s must be in range [1, %d], got %d", e.Field, e.Max, e.Value)
}
