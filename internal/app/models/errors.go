package models

import (
	"errors"
	"fmt"
)

// Domain specific errors for itinerary generation.
var (
	ErrValidation       = errors.New("validation failed")
	ErrCityEmpty        = &ValidationError{Message: "City cannot be empty"}
	ErrNoInterests      = &ValidationError{Message: "At least one interest must be provided"}
	ErrGeneration       = errors.New("failed to generate itinerary")
	ErrEmptyLLMResponse = fmt.Errorf("%w: empty LLM response", ErrGeneration)
	ErrLLMUnavailable   = fmt.Errorf("%w: LLM client not configured", ErrGeneration)
)

// User facing messages shown in the planner error panel.
const (
	MsgCityRequired      = "Please enter a city name"
	MsgInterestsRequired = "Please add at least one interest"
	MsgRequestFailed     = "Failed to generate itinerary"
	MsgTransportFailed   = "Failed to generate itinerary. Please try again."
	MsgUnexpected        = "An unexpected error occurred."
	MsgInvalidBody       = "Invalid request body"
)

// UserError is an error that carries a message safe to show in the UI.
type UserError interface {
	error
	UserMessage() string
}

// ValidationError reports form input the user has to correct before submitting.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string       { return "validation: " + e.Message }
func (e *ValidationError) UserMessage() string { return e.Message }
func (e *ValidationError) Unwrap() error       { return ErrValidation }

// RequestError is a non-2xx answer from the itinerary endpoint.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("itinerary endpoint returned %d: %s", e.StatusCode, e.Message)
}

func (e *RequestError) UserMessage() string { return e.Message }

// TransportError means no usable response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "itinerary transport failed"
	}
	return "itinerary transport failed: " + e.Err.Error()
}

func (e *TransportError) UserMessage() string { return MsgTransportFailed }
func (e *TransportError) Unwrap() error       { return e.Err }

// MessageFor resolves the text shown to the user for any error.
func MessageFor(err error) string {
	var ue UserError
	if errors.As(err, &ue) {
		return ue.UserMessage()
	}
	return MsgTransportFailed
}
