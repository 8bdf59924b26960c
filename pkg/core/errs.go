package core

import (
	"errors"
	"fmt"
)

var (
	ErrNoData           = errors.New("no data")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrFieldMissing     = errors.New("price field missing")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrUnexpected       = errors.New("unexpected cycle failure")
)

// FetchError is returned when a remote price source cannot be reached or parsed
type FetchError struct {
	Source string
	Asset  string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Asset, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DeliveryError is returned when a message cannot be sent to the destination chat
type DeliveryError struct {
	Chat string
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %s: %v", e.Chat, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
