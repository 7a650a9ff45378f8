package domain

import "errors"

var (
	// ErrInvalidParameter is returned by the scoring engine for non-positive
	// credit or base amounts.
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidClient    = errors.New("invalid client")
	ErrClientNotFound   = errors.New("client not found")
)
