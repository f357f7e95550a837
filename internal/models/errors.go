package models

import "errors"

// Custom errors
var (
	ErrNoPlayData    = errors.New("no play data available for requested seasons")
	ErrNoDateColumn  = errors.New("no recognized date column found in schedule")
	ErrNoFeatureRows = errors.New("no feature rows available for training")
	ErrSingleClass   = errors.New("training data contains a single outcome class")
	ErrNotFound      = errors.New("record not found")
	ErrInvalidID     = errors.New("invalid ID format")
)
