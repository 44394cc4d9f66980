package store

import "errors"

// Sentinel kinds for store errors. These allow errors.Is/As from callers.
var (
	ErrOpen      = errors.New("open store failed")
	ErrQuery     = errors.New("store query failed")
	ErrNoDataSet = errors.New("record set unavailable")
)
