// Package handler holds constants and the contract shared by the web handlers.
package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
