package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSession is returned by Run when the prompter was built without a session.
	ErrNoSession = errors.New("tui: session is required")
)
