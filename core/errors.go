package core

import "errors"

// Simulation correctness errors. All of them abort the current episode;
// none are retried.
var (
	// ErrUninitialized is returned when Step is called before Reset.
	ErrUninitialized = errors.New("environment not initialized, call Reset first")
	// ErrInvalidAction is returned for action codes outside the action set.
	// The environment state is left untouched.
	ErrInvalidAction = errors.New("invalid action code")
	// ErrOutOfRange is returned when Step is called after the episode
	// already reported done.
	ErrOutOfRange = errors.New("step past the end of the price series")
	// ErrShapeMismatch is returned when an approximator is given an input
	// or target whose shape does not match its layout.
	ErrShapeMismatch = errors.New("approximator shape mismatch")

	// Strict-accounting rejections, disabled by default.
	ErrInsufficientFunds  = errors.New("insufficient balance for buy")
	ErrInsufficientShares = errors.New("insufficient shares for sell")
)
