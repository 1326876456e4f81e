// Package tui is the interactive quiz arena.
package tui

type state int

const (
	loadingState state = iota
	errorState
	usernameState
	menuState
	questionState
	resultsState
	leaderboardState
)

// transient states are never returned to with back.
var transient = []state{loadingState, questionState, errorState}
