// Package quiz generates timed anime trivia quizzes and scores the answers.
package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind is the quiz format chosen by the player.
type Kind string

const (
	Quick     Kind = "quick"
	Challenge Kind = "challenge"
	Expert    Kind = "expert"
)

// Kinds lists every format in menu order.
var Kinds = []Kind{Quick, Challenge, Expert}

// Difficulty of a quiz or a single question.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ErrUnknownKind is returned for formats other than quick, challenge and expert.
var ErrUnknownKind = errors.New("quiz: unknown kind")

// ParseKind accepts a format name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, _, err := k.Settings(); err != nil {
		return "", err
	}
	return k, nil
}

// Settings returns the time limit and difficulty of the format.
func (k Kind) Settings() (time.Duration, Difficulty, error) {
	switch k {
	case Quick:
		return time.Minute, Easy, nil
	case Challenge:
		return 3 * time.Minute, Medium, nil
	case Expert:
		return 5 * time.Minute, Hard, nil
	default:
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// Title is the capitalized name shown in menus.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
