package quiz

import "strings"

// XPPerCorrect is the experience awarded for each correct answer.
const XPPerCorrect = 10

// Matches compares answers ignoring case and surrounding whitespace.
func Matches(given, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct))
}

// Score counts correct answers. Missing answers count as wrong.
func Score(q *Quiz, answers []string) (int, []bool) {
	correct := make([]bool, len(q.Questions))
	score := 0
	for i, question := range q.Questions {
		if i < len(answers) && Matches(answers[i], question.Answer) {
			correct[i] = true
			score++
		}
	}
	return score, correct
}

// Reward converts a score into experience points.
func Reward(score int) int {
	return score * XPPerCorrect
}

// Result is the outcome of a finished quiz.
type Result struct {
	Quiz     *Quiz    `json:"quiz"`
	Answers  []string `json:"answers"`
	Correct  []bool   `json:"correct"`
	Score    int      `json:"score"`
	XP       int      `json:"xp"`
	TimedOut bool     `json:"timed_out"`
}

// Total is the number of questions in the quiz.
func (r Result) Total() int {
	return len(r.Quiz.Questions)
}
