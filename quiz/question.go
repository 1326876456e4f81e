package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// QuestionKind is the answer format of a question.
type QuestionKind string

const (
	MultipleChoice QuestionKind = "multiple-choice"
	TrueFalse      QuestionKind = "true-false"
	FillBlank      QuestionKind = "fill-blank"
)

// QuestionsPerQuiz is the fixed length of every quiz.
const QuestionsPerQuiz = 5

// Question is one item of a quiz.
type Question struct {
	ID         int          `json:"id" jsonschema:"-"`
	Kind       QuestionKind `json:"type" jsonschema:"enum=multiple-choice,enum=true-false,enum=fill-blank"`
	Prompt     string       `json:"question" jsonschema:"description=Question text. Fill-in-the-blank questions contain a _____ placeholder."`
	Options    []string     `json:"options,omitempty" jsonschema:"description=Exactly four options for multiple-choice questions. Omitted otherwise."`
	Answer     string       `json:"correctAnswer" jsonschema:"description=The correct option text or true or false or the missing word."`
	Difficulty Difficulty   `json:"difficulty" jsonschema:"enum=easy,enum=medium,enum=hard"`
}

// Mix is the number of questions of each kind in a quiz.
var Mix = map[QuestionKind]int{
	MultipleChoice: 2,
	TrueFalse:      2,
	FillBlank:      1,
}

// Choices returns the selectable answers, or nil when the answer is typed.
func (q Question) Choices() []string {
	switch q.Kind {
	case MultipleChoice:
		return q.Options
	case TrueFalse:
		return []string{"true", "false"}
	default:
		return nil
	}
}

// Validate reports the first structural problem of the question.
func (q Question) Validate() error {
	switch q.Kind {
	case MultipleChoice:
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d: multiple-choice needs 4 options, got %d", q.ID, len(q.Options))
		}
	case TrueFalse:
		if answer := strings.ToLower(strings.TrimSpace(q.Answer)); answer != "true" && answer != "false" {
			return fmt.Errorf("question %d: true-false answer must be true or false, got %q", q.ID, q.Answer)
		}
	case FillBlank:
	default:
		return fmt.Errorf("question %d: unknown type %q", q.ID, q.Kind)
	}

	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question %d: empty question", q.ID)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("question %d: empty answer", q.ID)
	}

	switch q.Difficulty {
	case Easy, Medium, Hard:
	default:
		return fmt.Errorf("question %d: unknown difficulty %q", q.ID, q.Difficulty)
	}
	return nil
}

// Quiz is a generated set of questions with its time limit.
type Quiz struct {
	ID         ulid.ULID     `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	Kind       Kind          `json:"kind"`
	Difficulty Difficulty    `json:"difficulty"`
	Duration   time.Duration `json:"duration"`
	Questions  []Question    `json:"questions"`
}
