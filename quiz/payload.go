package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/oklog/ulid/v2"
	"github.com/samber/lo"
)

// ErrMalformedPayload is returned when the generated text is not a usable quiz.
var ErrMalformedPayload = errors.New("quiz: malformed payload")

// Payload is the JSON document the text generator is asked to produce.
type Payload struct {
	Questions []Question `json:"questions" jsonschema:"minItems=5,maxItems=5"`
}

// Schema renders the JSON schema of Payload for embedding in prompts.
func Schema() string {
	reflector := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Payload{})
	raw, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return ""
	}
	return string(raw)
}

// extractObject trims code fences and surrounding prose down to the outermost JSON object.
func extractObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParsePayload turns generated text into a quiz for req.
func ParsePayload(raw string, req Request) (*Quiz, error) {
	object, ok := extractObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedPayload)
	}

	var payload Payload
	if err := json.Unmarshal([]byte(object), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if len(payload.Questions) != QuestionsPerQuiz {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrMalformedPayload, QuestionsPerQuiz, len(payload.Questions))
	}

	questions := lo.Map(payload.Questions, func(q Question, i int) Question {
		q.ID = i + 1
		q.Kind = QuestionKind(strings.ToLower(strings.TrimSpace(string(q.Kind))))
		q.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(string(q.Difficulty))))
		if q.Difficulty == "" {
			q.Difficulty = req.Difficulty
		}
		if q.Kind != MultipleChoice {
			q.Options = nil
		}
		return q
	})

	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
	}

	counts := lo.CountValuesBy(questions, func(q Question) QuestionKind {
		return q.Kind
	})
	for kind, want := range Mix {
		if counts[kind] != want {
			return nil, fmt.Errorf("%w: expected %d %s questions, got %d", ErrMalformedPayload, want, kind, counts[kind])
		}
	}

	return &Quiz{
		ID:         ulid.Make(),
		CreatedAt:  time.Now(),
		Kind:       req.Kind,
		Difficulty: req.Difficulty,
		Duration:   req.Duration,
		Questions:  questions,
	}, nil
}
