package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/log"
	"github.com/spf13/viper"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrGenerate wraps failures of the text-generation service.
var ErrGenerate = errors.New("quiz: generation failed")

// Request describes the quiz to generate.
type Request struct {
	Kind       Kind
	Difficulty Difficulty
	Duration   time.Duration
	Credential string
}

// Generator produces quizzes.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Quiz, error)
}

// ModelFactory builds a language model authorized by credential.
type ModelFactory func(credential string) (llms.Model, error)

// LLMGenerator asks a chat model for a quiz and parses its JSON answer.
type LLMGenerator struct {
	newModel    ModelFactory
	temperature float64
	maxTokens   int
}

// GeneratorOption configures an LLMGenerator.
type GeneratorOption func(*LLMGenerator)

// WithModelFactory replaces the OpenAI model constructor.
func WithModelFactory(f ModelFactory) GeneratorOption {
	return func(g *LLMGenerator) {
		g.newModel = f
	}
}

// WithSampling overrides temperature and completion token limit.
func WithSampling(temperature float64, maxTokens int) GeneratorOption {
	return func(g *LLMGenerator) {
		g.temperature = temperature
		g.maxTokens = maxTokens
	}
}

// NewLLMGenerator builds a generator backed by an OpenAI-compatible chat model.
func NewLLMGenerator(opts ...GeneratorOption) *LLMGenerator {
	g := &LLMGenerator{
		newModel:    OpenAIModel,
		temperature: viper.GetFloat64(key.QuizTemperature),
		maxTokens:   viper.GetInt(key.QuizMaxTokens),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.temperature <= 0 {
		g.temperature = 0.9
	}
	if g.maxTokens <= 0 {
		g.maxTokens = 2000
	}
	return g
}

// OpenAIModel builds the configured chat model for credential.
func OpenAIModel(credential string) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(credential),
		openai.WithModel(viper.GetString(key.QuizModel)),
	}
	if base := viper.GetString(key.QuizBaseURL); base != "" {
		opts = append(opts, openai.WithBaseURL(base))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return llm, nil
}

const systemPrompt = "You are an anime/manga expert creating diverse quiz questions. Always respond with valid JSON only."

func userPrompt(difficulty Difficulty) string {
	return fmt.Sprintf(`Generate a unique %d-question anime/manga quiz with the following specifications:
- Difficulty: %s
- Mix of question types: 2 multiple-choice (4 options each), 2 true/false, 1 fill-in-the-blank
- Cover diverse anime/manga topics: characters, plot, release years, creators, trivia
- Each question should be completely unique and not repetitive
- True/false answers are exactly "true" or "false"
- Respond with a JSON object matching this schema:
%s`, QuestionsPerQuiz, difficulty, Schema())
}

// Generate implements Generator.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Quiz, error) {
	if strings.TrimSpace(req.Credential) == "" {
		return nil, ErrMissingCredential
	}

	model, err := g.newModel(req.Credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	entry := log.WithFields(log.Fields{"kind": req.Kind, "difficulty": req.Difficulty})
	entry.Info("generating quiz")

	resp, err := model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, userPrompt(req.Difficulty)),
		},
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
		llms.WithJSONMode(),
	)
	if err != nil {
		entry.WithError(err).Error("generation failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedPayload)
	}

	quiz, err := ParsePayload(resp.Choices[0].Content, req)
	if err != nil {
		entry.WithError(err).Warn("unusable payload")
		return nil, err
	}

	entry.WithField("id", quiz.ID.String()).Info("quiz ready")
	return quiz, nil
}
