package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	"github.com/tmc/langchaingo/llms"
)

type mockModel struct {
	mock.Mock
}

func (m *mockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func (m *mockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt, options)
	return args.String(0), args.Error(1)
}

var _ llms.Model = (*mockModel)(nil)

func TestLLMGenerator(t *testing.T) {
	req := Request{Kind: Challenge, Difficulty: Medium, Duration: 3 * time.Minute, Credential: "sk-test"}

	Convey("Given a generator over a mocked model", t, func() {
		model := new(mockModel)
		var credential string
		generator := NewLLMGenerator(
			WithSampling(0.9, 2000),
			WithModelFactory(func(c string) (llms.Model, error) {
				credential = c
				return model, nil
			}),
		)

		Convey("A valid completion becomes a quiz", func() {
			model.On("GenerateContent", mock.Anything, mock.MatchedBy(func(messages []llms.MessageContent) bool {
				return len(messages) == 2 &&
					messages[0].Role == llms.ChatMessageTypeSystem &&
					messages[1].Role == llms.ChatMessageTypeHuman
			}), mock.Anything).Return(&llms.ContentResponse{
				Choices: []*llms.ContentChoice{{Content: validPayload}},
			}, nil).Once()

			q, err := generator.Generate(context.Background(), req)
			So(err, ShouldBeNil)
			So(credential, ShouldEqual, "sk-test")
			So(q.Kind, ShouldEqual, Challenge)
			So(q.Difficulty, ShouldEqual, Medium)
			So(q.Duration, ShouldEqual, 3*time.Minute)
			So(model.AssertExpectations(t), ShouldBeTrue)
		})

		Convey("Service failures wrap ErrGenerate", func() {
			model.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, errors.New("401 unauthorized")).Once()

			_, err := generator.Generate(context.Background(), req)
			So(errors.Is(err, ErrGenerate), ShouldBeTrue)
		})

		Convey("Garbage completions are malformed", func() {
			model.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(&llms.ContentResponse{
				Choices: []*llms.ContentChoice{{Content: `{"questions": []}`}},
			}, nil).Once()

			_, err := generator.Generate(context.Background(), req)
			So(errors.Is(err, ErrMalformedPayload), ShouldBeTrue)
		})

		Convey("A blank credential never reaches the model", func() {
			_, err := generator.Generate(context.Background(), Request{Kind: Quick, Difficulty: Easy})
			So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)
			So(credential, ShouldBeEmpty)
			model.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
		})
	})
}
