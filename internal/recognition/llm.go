package recognition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/tmc/langchaingo/llms"
)

// Generator is the part of llms.Model used by LLMClassifier. Any langchaingo
// chat model with vision support satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

var (
	ErrNotAnImage    = errors.New("not an image")
	ErrEmptyResponse = errors.New("empty model response")
)

const classifyPrompt = `Identify the food in this photo.
Answer with JSON only, no prose, in this format:
{"labels": [{"label": string, "confidence": number}]}
List at most %d labels, most likely first. "confidence" is between 0 and 1.
Use short common English names, e.g. "banana" or "pizza".`

// LLMClassifier asks a multimodal chat model to label an image.
type LLMClassifier struct {
	model      Generator
	maxGuesses int
	log        logging.Logger
}

// LLMOption configures an LLMClassifier.
type LLMOption func(*LLMClassifier)

// WithMaxGuesses caps how many labels are requested.
func WithMaxGuesses(n int) LLMOption {
	return func(c *LLMClassifier) {
		if n > 0 {
			c.maxGuesses = n
		}
	}
}

// WithLogger sets where unparsable model replies are logged.
func WithLogger(log logging.Logger) LLMOption {
	return func(c *LLMClassifier) { c.log = log }
}

// NewLLMClassifier returns a classifier backed by model.
func NewLLMClassifier(model Generator, opts ...LLMOption) *LLMClassifier {
	c := &LLMClassifier{model: model, maxGuesses: 5, log: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the labels the model sees in image, best first.
func (c *LLMClassifier) Classify(ctx context.Context, image []byte) ([]Guess, error) {
	mime := http.DetectContentType(image)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotAnImage, mime)
	}

	msg := llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart(fmt.Sprintf(classifyPrompt, c.maxGuesses)),
			llms.BinaryPart(mime, image),
		},
	}

	resp, err := c.model.GenerateContent(ctx, []llms.MessageContent{msg}, llms.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	guesses, err := parseGuesses(resp.Choices[0].Content)
	if err != nil {
		c.log.Warn(ctx, "unparseable classifier reply", "error", err)
		return nil, err
	}
	if len(guesses) > c.maxGuesses {
		guesses = guesses[:c.maxGuesses]
	}
	return guesses, nil
}

// parseGuesses accepts the JSON reply with or without markdown fences.
func parseGuesses(text string) ([]Guess, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var out struct {
		Labels []Guess `json:"labels"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &out); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	guesses := make([]Guess, 0, len(out.Labels))
	for _, g := range out.Labels {
		if strings.TrimSpace(g.Label) == "" {
			continue
		}
		guesses = append(guesses, g)
	}
	return guesses, nil
}
