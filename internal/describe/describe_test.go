package describe

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessibility.antwerp.org/internal/scoring"
)

type fakeChatClient struct {
	calls   int
	lastReq openai.ChatCompletionRequest
	reply   string
	err     error
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func newTestGenerator(client chatClient) *Generator {
	g := NewGenerator(Config{}, nil)
	g.client = client
	return g
}

func sampleDetails() scoring.Details {
	closestBus := 0.12
	closestTram := 0.35
	return scoring.Details{
		BusStops:    3,
		TramStops:   1,
		ClosestBus:  &closestBus,
		ClosestTram: &closestTram,
	}
}

func TestDescribeDisabledWithoutAPIKey(t *testing.T) {
	g := NewGenerator(Config{}, nil)

	assert.False(t, g.Enabled())
	assert.Empty(t, g.Describe(context.Background(), 51.2194, 4.4025, 1.0, sampleDetails()))
}

func TestDescribePromptContents(t *testing.T) {
	fake := &fakeChatClient{reply: "Well served by bus and tram."}
	g := newTestGenerator(fake)

	description := g.Describe(context.Background(), 51.2194, 4.4025, 1.0, sampleDetails())

	assert.Equal(t, "Well served by bus and tram.", description)
	require.Len(t, fake.lastReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.lastReq.Messages[0].Role)

	prompt := fake.lastReq.Messages[1].Content
	assert.Contains(t, prompt, "3 bus stops")
	assert.Contains(t, prompt, "1 tram stops")
	assert.Contains(t, prompt, "0 Velo bike share stations")
	assert.Contains(t, prompt, "closest bus stop is 120 m")
	assert.Contains(t, prompt, "closest tram stop is 350 m")
	assert.NotContains(t, prompt, "Velo station is", "absent categories are not mentioned")
}

func TestDescribeCachesByLocation(t *testing.T) {
	fake := &fakeChatClient{reply: "Cached answer."}
	g := newTestGenerator(fake)

	first := g.Describe(context.Background(), 51.2194, 4.4025, 1.0, sampleDetails())
	second := g.Describe(context.Background(), 51.21941, 4.40251, 1.0, sampleDetails())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.calls, "nearby coordinates round to the same cache key")

	g.Describe(context.Background(), 51.25, 4.42, 1.0, sampleDetails())
	assert.Equal(t, 2, fake.calls, "a distinct location misses the cache")
}

func TestDescribeAPIFailureReturnsEmpty(t *testing.T) {
	fake := &fakeChatClient{err: errors.New("rate limited")}
	g := newTestGenerator(fake)

	description := g.Describe(context.Background(), 51.2194, 4.4025, 1.0, sampleDetails())

	assert.Empty(t, description)

	// A later successful call is not poisoned by the earlier failure.
	fake.err = nil
	fake.reply = "Recovered."
	assert.Equal(t, "Recovered.", g.Describe(context.Background(), 51.2194, 4.4025, 1.0, sampleDetails()))
}

func TestDescribeTrimsWhitespace(t *testing.T) {
	fake := &fakeChatClient{reply: "  Spacious.\n"}
	g := newTestGenerator(fake)

	assert.Equal(t, "Spacious.", g.Describe(context.Background(), 51.2, 4.4, 0.5, sampleDetails()))
}
