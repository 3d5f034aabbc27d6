// Package describe turns a computed accessibility score into a short
// human-readable summary of the surrounding public transport using the
// OpenAI chat API. Generation is optional: without an API key the
// generator is inert and every call returns an empty description.
package describe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/sashabaranov/go-openai"

	"accessibility.antwerp.org/internal/logging"
	"accessibility.antwerp.org/internal/scoring"
)

const (
	// defaultCacheSize bounds the number of cached descriptions. Locations
	// are rounded before caching, so repeated map clicks in the same block
	// hit the cache instead of the API.
	defaultCacheSize = 512

	systemPrompt = `You summarize public transport accessibility for a location in Antwerp. ` +
		`Answer in at most two sentences, plain English, no markdown.`
)

// chatClient is the slice of the OpenAI client the generator needs.
// *openai.Client satisfies it.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds the settings for a description generator.
type Config struct {
	APIKey    string
	Model     string
	CacheSize int
}

// Generator produces location descriptions and caches them by rounded
// coordinates. The zero of each optional field falls back to a default.
type Generator struct {
	client chatClient
	model  string
	logger *slog.Logger

	mu    sync.Mutex
	cache *lru.Cache
}

// NewGenerator builds a generator from config. With an empty API key the
// returned generator is inert rather than nil so callers never need to
// guard their call sites.
func NewGenerator(config Config, logger *slog.Logger) *Generator {
	g := &Generator{
		model:  config.Model,
		logger: logger,
	}
	if g.model == "" {
		g.model = openai.GPT4oMini
	}

	size := config.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	g.cache = lru.New(size)

	if config.APIKey != "" {
		g.client = openai.NewClient(config.APIKey)
	}
	return g
}

// Enabled reports whether the generator has an API client behind it.
func (g *Generator) Enabled() bool {
	return g != nil && g.client != nil
}

// Describe returns a short natural-language summary for the score at the
// given location. Failures never propagate: an unreachable or misbehaving
// API yields an empty description and the score response stays usable.
func (g *Generator) Describe(ctx context.Context, lat, lon, radiusKM float64, details scoring.Details) string {
	if !g.Enabled() {
		return ""
	}

	key := cacheKey(lat, lon, radiusKM)
	g.mu.Lock()
	if cached, ok := g.cache.Get(key); ok {
		g.mu.Unlock()
		return cached.(string)
	}
	g.mu.Unlock()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(lat, lon, radiusKM, details)},
		},
	})
	if err != nil {
		logging.LogError(g.logger, "description generation failed", err,
			slog.Float64("lat", lat), slog.Float64("lon", lon))
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}

	description := strings.TrimSpace(resp.Choices[0].Message.Content)

	g.mu.Lock()
	g.cache.Add(key, description)
	g.mu.Unlock()

	return description
}

// cacheKey rounds coordinates to ~11m so neighbouring queries share an
// entry.
func cacheKey(lat, lon, radiusKM float64) lru.Key {
	return fmt.Sprintf("%.4f:%.4f:%.2f", lat, lon, radiusKM)
}

func buildPrompt(lat, lon, radiusKM float64, details scoring.Details) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location %.5f, %.5f with a search radius of %.1f km has ", lat, lon, radiusKM)
	fmt.Fprintf(&b, "%d bus stops, %d tram stops and %d Velo bike share stations nearby.",
		details.BusStops, details.TramStops, details.VeloStations)
	appendClosest(&b, "bus stop", details.ClosestBus)
	appendClosest(&b, "tram stop", details.ClosestTram)
	appendClosest(&b, "Velo station", details.ClosestVelo)
	return b.String()
}

func appendClosest(b *strings.Builder, label string, distanceKM *float64) {
	if distanceKM == nil {
		return
	}
	fmt.Fprintf(b, " The closest %s is %.0f m away.", label, *distanceKM*1000)
}
