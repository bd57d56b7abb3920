package generator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"github.com/FACorreiaa/loci-planner/internal/app/models"
	"github.com/FACorreiaa/loci-planner/internal/app/observability/metrics"
	"github.com/FACorreiaa/loci-planner/internal/pkg/cache"
)

// LLMClient is the part of the Gemini chat client the generator uses.
type LLMClient interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Service produces itinerary text with an LLM. Identical requests in flight
// at the same time share one LLM call, and results are cached for the TTL of
// the itinerary cache.
type Service struct {
	llm         LLMClient
	itineraries *cache.UnifiedCache[string]
	group       singleflight.Group
	temperature float32
	logger      *zap.Logger
	metrics     *metrics.AppMetrics
}

// NewService returns a Service. llm may be nil, in which case every
// generation fails with models.ErrLLMUnavailable.
func NewService(llm LLMClient, itineraries *cache.UnifiedCache[string], temperature float32, logger *zap.Logger, m *metrics.AppMetrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		llm:         llm,
		itineraries: itineraries,
		temperature: temperature,
		logger:      logger,
		metrics:     m,
	}
}

// cleanInterests trims every interest, splits comma separated entries and
// drops empty ones.
func cleanInterests(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Service) Generate(ctx context.Context, req models.ItineraryRequest) (*models.ItineraryResult, error) {
	city := strings.TrimSpace(req.City)
	if city == "" {
		return nil, models.ErrCityEmpty
	}
	interests := cleanInterests(req.Interests)
	if len(interests) == 0 {
		return nil, models.ErrNoInterests
	}

	key, err := cache.NewCacheKeyBuilder(s.logger).AddCity(city).AddInterests(interests).Build()
	if err != nil {
		return nil, fmt.Errorf("build itinerary cache key: %w", err)
	}

	if s.itineraries != nil {
		if text, found := s.itineraries.Get(key); found {
			s.metrics.RecordCacheHit(ctx)
			s.logger.Info("Itinerary served from cache", zap.String("city", city))
			return &models.ItineraryResult{City: city, Interests: interests, Itinerary: text}, nil
		}
	}

	if s.llm == nil {
		return nil, models.ErrLLMUnavailable
	}

	s.logger.Info("Generating itinerary", zap.String("city", city), zap.Strings("interests", interests))

	// Callers that join an in-flight call must not be failed by the first
	// caller going away.
	callCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(key, func() (any, error) {
		text, err := s.callLLM(callCtx, city, interests)
		if err != nil {
			return "", err
		}
		if s.itineraries != nil {
			s.itineraries.Set(key, text)
		}
		return text, nil
	})
	if err != nil {
		s.logger.Error("Failed to generate itinerary", zap.String("city", city), zap.Error(err))
		return nil, err
	}
	if shared {
		s.logger.Debug("Itinerary generation shared with a concurrent request", zap.String("city", city))
	}

	return &models.ItineraryResult{City: city, Interests: interests, Itinerary: v.(string)}, nil
}

func (s *Service) callLLM(ctx context.Context, city string, interests []string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](s.temperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt(city, interests)}},
		},
	}

	response, err := s.llm.GenerateResponse(ctx, userPrompt(city, interests), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrGeneration, err)
	}

	text := responseText(response)
	if text == "" {
		return "", models.ErrEmptyLLMResponse
	}
	return text, nil
}

func responseText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return ""
	}
	candidate := response.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
