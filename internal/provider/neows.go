package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asteroid-tracker/internal/domain"
	"asteroid-tracker/internal/feed"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	neowsFeedURL      = "https://api.nasa.gov/neo/rest/v1/feed"
	neowsTimeout      = 30 * time.Second
	dateLayout        = "2006-01-02"
	maxErrorBodyBytes = 200
)

// NeoWsProvider fetches the NASA NeoWs feed for a date range.
// The API key is fixed at construction.
type NeoWsProvider struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
}

// NewNeoWsProvider creates a provider with a 30s timeout and no retries.
// An empty baseURL selects the public NeoWs feed endpoint.
func NewNeoWsProvider(tracer trace.Tracer, apiKey, baseURL string) *NeoWsProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = neowsFeedURL
	}
	client := resty.New().
		SetTimeout(neowsTimeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &NeoWsProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		tracer:  tracer,
	}
}

// FetchFeed validates the range and returns the decoded feed. Errors wrap the
// domain sentinels so callers can categorise them.
func (p *NeoWsProvider) FetchFeed(ctx context.Context, startDate, endDate string) (*feed.RawFeed, error) {
	ctx, span := p.tracer.Start(ctx, "neows.fetch-feed")
	defer span.End()
	span.SetAttributes(
		attribute.String("start_date", startDate),
		attribute.String("end_date", endDate),
	)

	raw, err := p.fetchFeed(ctx, startDate, endDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.Category(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int("date_groups", len(raw.NearEarthObjects)))
	return raw, nil
}

func (p *NeoWsProvider) fetchFeed(ctx context.Context, startDate, endDate string) (*feed.RawFeed, error) {
	startDate, endDate = strings.TrimSpace(startDate), strings.TrimSpace(endDate)
	if err := ValidateRange(startDate, endDate); err != nil {
		return nil, err
	}
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: NASA API key is not set", domain.ErrConfiguration)
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"start_date": startDate,
			"end_date":   endDate,
			"api_key":    p.apiKey,
		}).
		Get(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reach NASA API: %s", domain.ErrUpstreamUnavailable, p.redact(err.Error()))
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: NASA API returned status %d: %s",
			domain.ErrUpstreamUnavailable, resp.StatusCode(), p.redact(snippet(resp.Body())))
	}

	raw, err := feed.DecodeFeed(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: NASA API returned invalid JSON: %v", domain.ErrMalformedResponse, err)
	}
	return raw, nil
}

// ValidateRange checks that both dates are YYYY-MM-DD and start is not after end.
func ValidateRange(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidRange)
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return fmt.Errorf("%w: start_date %q is not a YYYY-MM-DD date", domain.ErrInvalidRange, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return fmt.Errorf("%w: end_date %q is not a YYYY-MM-DD date", domain.ErrInvalidRange, endDate)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start date must not be after end date", domain.ErrInvalidRange)
	}
	return nil
}

func (p *NeoWsProvider) redact(s string) string {
	if p.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, p.apiKey, "REDACTED")
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyBytes {
		s = s[:maxErrorBodyBytes] + "..."
	}
	return s
}
