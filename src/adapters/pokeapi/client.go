package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

var tracer = otel.Tracer("adapters/pokeapi")

// Client talks to PokeAPI. Every failure is soft: it is logged and turned into an
// empty result, never returned to the caller. There are no retries.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient builds a client for baseURL. A zero timeout means the calls never time out.
func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("accept", "application/json")
	client.SetTimeout(timeout)

	return &Client{http: client, logger: logger}
}

// FetchPage lists the first `limit` pokemon and returns their names.
func (c *Client) FetchPage(ctx context.Context, limit int) []string {
	ctx, span := tracer.Start(ctx, "FetchPage")
	defer span.End()

	span.SetAttributes(attribute.Int("limit", limit))

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/pokemon")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		c.logger.ErrorContext(ctx, "Failed to retrieve Pokemon list", "error", err)
		return []string{}
	}

	if res.IsError() {
		span.SetStatus(codes.Error, fmt.Sprintf("unexpected status %d", res.StatusCode()))
		c.logger.ErrorContext(ctx, "Failed to retrieve Pokemon list", "status", res.StatusCode())
		return []string{}
	}

	var page pokemonListResponse
	if err := json.Unmarshal(res.Body(), &page); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		c.logger.ErrorContext(ctx, "Failed to decode Pokemon list", "error", err)
		return []string{}
	}

	names := make([]string, 0, len(page.Results))
	for _, result := range page.Results {
		names = append(names, result.Name)
	}

	return names
}

// FetchOne returns the detail payload for a name or id, or nil when it could not be retrieved.
func (c *Client) FetchOne(ctx context.Context, identifier string) *RawPokemon {
	ctx, span := tracer.Start(ctx, "FetchOne")
	defer span.End()

	span.SetAttributes(attribute.String("identifier", identifier))

	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("identifier", identifier).
		Get("/pokemon/{identifier}")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		c.logger.WarnContext(ctx, "Failed to retrieve data", "identifier", identifier, "error", err)
		return nil
	}

	if res.IsError() {
		span.SetStatus(codes.Error, fmt.Sprintf("unexpected status %d", res.StatusCode()))
		c.logger.WarnContext(ctx, "Failed to retrieve data", "identifier", identifier, "status", res.StatusCode())
		return nil
	}

	var raw RawPokemon
	if err := json.Unmarshal(res.Body(), &raw); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		c.logger.WarnContext(ctx, "Failed to decode data", "identifier", identifier, "error", err)
		return nil
	}

	return &raw
}
