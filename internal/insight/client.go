// Package insight calls the external generative-text service for advisory
// content: eco tips and route suggestions. The service is best-effort; every
// failure is absorbed into a fixed fallback so callers never see an error.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fallback texts returned when the external service cannot be reached.
const (
	ecoTipFallback = "Sharing rides reduces India's urban traffic and carbon footprint significantly."
	routeFallback  = "Avoid peak hours between 9 AM and 11 AM. Use major Metro stations as convenient pickup points."
)

// Tip is an advisory eco message. Degraded marks a fallback response, so
// callers can count degraded answers without changing control flow.
type Tip struct {
	Text     string `json:"text"`
	Degraded bool   `json:"degraded"`
}

// MapLink points at an external map resource suggested by the service.
type MapLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Suggestions is advisory route guidance with optional map links.
type Suggestions struct {
	Text     string    `json:"text"`
	Links    []MapLink `json:"links"`
	Degraded bool      `json:"degraded"`
}

// Location is a grounding position for route suggestions.
type Location struct {
	Lat float64
	Lng float64
}

// Config holds the external service settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client talks to the generative-text service.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new insight client. A zero timeout defaults to 10s.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// EcoTip asks for a short motivating summary of a trip's environmental
// benefit. Never fails; degraded answers carry the fixed fallback sentence.
func (c *Client) EcoTip(ctx context.Context, distanceKm float64, passengers int) Tip {
	prompt := fmt.Sprintf(
		"Calculate the environmental benefit of a %.0fkm carpool trip in an Indian city with %d passengers instead of everyone driving separate cars. Mention the impact on local air quality (AQI) specifically for India. Provide a short, motivating summary in 2 sentences.",
		distanceKm, passengers,
	)

	resp, err := c.generate(ctx, generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{Temperature: 0.7},
	})
	if err != nil {
		return Tip{Text: ecoTipFallback, Degraded: true}
	}

	text := resp.text()
	if text == "" {
		return Tip{Text: "Every carpool helps clear the smog for a better tomorrow!"}
	}
	return Tip{Text: text}
}

// RouteSuggestions asks for carpooling tips for a route. The caller's last
// known position grounds the answer; without one the fixed fallback is
// returned immediately.
func (c *Client) RouteSuggestions(ctx context.Context, origin, destination string, loc *Location) Suggestions {
	if loc == nil {
		return Suggestions{Text: routeFallback, Links: []MapLink{}, Degraded: true}
	}

	prompt := fmt.Sprintf(
		"Provide 3 smart carpooling tips for a route from %s to %s in India. Consider local traffic patterns (like monsoon delays or metro construction) and suggest specific popular landmarks as meeting points.",
		origin, destination,
	)

	resp, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Tools:    []tool{{GoogleMaps: &struct{}{}}},
		ToolConfig: &toolConfig{
			RetrievalConfig: &retrievalConfig{
				LatLng: latLng{Latitude: loc.Lat, Longitude: loc.Lng},
			},
		},
	})
	if err != nil {
		return Suggestions{Text: routeFallback, Links: []MapLink{}, Degraded: true}
	}

	links := []MapLink{}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Maps == nil || chunk.Maps.URI == "" {
				continue
			}
			title := chunk.Maps.Title
			if title == "" {
				title = "View on Map"
			}
			links = append(links, MapLink{Title: title, URI: chunk.Maps.URI})
		}
	}

	return Suggestions{Text: resp.text(), Links: links}
}

// Wire types for the generateContent endpoint.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	Tools            []tool            `json:"tools,omitempty"`
	ToolConfig       *toolConfig       `json:"toolConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type tool struct {
	GoogleMaps *struct{} `json:"googleMaps,omitempty"`
}

type toolConfig struct {
	RetrievalConfig *retrievalConfig `json:"retrievalConfig,omitempty"`
}

type retrievalConfig struct {
	LatLng latLng `json:"latLng"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           *content           `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Maps *mapsChunk `json:"maps"`
}

type mapsChunk struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return ""
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

func (c *Client) generate(ctx context.Context, req generateRequest) (*generateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, fmt.Errorf("insight service returned %d: %s", httpResp.StatusCode, data)
	}

	var resp generateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
