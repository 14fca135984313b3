// Package suggest generates new date-idea drafts with the Gemini API and
// inserts accepted ones into the jar.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	suggestionCount = 3
)

// GeneratedIdea is a suggestion draft; id, completion state and timestamps
// are assigned only when the user accepts it.
type GeneratedIdea struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Cost        string `json:"cost"`
	Duration    string `json:"duration"`
}

// Client calls the Gemini generateContent endpoint. With no API key it
// serves a fixed local set so the feature stays usable offline.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// GenerateIdeas asks for fresh suggestions, passing the existing titles so
// the model avoids duplicates.
func (c *Client) GenerateIdeas(ctx context.Context, existingTitles []string) ([]GeneratedIdea, error) {
	if c.apiKey == "" {
		return fallbackIdeas(), nil
	}

	prompt := fmt.Sprintf(`Ich habe eine App für Date-Ideen. Aktuelle Titel sind: %s.

Erstelle %d neue, kreative Date-Ideen für Paare (Fokus: Dresden & Umgebung oder allgemein).

Kategorien Auswahl: 'Aktiv', 'Entspannung', 'Essen & Trinken', 'Kultur', 'Reisen', 'Sonstiges'.
Kosten Auswahl: 'Kostenlos', '€', '€€', '€€€'.

Antworte im JSON Format.`, strings.Join(existingTitles, ", "), suggestionCount)

	reqBody := apiRequest{
		Contents: []apiContent{{Parts: []apiPart{{Text: prompt}}}},
		GenerationConfig: apiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   ideaSchema(),
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	var ideas []GeneratedIdea
	text := result.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &ideas); err != nil {
		return nil, fmt.Errorf("decoding generated ideas: %w", err)
	}
	return ideas, nil
}

// fallbackIdeas mirrors the canned suggestions served when no key is set.
func fallbackIdeas() []GeneratedIdea {
	return []GeneratedIdea{
		{
			Title:       "Spaziergang im Großen Garten",
			Category:    "Aktiv",
			Description: "Ein entspannter Spaziergang durch den schönsten Park Dresdens.",
			Location:    "Großer Garten, Dresden",
			Cost:        "Kostenlos",
			Duration:    "1-2 Stunden",
		},
		{
			Title:       "Abendessen im Dunkelrestaurant",
			Category:    "Essen & Trinken",
			Description: "Ein einzigartiges kulinarisches Erlebnis in völliger Dunkelheit.",
			Location:    "Sinnesrausch, Dresden",
			Cost:        "€€€",
			Duration:    "2-3 Stunden",
		},
	}
}

// --- Gemini API types ---

type apiRequest struct {
	Contents         []apiContent        `json:"contents"`
	GenerationConfig apiGenerationConfig `json:"generationConfig"`
}

type apiContent struct {
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

type apiGenerationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type apiResponse struct {
	Candidates []struct {
		Content apiContent `json:"content"`
	} `json:"candidates"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ideaSchema constrains the model output to the suggestion draft shape.
func ideaSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "ARRAY",
		"items": {
			"type": "OBJECT",
			"properties": {
				"title": {"type": "STRING"},
				"category": {"type": "STRING", "enum": ["Aktiv", "Entspannung", "Essen & Trinken", "Kultur", "Reisen", "Sonstiges"]},
				"description": {"type": "STRING"},
				"location": {"type": "STRING"},
				"cost": {"type": "STRING", "enum": ["Kostenlos", "€", "€€", "€€€"]},
				"duration": {"type": "STRING"}
			},
			"required": ["title", "category", "description", "location", "cost", "duration"]
		}
	}`)
}
