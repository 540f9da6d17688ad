package sourcing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/biaslab/internal/model"
	"github.com/ppiankov/biaslab/internal/util"
	"golang.org/x/time/rate"
)

// TavilyRanker queries the Tavily search API for primary-source
// candidates. The search query itself is biased toward official records.
type TavilyRanker struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type tavilyRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Score         float64 `json:"score"`
		PublishedDate string  `json:"published_date"`
	} `json:"results"`
}

// NewTavilyRanker creates a new Tavily client. Outbound calls share a
// single rate limiter since they all hit one API host.
func NewTavilyRanker(apiKey string, timeout time.Duration, httpProxy, httpsProxy, noProxy string) (*TavilyRanker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Tavily API key is required")
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &TavilyRanker{
		apiKey:  apiKey,
		baseURL: "https://api.tavily.com",
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
			},
		},
		limiter: rate.NewLimiter(rate.Limit(4), 4),
	}, nil
}

// Search returns raw candidates for a claim. Any failure returns an
// error the caller is expected to swallow into an empty result.
func (r *TavilyRanker) Search(ctx context.Context, query string, count int) ([]model.Source, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	biased := query + ` site:.gov OR site:.mil OR site:.edu OR "press release" OR "official statement" OR filetype:pdf`

	payload, err := json.Marshal(tavilyRequest{
		Query:       biased,
		SearchDepth: "advanced",
		MaxResults:  count,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily API error: status %d", resp.StatusCode)
	}

	var apiResp tavilyResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	sources := make([]model.Source, 0, len(apiResp.Results))
	for _, res := range apiResp.Results {
		if res.URL == "" {
			continue
		}
		title := res.Title
		if title == "" {
			title = res.URL
		}
		sources = append(sources, model.Source{
			Title:     title,
			URL:       res.URL,
			Score:     res.Score,
			Published: res.PublishedDate,
		})
	}
	return sources, nil
}
