package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"

	"blogrank-go/pkg/logger"
)

const defaultEndpoint = "https://openapi.naver.com/v1/search/blog.json"

// Credentials holds the two static Naver OpenAPI credential fields.
type Credentials struct {
	ClientID     string `json:"client_id" mapstructure:"client_id"`
	ClientSecret string `json:"client_secret" mapstructure:"client_secret"`
}

// NaverClient queries the Naver blog search OpenAPI over fasthttp.
type NaverClient struct {
	endpoint string
	creds    Credentials
	client   *fasthttp.Client
	timeout  time.Duration
	log      *logger.Logger
}

// NewNaverClient creates a blog search client with the given credentials.
func NewNaverClient(creds Credentials) *NaverClient {
	return &NaverClient{
		endpoint: defaultEndpoint,
		creds:    creds,
		client: &fasthttp.Client{
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		timeout: 15 * time.Second,
		log:     logger.GetLogger().WithField("component", "search_client"),
	}
}

// SetEndpoint overrides the API endpoint. Used by tests.
func (c *NaverClient) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Search fetches a single result page. start is 1-based.
func (c *NaverClient) Search(ctx context.Context, query string, start, display int) (*BlogSearchResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.buildURL(query, start, display))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Naver-Client-Id", c.creds.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.creds.ClientSecret)
	req.Header.Set("Accept", "application/json")

	deadline := c.timeout
	if d, ok := ctx.Deadline(); ok {
		if until := time.Until(d); until < deadline {
			deadline = until
		}
	}

	if err := c.client.DoTimeout(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("blog search request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("blog search API returned HTTP %d", resp.StatusCode())
	}

	var page BlogSearchResponse
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("failed to decode blog search response: %w", err)
	}

	c.log.WithFields(map[string]interface{}{
		"query": query,
		"start": start,
		"items": len(page.Items),
	}).Debug("Blog search page fetched")

	return &page, nil
}

func (c *NaverClient) buildURL(query string, start, display int) string {
	params := url.Values{}
	params.Set("query", query)
	params.Set("start", fmt.Sprintf("%d", start))
	params.Set("display", fmt.Sprintf("%d", display))
	return c.endpoint + "?" + params.Encode()
}
