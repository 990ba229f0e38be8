package geofabrik

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/domain/model"
)

// DefaultBaseURL is the public Geofabrik download server
const DefaultBaseURL = "https://download.geofabrik.de"

const catalogPath = "/index-v1-nogeom.json"

type client struct {
	httpClient *http.Client
	baseURL    string
}

// Option is a functional option for the client
type Option func(*client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(x *client) {
		x.httpClient = c
	}
}

// WithBaseURL sets the server root used to locate the region catalog
func WithBaseURL(url string) Option {
	return func(x *client) {
		x.baseURL = strings.TrimSuffix(url, "/")
	}
}

// NewClient creates a new extract server client
func NewClient(opts ...Option) interfaces.ExtractSource {
	c := &client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Probe sends a HEAD request. Any non-2xx status or a missing Content-Length
// is reported as not found rather than as an error.
func (c *client) Probe(ctx context.Context, url string) (bool, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, 0, goerr.Wrap(err, "failed to create probe request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, 0, goerr.Wrap(err, "failed to probe extract", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, 0, nil
	}
	if resp.ContentLength <= 0 {
		return false, 0, nil
	}

	return true, resp.ContentLength, nil
}

// Open starts a GET request and returns the body for streaming
func (c *client) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to download extract", goerr.V("url", url))
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, goerr.New("unexpected status code",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
		)
	}

	return resp.Body, resp.ContentLength, nil
}

type catalog struct {
	Features []struct {
		Properties model.Region `json:"properties"`
	} `json:"features"`
}

// Regions fetches the server's region index
func (c *client) Regions(ctx context.Context) ([]*model.Region, error) {
	url := c.baseURL + catalogPath
	body, _, err := c.Open(ctx, url)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch region catalog")
	}
	defer body.Close()

	var idx catalog
	if err := json.NewDecoder(body).Decode(&idx); err != nil {
		return nil, goerr.Wrap(err, "failed to decode region catalog", goerr.V("url", url))
	}

	regions := make([]*model.Region, 0, len(idx.Features))
	for i := range idx.Features {
		regions = append(regions, &idx.Features[i].Properties)
	}
	return regions, nil
}
