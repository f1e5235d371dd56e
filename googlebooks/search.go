package googlebooks

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Search performs a volume search and returns the decoded response.
// Transport failures surface as RequestError; non-success responses surface
// through the error taxonomy in errors.go.
func (c *Client) Search(ctx context.Context, query VolumeQuery) (*VolumeResponse, error) {
	endpoint, err := query.BuildURL(c.baseURL, c.apiKey)
	if err != nil {
		return nil, err
	}

	statusCode, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return resolve(statusCode, body)
}

// FetchVolume retrieves a single volume by its opaque ID. The response goes
// through the same resolution as searches; for a by-ID fetch the API echoes
// the volume kind and leaves totalItems at zero.
func (c *Client) FetchVolume(ctx context.Context, id string) (*VolumeResponse, error) {
	if id == "" {
		return nil, ErrEmptyVolumeID
	}

	endpoint := c.baseURL + "/books/v1/volumes/" + url.PathEscape(id)
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	statusCode, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return resolve(statusCode, body)
}

// get performs a single GET and hands back the raw status and body. The rate
// limiter wait happens here, before the transport call, so query building and
// response resolution never block.
func (c *Client) get(ctx context.Context, endpoint string) (int, []byte, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, &RequestError{URL: endpoint, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &RequestError{URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &RequestError{URL: endpoint, Err: err}
	}

	return resp.StatusCode, body, nil
}
