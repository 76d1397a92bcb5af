// http is used to interact with the home assistant
// REST API. It loads the initial state snapshot and
// core configuration for hosted cards.
package internal

import (
	"context"
	"errors"
	"net/url"
	"time"

	"resty.dev/v3"
)

type HttpClient struct {
	client      *resty.Client
	baseRequest *resty.Request
}

func NewHttpClient(ctx context.Context, baseUrl *url.URL, token string) *HttpClient {
	// Shallow copy the URL to avoid modifying the original
	u := *baseUrl
	u.Path = "/api"

	client := resty.New().
		SetBaseURL(u.String()).
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		AddRetryConditions(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("User-Agent", "go-ha-number-card/"+currentVersion).
		SetContext(ctx)

	return &HttpClient{
		client: client,
		baseRequest: client.R().
			SetContentType("application/json").
			SetHeader("Accept", "application/json").
			SetAuthToken(token),
	}
}

func (c *HttpClient) getRequest() *resty.Request {
	return c.baseRequest.Clone(c.client.Context())
}

func (c *HttpClient) get(path string) ([]byte, error) {
	resp, err := c.getRequest().Get(path)
	if err != nil {
		return nil, errors.New("Error making HTTP request: " + err.Error())
	}

	if resp.StatusCode() >= 400 {
		return nil, errors.New("HTTP error: " + resp.Status() + " - " + string(resp.Bytes()))
	}

	return resp.Bytes(), nil
}

// GetStates returns the states of all entities.
func (c *HttpClient) GetStates() ([]byte, error) {
	return c.get("/states")
}

// GetConfig returns the core configuration.
func (c *HttpClient) GetConfig() ([]byte, error) {
	return c.get("/config")
}

// Close releases the underlying transport.
func (c *HttpClient) Close() error {
	return c.client.Close()
}
