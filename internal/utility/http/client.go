package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is a thin JSON wrapper around net/http for calling the quiz API.
type Client struct {
	client         *http.Client
	defaultHeaders map[string]string
}

func NewHttpClient() *Client {
	return &Client{
		client: &http.Client{},
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"accept":       "application/json",
		},
	}
}

func (hc *Client) applyDefaultHeaders(req *http.Request) {
	for key, value := range hc.defaultHeaders {
		// Only set default header if it's not already set
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
}

type RequestOption func(*http.Request)

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value) // We use Set() to overwrite existing headers
	}
}

// APIError carries the status code and the server's message body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// GetJSON performs a GET and decodes the JSON body into out (when non-nil).
func (hc *Client) GetJSON(url string, out interface{}, opts ...RequestOption) error {
	return hc.doJSON(http.MethodGet, url, nil, out, opts...)
}

// PostJSON marshals body, performs a POST and decodes the response into out.
func (hc *Client) PostJSON(url string, body interface{}, out interface{}, opts ...RequestOption) error {
	return hc.doJSON(http.MethodPost, url, body, out, opts...)
}

// PutJSON marshals body, performs a PUT and decodes the response into out.
func (hc *Client) PutJSON(url string, body interface{}, out interface{}, opts ...RequestOption) error {
	return hc.doJSON(http.MethodPut, url, body, out, opts...)
}

func (hc *Client) doJSON(method, url string, body interface{}, out interface{}, opts ...RequestOption) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}

	hc.applyDefaultHeaders(req)
	for _, opt := range opts {
		opt(req)
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var serverErr struct {
			Message string `json:"message"`
		}
		message := resp.Status
		if decodeErr := json.NewDecoder(resp.Body).Decode(&serverErr); decodeErr == nil && serverErr.Message != "" {
			message = serverErr.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
