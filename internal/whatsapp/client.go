// Package whatsapp delivers text messages through the WhatsApp Cloud
// API (Meta Graph API).
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the Meta Graph API root.
const DefaultBaseURL = "https://graph.facebook.com"

// Sender delivers one text message to one recipient. Implementations
// own the per-delivery timeout; callers treat any error as fatal to the
// current run.
type Sender interface {
	SendText(ctx context.Context, to, body string) (*Receipt, error)
}

// Receipt is the API's acknowledgment for an accepted message.
type Receipt struct {
	MessageID string
	WaID      string
}

// APIError is a non-2xx response from the Graph API. Body carries the
// raw response for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whatsapp API returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Client implements Sender against the Graph API messages endpoint.
type Client struct {
	Token         string
	PhoneNumberID string
	APIVersion    string

	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string
	// HTTPClient overrides the default client built by NewClient.
	HTTPClient *http.Client
}

// NewClient builds a Client with a per-request timeout baked into its
// HTTP client.
func NewClient(token, phoneNumberID, apiVersion string, timeout time.Duration) *Client {
	return &Client{
		Token:         token,
		PhoneNumberID: phoneNumberID,
		APIVersion:    apiVersion,
		HTTPClient:    &http.Client{Timeout: timeout},
	}
}

type textPayload struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textContent `json:"text"`
}

type textContent struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Contacts []struct {
		WaID string `json:"wa_id"`
	} `json:"contacts"`
}

// SendText posts one text message to the recipient's normalized number.
func (c *Client) SendText(ctx context.Context, to, body string) (*Receipt, error) {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textContent{PreviewURL: false, Body: body},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	endpoint := fmt.Sprintf("%s/%s/%s/messages", base, c.APIVersion, c.PhoneNumberID)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling whatsapp API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed sendResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return nil, fmt.Errorf("parsing response: %w", err)
		}
	}

	r := &Receipt{}
	if len(parsed.Messages) > 0 {
		r.MessageID = parsed.Messages[0].ID
	}
	if len(parsed.Contacts) > 0 {
		r.WaID = parsed.Contacts[0].WaID
	}
	return r, nil
}
