package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the payment gateway's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout: timeout,
	}
}

type createSessionRequest struct {
	LineItems  []LineItem `json:"line_items"`
	BuyerEmail string     `json:"customer_email,omitempty"`
	DiscountID string     `json:"discount,omitempty"`
	SuccessURL string     `json:"success_url"`
	CancelURL  string     `json:"cancel_url"`
}

type createSessionResponse struct {
	Handle string `json:"id"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, params SessionParams) (string, error) {
	body := createSessionRequest{
		LineItems:  params.LineItems,
		BuyerEmail: params.BuyerEmail,
		DiscountID: params.DiscountID,
		SuccessURL: params.SuccessURL,
		CancelURL:  params.CancelURL,
	}

	var resp createSessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", body, &resp); err != nil {
		return "", err
	}
	return resp.Handle, nil
}

func (c *Client) RetrieveSession(ctx context.Context, handle string) (*SessionRecord, error) {
	path := fmt.Sprintf("/v1/checkout/sessions/%s?expand=line_items,customer,payment_intent", handle)

	var record SessionRecord
	err := c.do(ctx, http.MethodGet, path, nil, &record)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (c *Client) GetDiscount(ctx context.Context, id string) (*Discount, error) {
	var discount Discount
	err := c.do(ctx, http.MethodGet, "/v1/coupons/"+id, nil, &discount)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &discount, nil
}

type createDiscountRequest struct {
	ID        string `json:"id"`
	AmountOff int64  `json:"amount_off"`
	Currency  string `json:"currency"`
	Duration  string `json:"duration"`
}

func (c *Client) CreateDiscount(ctx context.Context, params DiscountParams) (*Discount, error) {
	body := createDiscountRequest{
		ID:        params.ID,
		AmountOff: params.AmountOff,
		Currency:  params.Currency,
		Duration:  "once",
	}

	var discount Discount
	err := c.do(ctx, http.MethodPost, "/v1/coupons", body, &discount)
	if err != nil {
		var gwErr *Error
		if errors.As(err, &gwErr) && (gwErr.Code == "resource_already_exists" || gwErr.Status == http.StatusConflict) {
			return nil, ErrDiscountExists
		}
		return nil, err
	}
	return &discount, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode gateway response failed: %w", err)
		}
	}
	return nil
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &Error{Status: resp.StatusCode, Code: "unknown", Message: resp.Status}
	}
	return &Error{
		Status:  resp.StatusCode,
		Code:    body.Error.Code,
		Message: body.Error.Message,
	}
}

func isNotFound(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Status == http.StatusNotFound
}
