package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/masterskaya/storefront/internal/domain"
)

const (
	headerCSRF   = "X-CSRFToken"
	headerMarker = "X-Requested-With"
	markerValue  = "XMLHttpRequest"

	// The toggle endpoint takes the token as a form field, the cart
	// endpoints take it as a header.
	fieldCSRF = "csrfmiddlewaretoken"
)

// Client talks to the storefront's cart and favorites endpoints. A single
// call style serves both components.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func New(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// Summary fetches the current cart snapshot.
func (c *Client) Summary(ctx context.Context) (domain.CartSnapshot, error) {
	var snap domain.CartSnapshot

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cart/summary/", nil)
	if err != nil {
		return snap, fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set(headerMarker, markerValue)

	resp, err := c.http.Do(req)
	if err != nil {
		return snap, fmt.Errorf("cart summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return snap, fmt.Errorf("cart summary: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode cart summary: %w", err)
	}
	return snap, nil
}

// UpdateQuantity sets the absolute quantity of one cart line.
func (c *Client) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	form := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return c.mutateCart(ctx, fmt.Sprintf("/cart/update/%d/", lineID), form)
}

// RemoveLine deletes one cart line.
func (c *Client) RemoveLine(ctx context.Context, lineID int64) error {
	return c.mutateCart(ctx, fmt.Sprintf("/cart/remove/%d/", lineID), url.Values{})
}

// AddItem adds a product to the cart with the given quantity.
func (c *Client) AddItem(ctx context.Context, productID int64, quantity int) error {
	form := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return c.mutateCart(ctx, fmt.Sprintf("/cart/add/%d/", productID), form)
}

type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) mutateCart(ctx context.Context, path string, form url.Values) error {
	resp, err := c.postForm(ctx, path, form, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	var body mutationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	if !body.Success {
		return &APIError{Message: body.Message}
	}
	return nil
}

type toggleResponse struct {
	Success    bool   `json:"success"`
	IsFavorite bool   `json:"is_favorite"`
	Message    string `json:"message"`
	Redirect   string `json:"redirect"`
}

// ToggleFavorite flips the favorite state of a product and returns the new
// state. A 403 or a body-level redirect means the user must authenticate
// first and yields *AuthRequiredError.
func (c *Client) ToggleFavorite(ctx context.Context, productID int64) (domain.FavoriteStatus, error) {
	var status domain.FavoriteStatus

	token, err := c.tokens.Token()
	if err != nil {
		return status, err
	}
	form := url.Values{fieldCSRF: {token}}

	path := fmt.Sprintf("/products/favorite/toggle/%d/", productID)
	resp, err := c.postForm(ctx, path, form, false)
	if err != nil {
		return status, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return status, &AuthRequiredError{Location: loginPath}
	}
	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	var body toggleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return status, fmt.Errorf("decode toggle response: %w", err)
	}
	if !body.Success {
		if body.Redirect != "" {
			return status, &AuthRequiredError{Location: body.Redirect}
		}
		return status, &APIError{Message: body.Message}
	}

	status.IsFavorite = body.IsFavorite
	return status, nil
}

// CheckFavorite fetches the current favorite state of a product.
func (c *Client) CheckFavorite(ctx context.Context, productID int64) (domain.FavoriteStatus, error) {
	var status domain.FavoriteStatus

	path := fmt.Sprintf("/products/favorite/check/%d/", productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return status, fmt.Errorf("build check request: %w", err)
	}
	req.Header.Set(headerMarker, markerValue)

	resp, err := c.http.Do(req)
	if err != nil {
		return status, fmt.Errorf("favorite check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, fmt.Errorf("decode favorite check: %w", err)
	}
	return status, nil
}

// postForm resolves the token first so a missing token aborts before any
// network traffic.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, tokenInHeader bool) (*http.Response, error) {
	var token string
	if tokenInHeader {
		t, err := c.tokens.Token()
		if err != nil {
			return nil, err
		}
		token = t
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(headerMarker, markerValue)
	if tokenInHeader {
		req.Header.Set(headerCSRF, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", path, err)
	}
	return resp, nil
}
