// Пакет gateway — клиент платёжного шлюза (Stripe Checkout).
// Три вызова на создание оплаты: продукт -> цена -> сессия, плюс
// запрос статуса сессии.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com/v1"

type StripeClient struct {
	apiKey     string
	successURL string
	baseURL    string
	client     *http.Client
}

func NewStripeClient(apiKey, successURL string) *StripeClient {
	return &StripeClient{
		apiKey:     apiKey,
		successURL: successURL,
		baseURL:    defaultBaseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeClientWithBase нужен тестам и stripe-mock.
func NewStripeClientWithBase(apiKey, successURL, baseURL string) *StripeClient {
	c := NewStripeClient(apiKey, successURL)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type productResponse struct {
	ID string `json:"id"`
}

type priceResponse struct {
	ID string `json:"id"`
}

type sessionResponse struct {
	ID                 string   `json:"id"`
	URL                string   `json:"url"`
	PaymentMethodTypes []string `json:"payment_method_types"`
	PaymentStatus      string   `json:"payment_status"`
	Status             string   `json:"status"`
}

func (c *StripeClient) CreateProduct(ctx context.Context, name string) (string, error) {
	form := url.Values{}
	form.Set("name", name)

	var out productResponse
	if err := c.post(ctx, "/products", form, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// CreatePrice создаёт цену в копейках, привязанную к продукту.
func (c *StripeClient) CreatePrice(ctx context.Context, amountMinor int, currency, productID string) (string, error) {
	form := url.Values{}
	form.Set("unit_amount", strconv.Itoa(amountMinor))
	form.Set("currency", currency)
	form.Set("product", productID)

	var out priceResponse
	if err := c.post(ctx, "/prices", form, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

type CheckoutSession struct {
	ID     string
	URL    string
	Method string
}

func (c *StripeClient) CreateSession(ctx context.Context, priceID string) (CheckoutSession, error) {
	form := url.Values{}
	form.Set("success_url", c.successURL)
	form.Set("mode", "payment")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")

	var out sessionResponse
	if err := c.post(ctx, "/checkout/sessions", form, &out); err != nil {
		return CheckoutSession{}, err
	}
	session := CheckoutSession{ID: out.ID, URL: out.URL}
	if len(out.PaymentMethodTypes) > 0 {
		session.Method = out.PaymentMethodTypes[0]
	}
	return session, nil
}

type SessionStatus struct {
	PaymentStatus string
	Status        string
}

func (c *StripeClient) RetrieveSession(ctx context.Context, sessionID string) (SessionStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return SessionStatus{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var out sessionResponse
	if err := c.do(req, &out); err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{PaymentStatus: out.PaymentStatus, Status: out.Status}, nil
}

func (c *StripeClient) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *StripeClient) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("stripe: status=%d body=%s", resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
