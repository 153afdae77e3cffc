// Package inscricoes is the HTTP adapter for the external inscriptions
// backend (events, catalog, CPF checks, batch creation, payment status).
package inscricoes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"inscricaoflow/internal/domain"
)

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns an InscriptionClient talking to the backend at baseURL.
// token, when non-empty, is sent as a bearer token (admin sessions).
func NewClient(baseURL, token string, httpClient *http.Client) domain.InscriptionClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

type apiError struct {
	Message string `json:"message"`
}

func (c *client) do(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return &domain.ConflictError{Message: readMessage(resp.Body)}
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: backend returned status %d", domain.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		if msg := readMessage(resp.Body); msg != "" {
			return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readMessage extracts the backend's error message, if any.
func readMessage(body io.Reader) string {
	var apiErr apiError
	if err := json.NewDecoder(body).Decode(&apiErr); err != nil {
		return ""
	}
	return apiErr.Message
}

func (c *client) EventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	var event domain.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+slug, nil, nil, &event); err != nil {
		return nil, fmt.Errorf("fetch event: %w", err)
	}
	return &event, nil
}

func (c *client) Districts(ctx context.Context) ([]domain.District, error) {
	var districts []domain.District
	if err := c.do(ctx, http.MethodGet, "/catalog/districts", nil, nil, &districts); err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	return districts, nil
}

func (c *client) Churches(ctx context.Context) ([]domain.Church, error) {
	var churches []domain.Church
	if err := c.do(ctx, http.MethodGet, "/catalog/churches", nil, nil, &churches); err != nil {
		return nil, fmt.Errorf("list churches: %w", err)
	}
	return churches, nil
}

func (c *client) DirectorChurch(ctx context.Context, cpf string) (*domain.SuggestedChurch, error) {
	var suggestion domain.SuggestedChurch
	path := "/catalog/churches/director?cpf=" + cpf
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &suggestion); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("director lookup: %w", err)
	}
	return &suggestion, nil
}

func (c *client) StartInscription(ctx context.Context, eventID, buyerCPF string) ([]domain.PendingOrder, error) {
	body := map[string]string{
		"eventId":  eventID,
		"buyerCpf": buyerCPF,
	}
	var result struct {
		PendingOrders []domain.PendingOrder `json:"pendingOrders"`
	}
	if err := c.do(ctx, http.MethodPost, "/inscriptions/start", nil, body, &result); err != nil {
		return nil, fmt.Errorf("start inscription: %w", err)
	}
	return result.PendingOrders, nil
}

func (c *client) CheckCPF(ctx context.Context, eventID, cpf string) (domain.CheckResult, error) {
	body := map[string]string{
		"eventId": eventID,
		"cpf":     cpf,
	}
	// Some backend versions answer {exists} instead of {existsInEvent}.
	var result struct {
		ExistsInEvent bool            `json:"existsInEvent"`
		Exists        bool            `json:"exists"`
		Profile       *domain.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPost, "/inscriptions/check", nil, body, &result); err != nil {
		return domain.CheckResult{}, fmt.Errorf("check cpf: %w", err)
	}
	return domain.CheckResult{
		ExistsInEvent: result.ExistsInEvent || result.Exists,
		Profile:       result.Profile,
	}, nil
}

func (c *client) CreateBatch(ctx context.Context, eventID, buyerCPF string, method domain.PaymentMethod, people []domain.Person) (*domain.BatchOrder, error) {
	body := map[string]any{
		"eventId":       eventID,
		"buyerCpf":      buyerCPF,
		"paymentMethod": method,
		"people":        people,
	}
	headers := map[string]string{
		"X-Idempotency-Key": uuid.NewString(),
	}
	var order domain.BatchOrder
	if err := c.do(ctx, http.MethodPost, "/inscriptions/batch", headers, body, &order); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return nil, conflict
		}
		return nil, fmt.Errorf("create batch: %w", err)
	}
	return &order, nil
}

func (c *client) PaymentByOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, "/payments/order/"+orderID, nil, nil, &order); err != nil {
		return nil, fmt.Errorf("fetch payment: %w", err)
	}
	if order.OrderID == "" {
		order.OrderID = orderID
	}
	return &order, nil
}

func (c *client) DownloadReceipt(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("receipt download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt: %w", err)
	}
	return data, nil
}
