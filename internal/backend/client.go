// Package backend is the typed client for the gym management backend.
// All persistence, authentication, fee computation, QR generation and
// messaging live behind it; this service only renders its responses.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// genericDetail is shown when the backend gave no usable detail string.
const genericDetail = "Something went wrong. Please try again."

// APIError is a non-2xx backend response. Detail carries the backend's
// `detail` field when present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// Detail extracts the user-facing message for any client error: the
// backend's detail string for rejected requests, a generic message for
// transport failures.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return genericDetail
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ping checks backend reachability (the backend serves a status document
// at its root).
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

// RegisterOwner creates a gym owner account and returns the full record
// including the registration and cash-verification QR images.
func (c *Client) RegisterOwner(ctx context.Context, req RegisterOwnerRequest) (*Owner, error) {
	var owner Owner
	if err := c.do(ctx, http.MethodPost, "/api/gym-owner/register", req, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// LoginOwner authenticates an owner and returns the record.
func (c *Client) LoginOwner(ctx context.Context, req LoginRequest) (*Owner, error) {
	var owner Owner
	if err := c.do(ctx, http.MethodPost, "/api/gym-owner/login", req, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// GetOwner fetches the public owner summary used by QR landing pages.
func (c *Client) GetOwner(ctx context.Context, gymID string) (*Owner, error) {
	var owner Owner
	path := "/api/gym-owner/" + url.PathEscape(gymID)
	if err := c.do(ctx, http.MethodGet, path, nil, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// ListMembers fetches the full member collection for a gym.
func (c *Client) ListMembers(ctx context.Context, gymID string) ([]Member, error) {
	var members []Member
	path := "/api/gym/" + url.PathEscape(gymID) + "/members"
	if err := c.do(ctx, http.MethodGet, path, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// RegisterMember self-registers a member against a gym (public).
func (c *Client) RegisterMember(ctx context.Context, req RegisterMemberRequest) error {
	return c.do(ctx, http.MethodPost, "/api/member/register", req, nil)
}

// UpdatePayment marks a member's current month as paid via the given method.
func (c *Client) UpdatePayment(ctx context.Context, gymID, memberID, method string) error {
	path := fmt.Sprintf("/api/member/%s/%s/payment", url.PathEscape(gymID), url.PathEscape(memberID))
	return c.do(ctx, http.MethodPatch, path, PaymentUpdateRequest{PaymentMethod: method}, nil)
}

// ToggleActive flips a member's active flag.
func (c *Client) ToggleActive(ctx context.Context, gymID, memberID string) error {
	path := fmt.Sprintf("/api/member/%s/%s/toggle-active", url.PathEscape(gymID), url.PathEscape(memberID))
	return c.do(ctx, http.MethodPatch, path, nil, nil)
}

// DeleteMember removes a member record.
func (c *Client) DeleteMember(ctx context.Context, gymID, memberID string) error {
	path := fmt.Sprintf("/api/member/%s/%s", url.PathEscape(gymID), url.PathEscape(memberID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// SendNotification sends one manual WhatsApp message to a member.
func (c *Client) SendNotification(ctx context.Context, gymID, memberID, message string) error {
	path := fmt.Sprintf("/api/gym/%s/send-notification/%s", url.PathEscape(gymID), url.PathEscape(memberID))
	return c.do(ctx, http.MethodPost, path, NotificationRequest{Message: message}, nil)
}

// SendBulkReminders queues monthly fee reminders for all unpaid members.
func (c *Client) SendBulkReminders(ctx context.Context, gymID string) error {
	return c.do(ctx, http.MethodPost, "/api/whatsapp/send-reminders", BulkRemindersRequest{GymID: gymID}, nil)
}

// UpdateWhatsAppConfig sets the gym's WhatsApp sender number.
func (c *Client) UpdateWhatsAppConfig(ctx context.Context, gymID, number string) error {
	path := "/api/gym/" + url.PathEscape(gymID) + "/whatsapp-config"
	return c.do(ctx, http.MethodPost, path, WhatsAppConfigRequest{WhatsAppNumber: number}, nil)
}

// CreatePaymentSession asks the backend for a 30-minute payment QR for one
// member's outstanding amount.
func (c *Client) CreatePaymentSession(ctx context.Context, gymID string, req PaymentSessionRequest) (*PaymentSession, error) {
	var ps PaymentSession
	path := "/api/gym/" + url.PathEscape(gymID) + "/generate-payment-session"
	if err := c.do(ctx, http.MethodPost, path, req, &ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

// VerifyCashPayment records a cash payment for the member matching phone
// and name. sessionID is optional and correlates a pending payment session.
func (c *Client) VerifyCashPayment(ctx context.Context, gymID, phone, name, sessionID string) error {
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("name", name)
	if sessionID != "" {
		q.Set("session_id", sessionID)
	}
	path := "/api/verify-cash-payment/" + url.PathEscape(gymID) + "?" + q.Encode()
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// do runs one request/response cycle. Non-2xx responses become *APIError;
// transport errors are wrapped and returned as-is. Requests are never
// retried.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		detail := genericDetail
		var errResp struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Detail != "" {
			detail = errResp.Detail
		}
		return &APIError{Status: resp.StatusCode, Detail: detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
